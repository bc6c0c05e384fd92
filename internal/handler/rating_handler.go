package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type RatingHandler struct {
	uc *usecase.RatingUsecase
}

func NewRatingHandler(uc *usecase.RatingUsecase) *RatingHandler {
	return &RatingHandler{uc: uc}
}

type RatingSubmitRequest struct {
	ProductID int64    `json:"productId"`
	OrderID   int64    `json:"orderId"`
	Rating    int      `json:"rating"`
	Review    string   `json:"review"`
	Images    []string `json:"images"`
}

// 商品ごとの一覧だけ公開。投稿と自分の一覧は要ログイン、削除はadminのみ
func (h *RatingHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	auth := middleware.AuthJWT(cfg)
	admin := middleware.AdminRoleGuard()

	e.GET("/api/ratings/product/:productId", h.listByProduct)

	e.POST("/api/ratings", h.submit, auth)
	e.GET("/api/ratings/me", h.listMine, auth)

	e.GET("/api/ratings", h.adminList, auth, admin)
	e.DELETE("/api/ratings/:id", h.adminDelete, auth, admin)
}

func (h *RatingHandler) submit(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req RatingSubmitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Submit(c.Request().Context(), userID, usecase.SubmitRatingInput{
		ProductID: req.ProductID,
		OrderID:   req.OrderID,
		Rating:    req.Rating,
		Review:    req.Review,
		Images:    req.Images,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RatingHandler) listByProduct(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
	}

	page, limit, ok := parsePageLimit(c, 1, 5)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page or limit"})
	}

	out, err := h.uc.ListByProduct(c.Request().Context(), productID, page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RatingHandler) listMine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RatingHandler) adminList(c echo.Context) error {
	page, limit, ok := parsePageLimit(c, 1, 10)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page or limit"})
	}

	out, err := h.uc.AdminList(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RatingHandler) adminDelete(c echo.Context) error {
	ratingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.AdminDelete(c.Request().Context(), ratingID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func parsePageLimit(c echo.Context, defPage int, defLimit int) (int, int, bool) {
	page := defPage
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, false
		}
		page = p
	}

	limit := defLimit
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, false
		}
		limit = l
	}

	return page, limit, true
}

package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// usecaseの失敗種別をHTTPステータスへ変換する
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if ae, ok := usecase.AsError(err); ok {
		return c.JSON(statusForKind(ae.Kind), ErrorResponse{Error: ae.Message, Kind: string(ae.Kind)})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func statusForKind(kind usecase.ErrKind) int {
	switch kind {
	case usecase.KindValidation, usecase.KindInvalidOrder,
		usecase.KindInvalidTransition, usecase.KindInvalidOperation:
		return http.StatusBadRequest
	case usecase.KindNotFound:
		return http.StatusNotFound
	case usecase.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	id, ok := v.(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

package usecase

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type RatingUsecase struct {
	tx  repo.TransactionManager
	agg *RatingAggregator
}

func NewRatingUsecase(tx repo.TransactionManager, agg *RatingAggregator) *RatingUsecase {
	return &RatingUsecase{tx: tx, agg: agg}
}

type SubmitRatingInput struct {
	ProductID int64
	OrderID   int64
	Rating    int
	Review    string
	Images    []string
}

type RatingOutput struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	ProductID int64     `json:"productId"`
	OrderID   int64     `json:"orderId"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review,omitempty"`
	Images    []string  `json:"images,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type RatingListOutput struct {
	Ratings     []RatingOutput `json:"ratings"`
	Total       int64          `json:"total"`
	TotalPages  int64          `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
}

// Submitはレビューのupsert。
// 条件：orderIdが自分の配達済み注文で、その注文にproductIdが含まれること。
// 書き込み後、同じトランザクション内で集計を再計算する
func (u *RatingUsecase) Submit(ctx context.Context, userID int64, in SubmitRatingInput) (RatingOutput, error) {
	if userID <= 0 {
		return RatingOutput{}, NewError(KindForbidden, "unauthorized")
	}
	if in.ProductID <= 0 || in.OrderID <= 0 {
		return RatingOutput{}, NewError(KindValidation, "productId and orderId are required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return RatingOutput{}, NewError(KindValidation, "rating must be between 1 and 5")
	}
	if len(in.Review) > 500 {
		return RatingOutput{}, NewError(KindValidation, "review must be 500 characters or less")
	}

	var out RatingOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//注文の存在・所有・配達済みチェック
		//所有していない注文は「存在しない扱い」にする
		o, err := r.Orders().FindByID(ctx, in.OrderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewError(KindNotFound, "order not found or not delivered")
		}
		if err != nil {
			return NewError(KindInternal, "db error")
		}
		if o.UserID != userID || o.Status != model.OrderStatusDelivered {
			return NewError(KindNotFound, "order not found or not delivered")
		}

		//その注文の明細に商品が含まれるか
		items, err := r.OrderItems().ListByOrderID(ctx, in.OrderID)
		if err != nil {
			return NewError(KindInternal, "db error")
		}
		inOrder := false
		for _, it := range items {
			if it.ProductID == in.ProductID {
				inOrder = true
				break
			}
		}
		if !inOrder {
			return NewError(KindInvalidOrder, "product not found in this order")
		}

		now := time.Now()
		saved, err := r.Ratings().Upsert(ctx, model.Rating{
			UserID:    userID,
			ProductID: in.ProductID,
			OrderID:   in.OrderID,
			Rating:    in.Rating,
			Review:    in.Review,
			Images:    in.Images,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return NewError(KindInternal, "db error")
		}

		//集計の再計算（明示呼び出し）
		if err := u.agg.Recompute(ctx, r, in.ProductID); err != nil {
			return NewError(KindInternal, "db error")
		}

		out = toRatingOutput(saved)
		if owner, err := r.Users().FindByID(ctx, userID); err == nil {
			out.UserName = owner.Name
		}
		return nil
	})

	if err != nil {
		return RatingOutput{}, err
	}
	return out, nil
}

// ListByProductは商品のレビューを新しい順・ページングで返す（公開）
func (u *RatingUsecase) ListByProduct(ctx context.Context, productID int64, page int, limit int) (RatingListOutput, error) {
	if productID <= 0 {
		return RatingListOutput{}, NewError(KindValidation, "invalid product id")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 5
	}

	var out RatingListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		ratings, total, err := r.Ratings().ListByProductID(ctx, productID, page, limit)
		if err != nil {
			return NewError(KindInternal, "db error")
		}
		out = toRatingListOutput(ctx, r, ratings, total, page, limit)
		return nil
	})

	if err != nil {
		return RatingListOutput{}, err
	}
	return out, nil
}

// ListMineは自分のレビュー一覧（新しい順）
func (u *RatingUsecase) ListMine(ctx context.Context, userID int64) ([]RatingOutput, error) {
	if userID <= 0 {
		return []RatingOutput{}, NewError(KindForbidden, "unauthorized")
	}

	var outs []RatingOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		ratings, err := r.Ratings().ListByUserID(ctx, userID)
		if err != nil {
			return NewError(KindInternal, "db error")
		}
		outs = make([]RatingOutput, 0, len(ratings))
		for _, rt := range ratings {
			outs = append(outs, toRatingOutput(rt))
		}
		return nil
	})

	if err != nil {
		return []RatingOutput{}, err
	}
	return outs, nil
}

// AdminListは全レビューのページング一覧
func (u *RatingUsecase) AdminList(ctx context.Context, page int, limit int) (RatingListOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var out RatingListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		ratings, total, err := r.Ratings().ListAll(ctx, page, limit)
		if err != nil {
			return NewError(KindInternal, "db error")
		}
		out = toRatingListOutput(ctx, r, ratings, total, page, limit)
		return nil
	})

	if err != nil {
		return RatingListOutput{}, err
	}
	return out, nil
}

// AdminDeleteはレビュー削除（モデレーション用）。削除後も集計を再計算する
func (u *RatingUsecase) AdminDelete(ctx context.Context, ratingID int64) error {
	if ratingID <= 0 {
		return NewError(KindValidation, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		rt, err := r.Ratings().FindByID(ctx, ratingID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewError(KindNotFound, "rating not found")
		}
		if err != nil {
			return NewError(KindInternal, "db error")
		}

		if err := r.Ratings().Delete(ctx, ratingID); err != nil {
			return NewError(KindInternal, "db error")
		}

		if err := u.agg.Recompute(ctx, r, rt.ProductID); err != nil {
			return NewError(KindInternal, "db error")
		}
		return nil
	})
}

func toRatingOutput(rt model.Rating) RatingOutput {
	return RatingOutput{
		ID:        rt.ID,
		UserID:    rt.UserID,
		ProductID: rt.ProductID,
		OrderID:   rt.OrderID,
		Rating:    rt.Rating,
		Review:    rt.Review,
		Images:    rt.Images,
		CreatedAt: rt.CreatedAt,
	}
}

func toRatingListOutput(ctx context.Context, r repo.TxRepos, ratings []model.Rating, total int64, page int, limit int) RatingListOutput {
	outs := make([]RatingOutput, 0, len(ratings))
	for _, rt := range ratings {
		out := toRatingOutput(rt)
		//投稿者名を解決する（消えたユーザーは名前なしのまま）
		if owner, err := r.Users().FindByID(ctx, rt.UserID); err == nil {
			out.UserName = owner.Name
		}
		outs = append(outs, out)
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	return RatingListOutput{
		Ratings:     outs,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
}

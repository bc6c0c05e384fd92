package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 一意制約違反（二重送信キーなど）
var ErrConflict = errors.New("conflict")

// 一覧検索
type ProductListQuery struct {
	Q        string
	Category string
}

// 商品の永続化（保存・取得）だけを約束。
// rating/ratingCountの書き換えはUpdateRatingStatsに限定する
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error

	//集計結果の書き戻し（RatingAggregator専用）
	UpdateRatingStats(ctx context.Context, productID int64, rating float64, count int64) error
}

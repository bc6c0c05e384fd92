package repository

import (
	"context"

	"app/internal/domain/model"
)

type RatingRepository interface {
	// (user, product, order)で一意。既存ならrating/review/imagesを上書き
	// 一意性はDBのユニークインデックスが保証する
	Upsert(ctx context.Context, r model.Rating) (model.Rating, error)
	FindByID(ctx context.Context, id int64) (model.Rating, error)
	Delete(ctx context.Context, id int64) error

	//新しい順・ページング
	ListByProductID(ctx context.Context, productID int64, page int, limit int) ([]model.Rating, int64, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Rating, error)
	ListAll(ctx context.Context, page int, limit int) ([]model.Rating, int64, error)

	//平均と件数（集計の元データ）
	AggregateByProductID(ctx context.Context, productID int64) (float64, int64, error)
}

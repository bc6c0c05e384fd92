package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	//新しい順
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	//全ユーザー・新しい順（管理者用）
	ListAll(ctx context.Context) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error

	//検索（同じキーなら同じ結果を返す）
	FindByIdempotencyKey(ctx context.Context, userID int64, key string) (model.Order, bool, error)
	//配達済み注文にproductIdが含まれるか（レビュー資格の判定）
	ExistsDeliveredWithProduct(ctx context.Context, userID int64, productID int64) (bool, error)
}

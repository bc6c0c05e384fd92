package repository

import "context"

type InventoryRepository interface {
	// 在庫が足りるときだけ減算。足りなければfalse
	// 同一商品への同時注文はここで直列化される
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)
}

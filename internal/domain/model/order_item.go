package model

import "time"

// 注文明細。単価と商品名は注文時点のスナップショット
type OrderItem struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64     `gorm:"not null;index" json:"orderId"`
	ProductID   int64     `gorm:"not null;index" json:"productId"`
	ProductName string    `gorm:"type:varchar(255);not null" json:"name"`
	UnitPrice   float64   `gorm:"not null" json:"price"`
	Quantity    int64     `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
}

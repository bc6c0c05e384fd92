package model

import "time"

// 商品レビュー。(user, product, order)の組で一意
type Rating struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_ratings_user_product_order" json:"userId"`
	ProductID int64     `gorm:"not null;index;uniqueIndex:idx_ratings_user_product_order" json:"productId"`
	OrderID   int64     `gorm:"not null;uniqueIndex:idx_ratings_user_product_order" json:"orderId"`
	Rating    int       `gorm:"not null" json:"rating"`
	Review    string    `gorm:"type:varchar(500)" json:"review,omitempty"`
	Images    []string  `gorm:"type:text;serializer:json" json:"images,omitempty"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

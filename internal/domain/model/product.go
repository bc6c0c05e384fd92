package model

import (
	"time"

	"gorm.io/gorm"
)

type Category string

const (
	CategoryMen   Category = "men"
	CategoryWomen Category = "women"
)

type Product struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Category    Category       `gorm:"type:varchar(20);not null;index" json:"category"`
	Stock       int64          `gorm:"not null;default:0" json:"stock"`
	//rating/ratingCountは集計値。RatingAggregatorだけが書き換える
	Rating      float64        `gorm:"not null;default:0" json:"rating"`
	RatingCount int64          `gorm:"not null;default:0" json:"ratingCount"`
	Keywords    []string       `gorm:"type:text;serializer:json" json:"keywords"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

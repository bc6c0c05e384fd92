package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatusはstatusが定義済みの状態かどうかを返す
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodUPI PaymentMethod = "upi"
	PaymentMethodCOD PaymentMethod = "cod"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusConfirmed PaymentStatus = "confirmed"
)

// 注文ごとに埋め込みで保存する（住所マスタは持たない）
type ShippingAddress struct {
	FullName             string `gorm:"type:varchar(100);not null" json:"fullName"`
	Phone                string `gorm:"type:varchar(20);not null" json:"phone"`
	AltPhone             string `gorm:"type:varchar(20)" json:"altPhone,omitempty"`
	AddressLine1         string `gorm:"type:varchar(255);not null" json:"addressLine1"`
	AddressLine2         string `gorm:"type:varchar(255)" json:"addressLine2,omitempty"`
	Landmark             string `gorm:"type:varchar(255)" json:"landmark,omitempty"`
	City                 string `gorm:"type:varchar(100);not null" json:"city"`
	State                string `gorm:"type:varchar(100);not null" json:"state"`
	PostalCode           string `gorm:"type:varchar(20);not null" json:"postalCode"`
	Country              string `gorm:"type:varchar(100);not null" json:"country"`
	AddressType          string `gorm:"type:varchar(20);default:'home'" json:"addressType,omitempty"`
	DeliveryInstructions string `gorm:"type:varchar(500)" json:"deliveryInstructions,omitempty"`
}

type Order struct {
	ID         int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64       `gorm:"not null;index;uniqueIndex:idx_orders_user_idem" json:"userId"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	//totalAmountは作成時に確定し、以後変わらない
	TotalAmount   float64         `gorm:"not null" json:"totalAmount"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(10);not null" json:"paymentMethod"`
	TransactionID string          `gorm:"type:varchar(255)" json:"transactionId,omitempty"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null" json:"paymentStatus"`
	Shipping      ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shippingAddress"`
	//二重送信防止キー（任意）。NULL同士は衝突しない
	IdempotencyKey *string   `gorm:"type:varchar(255);uniqueIndex:idx_orders_user_idem" json:"-"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

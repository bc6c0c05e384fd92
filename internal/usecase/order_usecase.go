package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

const (
	//配送料（固定）
	DeliveryCharge = 10.0
	//UPI払いの割引率
	UPIDiscountRate = 0.05
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type OrderItemInput struct {
	ProductID int64
	Quantity  int64
}

type PlaceOrderInput struct {
	Items          []OrderItemInput
	Shipping       model.ShippingAddress
	PaymentMethod  string
	TransactionID  string
	IdempotencyKey string
}

type OrderItemOutput struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
}

type OrderUserOutput struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type OrderOutput struct {
	ID            int64                 `json:"id"`
	UserID        int64                 `json:"userId"`
	User          *OrderUserOutput      `json:"user,omitempty"`
	Status        string                `json:"status"`
	TotalAmount   float64               `json:"totalAmount"`
	PaymentMethod string                `json:"paymentMethod"`
	TransactionID string                `json:"transactionId,omitempty"`
	PaymentStatus string                `json:"paymentStatus"`
	Shipping      model.ShippingAddress `json:"shippingAddress"`
	CreatedAt     time.Time             `json:"createdAt"`
	Items         []OrderItemOutput     `json:"items"`
}

// PlaceOrderは在庫チェック・在庫減算・注文作成を1トランザクションで行う。
// 単価と商品名は注文時点のスナップショットを保存する
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewError(KindForbidden, "unauthorized")
	}

	pm := model.PaymentMethod(in.PaymentMethod)
	if pm != model.PaymentMethodUPI && pm != model.PaymentMethodCOD {
		return OrderOutput{}, NewError(KindInvalidOrder, "invalid payment method")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewError(KindValidation, "items required")
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 || it.Quantity < 1 {
			return OrderOutput{}, NewError(KindValidation, "invalid item")
		}
	}
	if err := validateShipping(in.Shipping); err != nil {
		return OrderOutput{}, err
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if len(key) > 255 {
		return OrderOutput{}, NewError(KindValidation, "invalid idempotency key")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 同じキーなら同じ結果
		if key != "" {
			existing, found, err := r.Orders().FindByIdempotencyKey(ctx, userID, key)
			if err != nil {
				return NewError(KindInternal, "db error")
			}
			if found {
				items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
				if err != nil {
					return NewError(KindInternal, "db error")
				}
				out = toOrderOutput(existing, items)
				return nil
			}
		}

		//在庫を確定時にチェックして減らす
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		var subtotal float64
		now := time.Now()

		for _, it := range in.Items {
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewError(KindInvalidOrder, "invalid product or insufficient stock")
			}
			if err != nil {
				return NewError(KindInternal, "db error")
			}

			//在庫減算（足りないなら false）
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, it.ProductID, it.Quantity)
			if err != nil {
				return NewError(KindInternal, "db error")
			}
			if !ok {
				return NewError(KindInvalidOrder, "invalid product or insufficient stock")
			}

			//スナップショット
			orderItems = append(orderItems, model.OrderItem{
				ProductID:   it.ProductID,
				ProductName: p.Name,
				UnitPrice:   p.Price,
				Quantity:    it.Quantity,
				CreatedAt:   now,
			})

			subtotal += p.Price * float64(it.Quantity)
		}

		//upiは5%割引。配送料は固定
		var discount float64
		if pm == model.PaymentMethodUPI {
			discount = UPIDiscountRate * subtotal
		}
		total := subtotal - discount + DeliveryCharge

		order := model.Order{
			UserID:        userID,
			Status:        model.OrderStatusPending,
			TotalAmount:   total,
			PaymentMethod: pm,
			Shipping:      in.Shipping,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		//transactionIdはupiのときだけ保存する
		if pm == model.PaymentMethodUPI {
			order.TransactionID = strings.TrimSpace(in.TransactionID)
			order.PaymentStatus = model.PaymentStatusPending
		} else {
			//codは配達時精算なのでアプリ上はconfirmed扱い
			order.PaymentStatus = model.PaymentStatusConfirmed
		}
		if key != "" {
			order.IdempotencyKey = &key
		}

		orderID, err := r.Orders().Create(ctx, order)
		if errors.Is(err, repo.ErrConflict) {
			//同時に同じキーが入ったらもう一回検索して同じ結果を返す
			ex, found, err2 := r.Orders().FindByIdempotencyKey(ctx, userID, key)
			if err2 == nil && found {
				items, err3 := r.OrderItems().ListByOrderID(ctx, ex.ID)
				if err3 != nil {
					return NewError(KindInternal, "db error")
				}
				out = toOrderOutput(ex, items)
				return nil
			}
			return NewError(KindInternal, "db error")
		}
		if err != nil {
			return NewError(KindInternal, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewError(KindInternal, "db error")
		}

		order.ID = orderID
		out = toOrderOutput(order, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ListMyOrdersは自分の注文を新しい順に返す
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewError(KindForbidden, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewError(KindInternal, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewError(KindInternal, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// CheckPurchasedは「配達済み注文にその商品が含まれるか」を返す。
// レビュー資格の判定に使う
func (u *OrderUsecase) CheckPurchased(ctx context.Context, userID int64, productID int64) (bool, error) {
	if userID <= 0 {
		return false, NewError(KindForbidden, "unauthorized")
	}
	if productID <= 0 {
		return false, NewError(KindValidation, "invalid product id")
	}

	var purchased bool
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		ok, err := r.Orders().ExistsDeliveredWithProduct(ctx, userID, productID)
		if err != nil {
			return NewError(KindInternal, "db error")
		}
		purchased = ok
		return nil
	})
	if err != nil {
		return false, err
	}
	return purchased, nil
}

// Cancelは所有者本人のキャンセル。shipped/deliveredは不可。
// 在庫は戻さない
func (u *OrderUsecase) Cancel(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewError(KindForbidden, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewError(KindValidation, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewError(KindNotFound, "order not found")
		}
		if err != nil {
			return NewError(KindInternal, "db error")
		}
		//他人の注文は「存在しない扱い」にする
		if o.UserID != userID {
			return NewError(KindNotFound, "order not found")
		}

		if o.Status == model.OrderStatusShipped || o.Status == model.OrderStatusDelivered {
			return NewError(KindInvalidTransition, "order cannot be cancelled at this stage")
		}

		//すでにキャンセル済みなら何もしない
		if o.Status != model.OrderStatusCancelled {
			if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
				return NewError(KindInternal, "db error")
			}
			o.Status = model.OrderStatusCancelled
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewError(KindInternal, "db error")
		}
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func validateShipping(s model.ShippingAddress) error {
	required := []string{
		s.FullName, s.Phone, s.AddressLine1,
		s.City, s.State, s.PostalCode, s.Country,
	}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return NewError(KindValidation, "invalid shipping address")
		}
	}
	return nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductName,
			Price:     it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}

	return OrderOutput{
		ID:            o.ID,
		UserID:        o.UserID,
		Status:        string(o.Status),
		TotalAmount:   o.TotalAmount,
		PaymentMethod: string(o.PaymentMethod),
		TransactionID: o.TransactionID,
		PaymentStatus: string(o.PaymentStatus),
		Shipping:      o.Shipping,
		CreatedAt:     o.CreatedAt,
		Items:         outItems,
	}
}

package usecase

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AdminOrderUsecase struct {
	tx repo.TransactionManager
}

func NewAdminOrderUsecase(tx repo.TransactionManager) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx}
}

// 全ユーザーの注文一覧（新しい順）。注文者の名前とメールも解決する
func (u *AdminOrderUsecase) List(ctx context.Context) ([]OrderOutput, error) {
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListAll(ctx)
		if err != nil {
			return NewError(KindInternal, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewError(KindInternal, "db error")
			}

			out := toOrderOutput(o, items)
			owner, err := r.Users().FindByID(ctx, o.UserID)
			if err == nil {
				out.User = &OrderUserOutput{ID: owner.ID, Name: owner.Name, Email: owner.Email}
			} else if !errors.Is(err, repo.ErrNotFound) {
				return NewError(KindInternal, "db error")
			}
			outs = append(outs, out)
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

type AdminUpdateOrderStatusInput struct {
	Status string
}

// ステータス更新。定義済みの状態かどうかだけを見る
// （UPI未確認の注文を進められる点は画面側の制御に任せている）
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, orderID int64, in AdminUpdateOrderStatusInput) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewError(KindValidation, "invalid id")
	}

	newStatus := strings.TrimSpace(in.Status)
	if !model.ValidOrderStatus(newStatus) {
		return OrderOutput{}, NewError(KindValidation, "invalid status")
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

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatus(newStatus)); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewError(KindNotFound, "order not found")
			}
			return NewError(KindInternal, "db error")
		}
		o.Status = model.OrderStatus(newStatus)

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

// UPI入金の確認。confirmedにして、まだpendingならprocessingへ進める。
// すでに先へ進んだstatusは戻さない
func (u *AdminOrderUsecase) ConfirmPayment(ctx context.Context, orderID int64) (OrderOutput, error) {
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

		if o.PaymentMethod != model.PaymentMethodUPI {
			return NewError(KindInvalidOperation, "not a UPI order")
		}

		if err := r.Orders().UpdatePaymentStatus(ctx, orderID, model.PaymentStatusConfirmed); err != nil {
			return NewError(KindInternal, "db error")
		}
		o.PaymentStatus = model.PaymentStatusConfirmed

		if o.Status == model.OrderStatusPending {
			if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusProcessing); err != nil {
				return NewError(KindInternal, "db error")
			}
			o.Status = model.OrderStatusProcessing
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

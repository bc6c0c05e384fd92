package usecase

import (
	"errors"
	"fmt"
)

// 失敗の種類。HTTPステータスへの変換はhandler側で行う
type ErrKind string

const (
	KindValidation        ErrKind = "validation"
	KindNotFound          ErrKind = "not_found"
	KindForbidden         ErrKind = "forbidden"
	KindInvalidOrder      ErrKind = "invalid_order"
	KindInvalidTransition ErrKind = "invalid_transition"
	KindInvalidOperation  ErrKind = "invalid_operation"
	KindInternal          ErrKind = "internal"
)

type Error struct {
	Kind    ErrKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewError(kind ErrKind, message string) error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

func AsError(err error) (*Error, bool) {
	var ae *Error
	ok := errors.As(err, &ae)
	return ae, ok
}

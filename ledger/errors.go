package ledger

import (
	"errors"
	"fmt"
)

// Kind 错误类别，对外以字符串形式返回
type Kind string

const (
	KindInvalidInput      Kind = "InvalidInput"
	KindNotFound          Kind = "NotFound"
	KindInsufficientFunds Kind = "InsufficientFunds"
	KindNoBalanceRecord   Kind = "NoBalanceRecord"
	KindStoreFailure      Kind = "StoreFailure"
)

// Error 带类别的业务错误
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 按类别比较，使 errors.Is(err, ErrNotFound) 对任意 NotFound 错误成立
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidInput      = &Error{Kind: KindInvalidInput, Message: "invalid input"}
	ErrNotFound          = &Error{Kind: KindNotFound, Message: "not found"}
	ErrInsufficientFunds = &Error{Kind: KindInsufficientFunds, Message: "insufficient balance"}
	ErrNoBalanceRecord   = &Error{Kind: KindNoBalanceRecord, Message: "no balance found for this payment method"}
	ErrStoreFailure      = &Error{Kind: KindStoreFailure, Message: "store failure"}
)

func invalidInput(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// StoreFailure 将底层存储错误包装为 StoreFailure，已分类的错误原样返回
func StoreFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	var le *Error
	if errors.As(err, &le) {
		return err
	}
	return &Error{Kind: KindStoreFailure, Message: op, Err: err}
}

// KindOf 返回错误类别，未分类的错误视为 StoreFailure
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return KindStoreFailure
}

// MessageOf 返回面向调用方的错误描述
func MessageOf(err error) string {
	var le *Error
	if errors.As(err, &le) {
		return le.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

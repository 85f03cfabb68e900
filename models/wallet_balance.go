package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletBalance 用户在某支付方式下的余额，(user_id, payment_method_id) 唯一
type WalletBalance struct {
	ID              uint            `json:"-" gorm:"primaryKey"`
	UserID          uint            `json:"user_id" gorm:"not null;uniqueIndex:idx_wallet_user_method,priority:1"`
	PaymentMethodID uint            `json:"payment_method_id" gorm:"not null;uniqueIndex:idx_wallet_user_method,priority:2"`
	Balance         decimal.Decimal `json:"balance" gorm:"type:decimal(14,2);not null;default:0"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (WalletBalance) TableName() string {
	return "wallet_balances"
}

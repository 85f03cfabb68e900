package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType 交易方向
type TransactionType string

const (
	// TypeIncome 收入
	TypeIncome TransactionType = "income"
	// TypeExpense 支出
	TypeExpense TransactionType = "expense"
)

// Valid 是否为合法的交易方向
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Sign 将正数金额按方向转为带符号金额：收入为正，支出为负
func (t TransactionType) Sign(amount decimal.Decimal) decimal.Decimal {
	if t == TypeExpense {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// Transaction 交易流水
// Amount 始终为正数，方向由 Type 决定
type Transaction struct {
	ID              uint            `json:"transaction_id" gorm:"primaryKey"`
	UserID          uint            `json:"user_id" gorm:"not null;index:idx_tx_user_date,priority:1"`
	Type            TransactionType `json:"type" gorm:"size:10;not null"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Note            string          `json:"note" gorm:"size:255"`
	CategoryID      uint            `json:"category_id" gorm:"not null;index"`
	SubcategoryID   *uint           `json:"subcategory_id"`
	PaymentMethodID uint            `json:"payment_method_id" gorm:"not null;index"`
	TransactionDate time.Time       `json:"transaction_date" gorm:"type:date;not null;index:idx_tx_user_date,priority:2"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "transactions"
}

// SignedAmount 用于余额计算的带符号金额
func (t Transaction) SignedAmount() decimal.Decimal {
	return t.Type.Sign(t.Amount)
}

package ledger

import (
	"strings"
	"time"

	"pocketledger/models"

	"github.com/shopspring/decimal"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
	monthLayout    = "2006-01"
)

// AddTransactionRequest 新增交易
type AddTransactionRequest struct {
	UserID          uint                   `json:"user_id"`
	Type            models.TransactionType `json:"type" example:"expense"`
	Amount          decimal.Decimal        `json:"amount" swaggertype:"string" example:"30.00"`
	Note            string                 `json:"note" example:"lunch"`
	CategoryID      uint                   `json:"category_id" example:"1"`
	SubcategoryID   *uint                  `json:"subcategory_id" example:"2"`
	PaymentMethodID uint                   `json:"payment_method_id" example:"1"`
	TransactionDate string                 `json:"transaction_date" example:"2024-03-15"`
}

// Validate 校验必填字段，返回解析后的交易日期
func (r AddTransactionRequest) Validate(loc *time.Location) (time.Time, error) {
	if r.UserID == 0 {
		return time.Time{}, invalidInput("user_id is required")
	}
	if !r.Type.Valid() {
		return time.Time{}, invalidInput("type must be income or expense")
	}
	if err := validateAmount(r.Amount); err != nil {
		return time.Time{}, err
	}
	if r.CategoryID == 0 {
		return time.Time{}, invalidInput("category_id is required")
	}
	if r.PaymentMethodID == 0 {
		return time.Time{}, invalidInput("payment_method_id is required")
	}
	if len(r.Note) > 255 {
		return time.Time{}, invalidInput("note must be at most 255 characters")
	}
	return ParseDate(r.TransactionDate, loc)
}

// UpdateTransactionRequest 修改交易，只允许修改金额和备注
type UpdateTransactionRequest struct {
	TransactionID uint            `json:"transaction_id"`
	UserID        uint            `json:"user_id"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string" example:"25.50"`
	Note          string          `json:"note" example:"dinner"`
}

func (r UpdateTransactionRequest) Validate() error {
	if r.TransactionID == 0 {
		return invalidInput("transaction_id is required")
	}
	if r.UserID == 0 {
		return invalidInput("user_id is required")
	}
	if len(r.Note) > 255 {
		return invalidInput("note must be at most 255 characters")
	}
	return validateAmount(r.Amount)
}

// DeleteTransactionRequest 删除交易
// PaymentMethodID 可选，传入时必须与交易记录一致
type DeleteTransactionRequest struct {
	TransactionID   uint `json:"transaction_id"`
	UserID          uint `json:"user_id"`
	PaymentMethodID uint `json:"payment_method_id"`
}

func (r DeleteTransactionRequest) Validate() error {
	if r.TransactionID == 0 {
		return invalidInput("transaction_id is required")
	}
	if r.UserID == 0 {
		return invalidInput("user_id is required")
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalidInput("amount must be greater than 0")
	}
	if !amount.Equal(amount.Round(2)) {
		return invalidInput("amount must have at most 2 decimal places")
	}
	return nil
}

// ParseDate 解析交易日期，支持 2006-01-02 与 2006-01-02 15:04:05，时间部分会被丢弃
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, invalidInput("transaction_date is required")
	}
	if loc == nil {
		loc = time.Local
	}
	layout := dateLayout
	if len(s) > len(dateLayout) {
		layout = dateTimeLayout
	}
	t, err := time.ParseInLocation(layout, s, loc)
	if err != nil {
		return time.Time{}, invalidInput("date must be formatted as %s", dateLayout)
	}
	return StartOfDay(t), nil
}

// ParseMonth 解析月份，支持 2006-01 或该月中任意一天 2006-01-02，返回该月第一天
func ParseMonth(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.Local
	}
	var (
		t   time.Time
		err error
	)
	switch {
	case len(s) == len(monthLayout):
		t, err = time.ParseInLocation(monthLayout, s, loc)
	case len(s) == len(dateLayout):
		t, err = time.ParseInLocation(dateLayout, s, loc)
	default:
		err = invalidInput("month is required")
	}
	if err != nil {
		return time.Time{}, invalidInput("month must be formatted as %s", monthLayout)
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc), nil
}

// StartOfDay 当天零点
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

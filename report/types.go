package report

import (
	"time"

	"pocketledger/models"

	"github.com/shopspring/decimal"
)

// TransactionView 带类别、支付方式名称的交易
type TransactionView struct {
	models.Transaction
	CategoryName      string `json:"category_name"`
	SubcategoryName   string `json:"subcategory_name"`
	PaymentMethodName string `json:"payment_method_name"`
}

// CategoryTotal 按类别汇总
type CategoryTotal struct {
	CategoryID       uint            `json:"category_id"`
	CategoryName     string          `json:"category_name"`
	TransactionCount int64           `json:"transaction_count"`
	Total            decimal.Decimal `json:"total" swaggertype:"string"`
}

// CategoryShare 报表中的类别占比
type CategoryShare struct {
	CategoryID uint            `json:"category_id"`
	Name       string          `json:"name"`
	Count      int64           `json:"count"`
	Total      decimal.Decimal `json:"total" swaggertype:"string"`
	Percentage decimal.Decimal `json:"percentage" swaggertype:"string"`
}

// Summary 报表汇总
type Summary struct {
	Count     int64           `json:"count"`
	Total     decimal.Decimal `json:"total" swaggertype:"string"`
	Highest   decimal.Decimal `json:"highest" swaggertype:"string"`
	Average   decimal.Decimal `json:"average" swaggertype:"string"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
}

// DailyTotal 按天汇总
type DailyTotal struct {
	Date  string          `json:"date"`
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total" swaggertype:"string"`
}

// PeriodInfo 报表周期
type PeriodInfo struct {
	Type      Period `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Report 周期报表
type Report struct {
	Summary           Summary         `json:"summary"`
	CategoryBreakdown []CategoryShare `json:"category_breakdown"`
	DailyBreakdown    []DailyTotal    `json:"daily_breakdown"`
	Period            PeriodInfo      `json:"period"`
}

// MonthlyTrend 按月汇总，Month 形如 2024-03
type MonthlyTrend struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income" swaggertype:"string"`
	Expense decimal.Decimal `json:"expense" swaggertype:"string"`
	Net     decimal.Decimal `json:"net" swaggertype:"string"`
	Count   int64           `json:"count"`
}

// WalletView 支付方式余额
type WalletView struct {
	MethodID   uint            `json:"method_id"`
	MethodName string          `json:"method_name"`
	Balance    decimal.Decimal `json:"balance" swaggertype:"string"`
	UpdatedAt  *time.Time      `json:"updated_at,omitempty"`
}

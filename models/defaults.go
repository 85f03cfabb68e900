package models

// DefaultCategory 默认类别种子数据
type DefaultCategory struct {
	Name          string
	Type          TransactionType
	Icon          string
	Color         string
	Subcategories []string
}

// DefaultCategories 默认收支类别，按顺序写入（支出在前）
func DefaultCategories() []DefaultCategory {
	return []DefaultCategory{
		{"Food", TypeExpense, "utensils", "#ef4444", []string{"Groceries", "Restaurants", "Coffee"}},
		{"Transport", TypeExpense, "bus", "#3b82f6", []string{"Fuel", "Public Transit", "Taxi"}},
		{"Shopping", TypeExpense, "bag", "#a855f7", []string{"Clothes", "Electronics"}},
		{"Entertainment", TypeExpense, "film", "#ec4899", nil},
		{"Health", TypeExpense, "heart", "#10b981", []string{"Pharmacy", "Doctor"}},
		{"Education", TypeExpense, "book", "#f59e0b", nil},
		{"Housing", TypeExpense, "home", "#14b8a6", []string{"Rent", "Utilities"}},
		{"Other", TypeExpense, "dots", "#64748b", nil},
		{"Salary", TypeIncome, "briefcase", "#10b981", nil},
		{"Bonus", TypeIncome, "gift", "#3b82f6", nil},
		{"Investment", TypeIncome, "chart", "#a855f7", nil},
		{"Freelance", TypeIncome, "laptop", "#f59e0b", nil},
		{"Other Income", TypeIncome, "dots", "#64748b", nil},
	}
}

// DefaultPaymentMethods 默认支付方式
func DefaultPaymentMethods() []string {
	return []string{"Cash", "Debit Card", "Credit Card", "E-Wallet", "Bank Transfer"}
}

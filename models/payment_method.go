package models

// PaymentMethod 支付方式
type PaymentMethod struct {
	ID   uint   `json:"method_id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50;not null;uniqueIndex"`
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}

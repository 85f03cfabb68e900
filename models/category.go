package models

import (
	"time"
)

// Category 收支类别（由独立的类别服务维护，这里只读）
type Category struct {
	ID        uint            `json:"category_id" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"size:50;not null"`
	Type      TransactionType `json:"type" gorm:"size:10;not null;index"`
	Icon      string          `json:"icon" gorm:"size:50"`
	Sort      int             `json:"sort" gorm:"default:0;index"`
	Color     string          `json:"color" gorm:"size:20;default:#64748b"` // 颜色代码，如 #ef4444
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

// Subcategory 二级类别
type Subcategory struct {
	ID         uint   `json:"subcategory_id" gorm:"primaryKey"`
	CategoryID uint   `json:"category_id" gorm:"not null;index"`
	Name       string `json:"name" gorm:"size:50;not null"`
}

func (Subcategory) TableName() string {
	return "subcategories"
}

package database

import (
	"context"

	"pocketledger/models"

	"gorm.io/gorm"
)

// CatalogSource 基于 gorm 的类别目录，实现 catalog.Source
type CatalogSource struct {
	db *gorm.DB
}

func NewCatalogSource(db *gorm.DB) *CatalogSource {
	return &CatalogSource{db: db}
}

func (c *CatalogSource) Categories(ctx context.Context, typ models.TransactionType) ([]models.Category, error) {
	query := c.db.WithContext(ctx).Model(&models.Category{})
	if typ != "" {
		query = query.Where("type = ?", string(typ))
	}
	list := make([]models.Category, 0)
	if err := query.Order("sort ASC, id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (c *CatalogSource) Subcategories(ctx context.Context, categoryID uint) ([]models.Subcategory, error) {
	query := c.db.WithContext(ctx).Model(&models.Subcategory{})
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	list := make([]models.Subcategory, 0)
	if err := query.Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (c *CatalogSource) PaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	list := make([]models.PaymentMethod, 0)
	if err := c.db.WithContext(ctx).Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

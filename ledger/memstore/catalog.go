package memstore

import (
	"context"

	"pocketledger/models"
)

// Categories 实现 catalog.Source，typ 为空返回全部
func (s *Store) Categories(_ context.Context, typ models.TransactionType) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if typ == "" || c.Type == typ {
			out = append(out, c)
		}
	}
	return out, nil
}

// Subcategories 实现 catalog.Source，categoryID 为 0 返回全部
func (s *Store) Subcategories(_ context.Context, categoryID uint) ([]models.Subcategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Subcategory, 0)
	for _, sc := range s.subcategories {
		if categoryID == 0 || sc.CategoryID == categoryID {
			out = append(out, sc)
		}
	}
	return out, nil
}

// PaymentMethods 实现 catalog.Source
func (s *Store) PaymentMethods(_ context.Context) ([]models.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.PaymentMethod(nil), s.methods...), nil
}

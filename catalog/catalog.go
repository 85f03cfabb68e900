// Package catalog 只读的类别与支付方式目录，结果在进程内缓存
package catalog

import (
	"context"
	"fmt"
	"time"

	"pocketledger/models"

	"github.com/patrickmn/go-cache"
)

// Source 目录数据来源
type Source interface {
	Categories(ctx context.Context, typ models.TransactionType) ([]models.Category, error)
	Subcategories(ctx context.Context, categoryID uint) ([]models.Subcategory, error)
	PaymentMethods(ctx context.Context) ([]models.PaymentMethod, error)
}

// Names 用于拼接展示名称的 ID→名称映射
type Names struct {
	Categories     map[uint]string
	Subcategories  map[uint]string
	PaymentMethods map[uint]string
}

// Category 返回类别名称，未知 ID 返回空字符串
func (n *Names) Category(id uint) string { return n.Categories[id] }

// Subcategory 返回二级类别名称
func (n *Names) Subcategory(id *uint) string {
	if id == nil {
		return ""
	}
	return n.Subcategories[*id]
}

// PaymentMethod 返回支付方式名称
func (n *Names) PaymentMethod(id uint) string { return n.PaymentMethods[id] }

// Service 带缓存的目录服务
type Service struct {
	src   Source
	cache *cache.Cache
}

// New 创建目录服务，ttl<=0 时使用 5 分钟
func New(src Source, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{
		src:   src,
		cache: cache.New(ttl, 2*ttl),
	}
}

// Categories 按类型获取类别，typ 为空返回全部
func (s *Service) Categories(ctx context.Context, typ models.TransactionType) ([]models.Category, error) {
	key := "categories-" + string(typ)
	if v, ok := s.cache.Get(key); ok {
		return v.([]models.Category), nil
	}
	list, err := s.src.Categories(ctx, typ)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, list)
	return list, nil
}

// Subcategories 获取某类别下的二级类别，categoryID 为 0 返回全部
func (s *Service) Subcategories(ctx context.Context, categoryID uint) ([]models.Subcategory, error) {
	key := fmt.Sprintf("subcategories-%d", categoryID)
	if v, ok := s.cache.Get(key); ok {
		return v.([]models.Subcategory), nil
	}
	list, err := s.src.Subcategories(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, list)
	return list, nil
}

// PaymentMethods 获取全部支付方式
func (s *Service) PaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	const key = "payment-methods"
	if v, ok := s.cache.Get(key); ok {
		return v.([]models.PaymentMethod), nil
	}
	list, err := s.src.PaymentMethods(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, list)
	return list, nil
}

// Names 汇总全部 ID→名称映射
func (s *Service) Names(ctx context.Context) (*Names, error) {
	const key = "names"
	if v, ok := s.cache.Get(key); ok {
		return v.(*Names), nil
	}
	cats, err := s.Categories(ctx, "")
	if err != nil {
		return nil, err
	}
	subs, err := s.Subcategories(ctx, 0)
	if err != nil {
		return nil, err
	}
	methods, err := s.PaymentMethods(ctx)
	if err != nil {
		return nil, err
	}

	n := &Names{
		Categories:     make(map[uint]string, len(cats)),
		Subcategories:  make(map[uint]string, len(subs)),
		PaymentMethods: make(map[uint]string, len(methods)),
	}
	for _, c := range cats {
		n.Categories[c.ID] = c.Name
	}
	for _, sc := range subs {
		n.Subcategories[sc.ID] = sc.Name
	}
	for _, m := range methods {
		n.PaymentMethods[m.ID] = m.Name
	}
	s.cache.SetDefault(key, n)
	return n, nil
}

// Invalidate 清空缓存
func (s *Service) Invalidate() {
	s.cache.Flush()
}

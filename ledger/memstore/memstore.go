// Package memstore 进程内账本存储，供开发模式（database.driver=memory）和测试使用
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"pocketledger/ledger"
	"pocketledger/models"

	"github.com/shopspring/decimal"
)

type balanceKey struct {
	userID   uint
	methodID uint
}

type state struct {
	nextTxID      uint
	nextBalanceID uint
	transactions  map[uint]models.Transaction
	balances      map[balanceKey]models.WalletBalance
}

func (s state) clone() state {
	c := state{
		nextTxID:      s.nextTxID,
		nextBalanceID: s.nextBalanceID,
		transactions:  make(map[uint]models.Transaction, len(s.transactions)),
		balances:      make(map[balanceKey]models.WalletBalance, len(s.balances)),
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	for k, v := range s.balances {
		c.balances[k] = v
	}
	return c
}

// Store 内存账本，Atomic 期间持有互斥锁，失败时恢复快照
type Store struct {
	mu  sync.Mutex
	now func() time.Time
	st  state

	categories    []models.Category
	subcategories []models.Subcategory
	methods       []models.PaymentMethod
}

// New 创建内存账本并写入默认类别与支付方式
func New() *Store {
	s := &Store{
		now: time.Now,
		st: state{
			transactions: make(map[uint]models.Transaction),
			balances:     make(map[balanceKey]models.WalletBalance),
		},
	}
	s.seedCatalog()
	return s
}

// SetClock 指定 updated_at 使用的时间来源
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) seedCatalog() {
	var subID uint
	for i, dc := range models.DefaultCategories() {
		id := uint(i + 1)
		s.categories = append(s.categories, models.Category{
			ID:    id,
			Name:  dc.Name,
			Type:  dc.Type,
			Icon:  dc.Icon,
			Sort:  (i + 1) * 10,
			Color: dc.Color,
		})
		for _, name := range dc.Subcategories {
			subID++
			s.subcategories = append(s.subcategories, models.Subcategory{ID: subID, CategoryID: id, Name: name})
		}
	}
	for i, name := range models.DefaultPaymentMethods() {
		s.methods = append(s.methods, models.PaymentMethod{ID: uint(i + 1), Name: name})
	}
}

// Atomic 实现 ledger.Store
func (s *Store) Atomic(ctx context.Context, fn func(tx ledger.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return ledger.StoreFailure("begin", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(&memTx{s: s}); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// ListTransactions 实现 ledger.Store
func (s *Store) ListTransactions(ctx context.Context, f ledger.TransactionFilter) ([]models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Transaction, 0)
	for _, t := range s.st.transactions {
		if !matches(t, f) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TransactionDate.Equal(out[j].TransactionDate) {
			return out[i].TransactionDate.After(out[j].TransactionDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func matches(t models.Transaction, f ledger.TransactionFilter) bool {
	if t.UserID != f.UserID {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.PaymentMethodID != 0 && t.PaymentMethodID != f.PaymentMethodID {
		return false
	}
	if f.From != nil && t.TransactionDate.Before(*f.From) {
		return false
	}
	if f.To != nil && !t.TransactionDate.Before(*f.To) {
		return false
	}
	return true
}

// ListBalances 实现 ledger.Store
func (s *Store) ListBalances(ctx context.Context, userID uint) ([]models.WalletBalance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.WalletBalance, 0)
	for k, b := range s.st.balances {
		if k.userID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentMethodID < out[j].PaymentMethodID })
	return out, nil
}

// Balance 读取余额，不存在时 ok 为 false
func (s *Store) Balance(userID, methodID uint) (decimal.Decimal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.st.balances[balanceKey{userID, methodID}]
	return b.Balance, ok
}

// memTx 在 Store.mu 已加锁的前提下直接操作状态
type memTx struct {
	s *Store
}

func (tx *memTx) LockBalance(_ context.Context, userID, methodID uint) (*models.WalletBalance, error) {
	b, ok := tx.s.st.balances[balanceKey{userID, methodID}]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (tx *memTx) ApplyDelta(_ context.Context, userID, methodID uint, delta decimal.Decimal) (decimal.Decimal, error) {
	key := balanceKey{userID, methodID}
	b, ok := tx.s.st.balances[key]
	if !ok {
		tx.s.st.nextBalanceID++
		b = models.WalletBalance{
			ID:              tx.s.st.nextBalanceID,
			UserID:          userID,
			PaymentMethodID: methodID,
			Balance:         decimal.Zero,
		}
	}
	b.Balance = b.Balance.Add(delta)
	b.UpdatedAt = tx.s.now()
	tx.s.st.balances[key] = b
	return b.Balance, nil
}

func (tx *memTx) DeleteBalance(_ context.Context, userID, methodID uint) (bool, error) {
	key := balanceKey{userID, methodID}
	if _, ok := tx.s.st.balances[key]; !ok {
		return false, nil
	}
	delete(tx.s.st.balances, key)
	return true, nil
}

func (tx *memTx) InsertTransaction(_ context.Context, t *models.Transaction) error {
	tx.s.st.nextTxID++
	t.ID = tx.s.st.nextTxID
	tx.s.st.transactions[t.ID] = *t
	return nil
}

func (tx *memTx) FindTransaction(_ context.Context, id, userID uint) (*models.Transaction, error) {
	t, ok := tx.s.st.transactions[id]
	if !ok || t.UserID != userID {
		return nil, nil
	}
	return &t, nil
}

func (tx *memTx) UpdateTransaction(_ context.Context, t *models.Transaction) error {
	cur, ok := tx.s.st.transactions[t.ID]
	if !ok {
		return ledger.ErrNotFound
	}
	cur.Amount = t.Amount
	cur.Note = t.Note
	cur.UpdatedAt = t.UpdatedAt
	tx.s.st.transactions[t.ID] = cur
	return nil
}

func (tx *memTx) DeleteTransaction(_ context.Context, id uint) error {
	delete(tx.s.st.transactions, id)
	return nil
}

func (tx *memTx) CountTransactions(_ context.Context, userID, methodID uint) (int64, error) {
	var n int64
	for _, t := range tx.s.st.transactions {
		if t.UserID == userID && t.PaymentMethodID == methodID {
			n++
		}
	}
	return n, nil
}

package database

import (
	"context"
	"errors"
	"time"

	"pocketledger/ledger"
	"pocketledger/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 与 DATE 列比较时只传日期，避免驱动按连接时区改写时间
const dateLayout = "2006-01-02"

// Store 基于 gorm 的账本存储
type Store struct {
	db *gorm.DB
}

// NewStore 创建账本存储
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Atomic 实现 ledger.Store，fn 返回错误时回滚
func (s *Store) Atomic(ctx context.Context, fn func(tx ledger.Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{db: tx})
	})
}

// ListTransactions 实现 ledger.Store
func (s *Store) ListTransactions(ctx context.Context, f ledger.TransactionFilter) ([]models.Transaction, error) {
	query := s.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", f.UserID)
	if f.Type != "" {
		query = query.Where("type = ?", string(f.Type))
	}
	if f.PaymentMethodID != 0 {
		query = query.Where("payment_method_id = ?", f.PaymentMethodID)
	}
	if f.From != nil {
		query = query.Where("transaction_date >= ?", f.From.Format(dateLayout))
	}
	if f.To != nil {
		query = query.Where("transaction_date < ?", f.To.Format(dateLayout))
	}

	list := make([]models.Transaction, 0)
	if err := query.Order("transaction_date DESC, id DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListBalances 实现 ledger.Store
func (s *Store) ListBalances(ctx context.Context, userID uint) ([]models.WalletBalance, error) {
	list := make([]models.WalletBalance, 0)
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("payment_method_id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) LockBalance(ctx context.Context, userID, methodID uint) (*models.WalletBalance, error) {
	var bal models.WalletBalance
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND payment_method_id = ?", userID, methodID).
		Take(&bal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bal, nil
}

func (t *gormTx) ApplyDelta(ctx context.Context, userID, methodID uint, delta decimal.Decimal) (decimal.Decimal, error) {
	now := time.Now()
	row := models.WalletBalance{
		UserID:          userID,
		PaymentMethodID: methodID,
		Balance:         delta,
		UpdatedAt:       now,
	}
	err := t.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "payment_method_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"balance":    gorm.Expr("wallet_balances.balance + ?", delta),
			"updated_at": now,
		}),
	}).Create(&row).Error
	if err != nil {
		return decimal.Zero, err
	}

	var bal models.WalletBalance
	if err := t.db.WithContext(ctx).
		Where("user_id = ? AND payment_method_id = ?", userID, methodID).
		Take(&bal).Error; err != nil {
		return decimal.Zero, err
	}
	return bal.Balance, nil
}

func (t *gormTx) DeleteBalance(ctx context.Context, userID, methodID uint) (bool, error) {
	res := t.db.WithContext(ctx).
		Where("user_id = ? AND payment_method_id = ?", userID, methodID).
		Delete(&models.WalletBalance{})
	return res.RowsAffected > 0, res.Error
}

func (t *gormTx) InsertTransaction(ctx context.Context, tr *models.Transaction) error {
	return t.db.WithContext(ctx).Create(tr).Error
}

func (t *gormTx) FindTransaction(ctx context.Context, id, userID uint) (*models.Transaction, error) {
	var tr models.Transaction
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&tr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tr, nil
}

func (t *gormTx) UpdateTransaction(ctx context.Context, tr *models.Transaction) error {
	return t.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ?", tr.ID).
		Updates(map[string]interface{}{
			"amount":     tr.Amount,
			"note":       tr.Note,
			"updated_at": tr.UpdatedAt,
		}).Error
}

func (t *gormTx) DeleteTransaction(ctx context.Context, id uint) error {
	return t.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Transaction{}).Error
}

func (t *gormTx) CountTransactions(ctx context.Context, userID, methodID uint) (int64, error) {
	var n int64
	err := t.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("user_id = ? AND payment_method_id = ?", userID, methodID).
		Count(&n).Error
	return n, err
}

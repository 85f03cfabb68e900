package ledger

import (
	"context"
	"time"

	"pocketledger/models"

	"github.com/shopspring/decimal"
)

// TransactionFilter 流水查询条件，From 含、To 不含，按交易日期比较
type TransactionFilter struct {
	UserID          uint
	Type            models.TransactionType // 为空表示不限
	PaymentMethodID uint                   // 为 0 表示不限
	From            *time.Time
	To              *time.Time
}

// Tx 一个原子单元内可用的读写操作
type Tx interface {
	// LockBalance 锁定并读取余额行，不存在时返回 (nil, nil)
	LockBalance(ctx context.Context, userID, methodID uint) (*models.WalletBalance, error)
	// ApplyDelta 余额不存在则以 delta 创建，存在则累加，返回新余额
	ApplyDelta(ctx context.Context, userID, methodID uint, delta decimal.Decimal) (decimal.Decimal, error)
	// DeleteBalance 删除余额行，返回是否删除了记录
	DeleteBalance(ctx context.Context, userID, methodID uint) (bool, error)

	InsertTransaction(ctx context.Context, t *models.Transaction) error
	// FindTransaction 锁定并读取用户的交易，不存在时返回 (nil, nil)
	FindTransaction(ctx context.Context, id, userID uint) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, t *models.Transaction) error
	DeleteTransaction(ctx context.Context, id uint) error
	CountTransactions(ctx context.Context, userID, methodID uint) (int64, error)
}

// Store 账本存储
type Store interface {
	// Atomic 在同一个事务中执行 fn，fn 返回错误时全部回滚
	Atomic(ctx context.Context, fn func(tx Tx) error) error
	// ListTransactions 按交易日期倒序、ID 倒序返回
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error)
	ListBalances(ctx context.Context, userID uint) ([]models.WalletBalance, error)
}

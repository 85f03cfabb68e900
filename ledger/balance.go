package ledger

import (
	"context"

	"pocketledger/models"

	"github.com/shopspring/decimal"
)

// BalanceManager 维护 (用户, 支付方式) 的余额，所有方法都在调用方的原子单元中执行
type BalanceManager struct{}

// CheckSufficient 锁定余额行并校验是否足以支出 amount
func (BalanceManager) CheckSufficient(ctx context.Context, tx Tx, userID, methodID uint, amount decimal.Decimal) (*models.WalletBalance, error) {
	bal, err := tx.LockBalance(ctx, userID, methodID)
	if err != nil {
		return nil, StoreFailure("lock wallet balance", err)
	}
	if bal == nil {
		return nil, ErrNoBalanceRecord
	}
	if bal.Balance.LessThan(amount) {
		return bal, ErrInsufficientFunds
	}
	return bal, nil
}

// Apply 累加带符号金额，余额行不存在时创建
func (BalanceManager) Apply(ctx context.Context, tx Tx, userID, methodID uint, signed decimal.Decimal) (decimal.Decimal, error) {
	balance, err := tx.ApplyDelta(ctx, userID, methodID, signed)
	if err != nil {
		return decimal.Zero, StoreFailure("update wallet balance", err)
	}
	return balance, nil
}

package ledger

import (
	"context"
	"log"
	"time"

	"pocketledger/models"
)

// Engine 交易引擎：每个写操作都是一个原子单元
type Engine struct {
	store     Store
	balances  BalanceManager
	now       func() time.Time
	loc       *time.Location
	pruneZero bool
}

// Option 引擎配置项
type Option func(*Engine)

// WithClock 指定时间来源
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLocation 指定解析交易日期使用的时区
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithZeroBalancePruning 删除交易后余额恰好归零时删除余额行
func WithZeroBalancePruning(enabled bool) Option {
	return func(e *Engine) { e.pruneZero = enabled }
}

// NewEngine 创建交易引擎
func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		now:   time.Now,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddTransaction 新增交易并更新余额
// 支出需先锁定余额行并校验余额充足
func (e *Engine) AddTransaction(ctx context.Context, req AddTransactionRequest) (*models.Transaction, error) {
	date, err := req.Validate(e.loc)
	if err != nil {
		return nil, err
	}

	now := e.now()
	t := &models.Transaction{
		UserID:          req.UserID,
		Type:            req.Type,
		Amount:          req.Amount.Abs(),
		Note:            req.Note,
		CategoryID:      req.CategoryID,
		SubcategoryID:   req.SubcategoryID,
		PaymentMethodID: req.PaymentMethodID,
		TransactionDate: date,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = e.store.Atomic(ctx, func(tx Tx) error {
		if t.Type == models.TypeExpense {
			if _, err := e.balances.CheckSufficient(ctx, tx, t.UserID, t.PaymentMethodID, t.Amount); err != nil {
				return err
			}
		}
		if err := tx.InsertTransaction(ctx, t); err != nil {
			return StoreFailure("insert transaction", err)
		}
		_, err := e.balances.Apply(ctx, tx, t.UserID, t.PaymentMethodID, t.SignedAmount())
		return err
	})
	if err != nil {
		e.logFailure("addTransaction", req.UserID, err)
		return nil, err
	}
	return t, nil
}

// UpdateTransaction 修改金额与备注，方向保持不变，余额按差额调整
func (e *Engine) UpdateTransaction(ctx context.Context, req UpdateTransactionRequest) (*models.Transaction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var updated *models.Transaction
	err := e.store.Atomic(ctx, func(tx Tx) error {
		t, err := tx.FindTransaction(ctx, req.TransactionID, req.UserID)
		if err != nil {
			return StoreFailure("find transaction", err)
		}
		if t == nil {
			return notFound("transaction %d not found", req.TransactionID)
		}

		oldSigned := t.SignedAmount()
		newSigned := t.Type.Sign(req.Amount)
		delta := newSigned.Sub(oldSigned)

		// 仅支出金额增加时校验余额，下调收入与删除收入一致，允许余额为负
		if t.Type == models.TypeExpense && delta.IsNegative() {
			if _, err := e.balances.CheckSufficient(ctx, tx, t.UserID, t.PaymentMethodID, delta.Neg()); err != nil {
				return err
			}
		}

		t.Amount = req.Amount.Abs()
		t.Note = req.Note
		t.UpdatedAt = e.now()
		if err := tx.UpdateTransaction(ctx, t); err != nil {
			return StoreFailure("update transaction", err)
		}
		if !delta.IsZero() {
			if _, err := e.balances.Apply(ctx, tx, t.UserID, t.PaymentMethodID, delta); err != nil {
				return err
			}
		}
		updated = t
		return nil
	})
	if err != nil {
		e.logFailure("updateTransaction", req.UserID, err)
		return nil, err
	}
	return updated, nil
}

// DeleteTransaction 删除交易并回冲其对余额的影响
func (e *Engine) DeleteTransaction(ctx context.Context, req DeleteTransactionRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	err := e.store.Atomic(ctx, func(tx Tx) error {
		t, err := tx.FindTransaction(ctx, req.TransactionID, req.UserID)
		if err != nil {
			return StoreFailure("find transaction", err)
		}
		if t == nil {
			return notFound("transaction %d not found", req.TransactionID)
		}
		if req.PaymentMethodID != 0 && req.PaymentMethodID != t.PaymentMethodID {
			return invalidInput("payment_method_id %d does not match transaction %d", req.PaymentMethodID, t.ID)
		}

		if err := tx.DeleteTransaction(ctx, t.ID); err != nil {
			return StoreFailure("delete transaction", err)
		}
		balance, err := e.balances.Apply(ctx, tx, t.UserID, t.PaymentMethodID, t.SignedAmount().Neg())
		if err != nil {
			return err
		}
		if e.pruneZero && balance.IsZero() {
			if _, err := tx.DeleteBalance(ctx, t.UserID, t.PaymentMethodID); err != nil {
				return StoreFailure("delete wallet balance", err)
			}
		}
		return nil
	})
	if err != nil {
		e.logFailure("deleteTransaction", req.UserID, err)
	}
	return err
}

// DeleteWalletBalance 删除余额行，仍有交易引用该支付方式时拒绝
func (e *Engine) DeleteWalletBalance(ctx context.Context, userID, methodID uint) error {
	if userID == 0 || methodID == 0 {
		return invalidInput("user_id and payment_method_id are required")
	}
	err := e.store.Atomic(ctx, func(tx Tx) error {
		bal, err := tx.LockBalance(ctx, userID, methodID)
		if err != nil {
			return StoreFailure("lock wallet balance", err)
		}
		if bal == nil {
			return notFound("no balance for payment method %d", methodID)
		}
		n, err := tx.CountTransactions(ctx, userID, methodID)
		if err != nil {
			return StoreFailure("count transactions", err)
		}
		if n > 0 {
			return invalidInput("payment method %d still has %d transactions", methodID, n)
		}
		if _, err := tx.DeleteBalance(ctx, userID, methodID); err != nil {
			return StoreFailure("delete wallet balance", err)
		}
		return nil
	})
	if err != nil {
		e.logFailure("deleteWalletBalance", userID, err)
	}
	return err
}

func (e *Engine) logFailure(op string, userID uint, err error) {
	if KindOf(err) == KindStoreFailure {
		log.Printf("%s 失败 user_id=%d: %v", op, userID, err)
	}
}

package ledger_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"pocketledger/ledger"
	"pocketledger/ledger/memstore"
	"pocketledger/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newEngine(t *testing.T, opts ...ledger.Option) (*ledger.Engine, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	return ledger.NewEngine(store, opts...), store
}

func add(t *testing.T, e *ledger.Engine, typ models.TransactionType, amount string, method uint) (*models.Transaction, error) {
	t.Helper()
	return e.AddTransaction(context.Background(), ledger.AddTransactionRequest{
		UserID:          1,
		Type:            typ,
		Amount:          dec(amount),
		Note:            "test",
		CategoryID:      1,
		PaymentMethodID: method,
		TransactionDate: "2024-03-15",
	})
}

func assertBalance(t *testing.T, store *memstore.Store, method uint, want string) {
	t.Helper()
	got, ok := store.Balance(1, method)
	require.True(t, ok, "balance row for method %d missing", method)
	assert.True(t, got.Equal(dec(want)), "balance = %s, want %s", got, want)
}

func TestAddTransaction_IncomeThenExpenses(t *testing.T) {
	e, store := newEngine(t)

	_, err := add(t, e, models.TypeIncome, "100", 1)
	require.NoError(t, err)
	assertBalance(t, store, 1, "100")

	_, err = add(t, e, models.TypeExpense, "30", 1)
	require.NoError(t, err)
	assertBalance(t, store, 1, "70")

	_, err = add(t, e, models.TypeExpense, "100", 1)
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	assert.Equal(t, ledger.KindInsufficientFunds, ledger.KindOf(err))
	assertBalance(t, store, 1, "70")

	list, err := store.ListTransactions(context.Background(), ledger.TransactionFilter{UserID: 1})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAddTransaction_ExpenseWithoutBalanceRecord(t *testing.T) {
	e, store := newEngine(t)

	_, err := add(t, e, models.TypeExpense, "10", 2)
	assert.ErrorIs(t, err, ledger.ErrNoBalanceRecord)

	_, ok := store.Balance(1, 2)
	assert.False(t, ok)
}

func TestAddTransaction_ExactBalanceBoundary(t *testing.T) {
	e, store := newEngine(t)

	_, err := add(t, e, models.TypeIncome, "50.25", 1)
	require.NoError(t, err)

	_, err = add(t, e, models.TypeExpense, "50.26", 1)
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)

	_, err = add(t, e, models.TypeExpense, "50.25", 1)
	require.NoError(t, err)
	assertBalance(t, store, 1, "0")
}

func TestAddTransaction_StoresPositiveAmount(t *testing.T) {
	e, _ := newEngine(t)

	_, err := add(t, e, models.TypeIncome, "100", 1)
	require.NoError(t, err)
	tr, err := add(t, e, models.TypeExpense, "12.50", 1)
	require.NoError(t, err)

	assert.True(t, tr.Amount.Equal(dec("12.50")))
	assert.True(t, tr.SignedAmount().Equal(dec("-12.50")))
	assert.Equal(t, "2024-03-15", tr.TransactionDate.Format("2006-01-02"))
}

func TestAddTransaction_InvalidInput(t *testing.T) {
	e, _ := newEngine(t)
	valid := ledger.AddTransactionRequest{
		UserID: 1, Type: models.TypeIncome, Amount: dec("10"),
		CategoryID: 1, PaymentMethodID: 1, TransactionDate: "2024-03-15",
	}

	cases := map[string]func(r *ledger.AddTransactionRequest){
		"missing user":     func(r *ledger.AddTransactionRequest) { r.UserID = 0 },
		"unknown type":     func(r *ledger.AddTransactionRequest) { r.Type = "transfer" },
		"zero amount":      func(r *ledger.AddTransactionRequest) { r.Amount = decimal.Zero },
		"negative amount":  func(r *ledger.AddTransactionRequest) { r.Amount = dec("-5") },
		"sub-cent amount":  func(r *ledger.AddTransactionRequest) { r.Amount = dec("1.005") },
		"missing category": func(r *ledger.AddTransactionRequest) { r.CategoryID = 0 },
		"missing method":   func(r *ledger.AddTransactionRequest) { r.PaymentMethodID = 0 },
		"malformed date":   func(r *ledger.AddTransactionRequest) { r.TransactionDate = "15/03/2024" },
		"missing date":     func(r *ledger.AddTransactionRequest) { r.TransactionDate = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := valid
			mutate(&req)
			_, err := e.AddTransaction(context.Background(), req)
			assert.ErrorIs(t, err, ledger.ErrInvalidInput)
		})
	}
}

func TestAddTransaction_AcceptsDateTime(t *testing.T) {
	e, _ := newEngine(t)
	tr, err := e.AddTransaction(context.Background(), ledger.AddTransactionRequest{
		UserID: 1, Type: models.TypeIncome, Amount: dec("10"),
		CategoryID: 1, PaymentMethodID: 1, TransactionDate: "2024-03-15 18:45:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, tr.TransactionDate.Hour())
	assert.Equal(t, 15, tr.TransactionDate.Day())
}

func TestUpdateTransaction_AppliesDelta(t *testing.T) {
	e, store := newEngine(t)

	_, err := add(t, e, models.TypeIncome, "100", 1)
	require.NoError(t, err)
	expense, err := add(t, e, models.TypeExpense, "30", 1)
	require.NoError(t, err)

	updated, err := e.UpdateTransaction(context.Background(), ledger.UpdateTransactionRequest{
		TransactionID: expense.ID, UserID: 1, Amount: dec("45"), Note: "more",
	})
	require.NoError(t, err)
	assert.Equal(t, models.TypeExpense, updated.Type)
	assert.True(t, updated.Amount.Equal(dec("45")))
	assert.Equal(t, "more", updated.Note)
	assertBalance(t, store, 1, "55")

	_, err = e.UpdateTransaction(context.Background(), ledger.UpdateTransactionRequest{
		TransactionID: expense.ID, UserID: 1, Amount: dec("10"),
	})
	require.NoError(t, err)
	assertBalance(t, store, 1, "90")
}

func TestUpdateTransaction_IncomeKeepsDirection(t *testing.T) {
	e, store := newEngine(t)

	income, err := add(t, e, models.TypeIncome, "100", 1)
	require.NoError(t, err)

	updated, err := e.UpdateTransaction(context.Background(), ledger.UpdateTransactionRequest{
		TransactionID: income.ID, UserID: 1, Amount: dec("80"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.TypeIncome, updated.Type)
	assertBalance(t, store, 1, "80")
}

func TestUpdateTransaction_LowerIncomeSkipsFundsCheck(t *testing.T) {
	e, store := newEngine(t)

	income, err := add(t, e, models.TypeIncome, "100", 1)
	require.NoError(t, err)
	_, err = add(t, e, models.TypeExpense, "80", 1)
	require.NoError(t, err)
	assertBalance(t, store, 1, "20")

	// 与删除该笔收入的行为一致，余额可以变为负数
	_, err = e.UpdateTransaction(context.Background(), ledger.UpdateTransactionRequest{
		TransactionID: income.ID, UserID: 1, Amount: dec("50"),
	})
	require.NoError(t, err)
	assertBalance(t, store, 1, "-30")

	err = e.DeleteTransaction(context.Background(), ledger.DeleteTransactionRequest{
		TransactionID: income.ID, UserID: 1, PaymentMethodID: 1,
	})
	require.NoError(t, err)
	assertBalance(t, store, 1, "-80")
}

func TestUpdateTransaction_ExpenseIncreaseNeedsFunds(t *testing.T) {
	e, store := newEngine(t)

	_, err := add(t, e, models.TypeIncome, "50", 1)
	require.NoError(t, err)
	expense, err := add(t, e, models.TypeExpense, "30", 1)
	require.NoError(t, err)

	_, err = e.UpdateTransaction(context.Background(), ledger.UpdateTransactionRequest{
		TransactionID: expense.ID, UserID: 1, Amount: dec("51"),
	})
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	assertBalance(t, store, 1, "20")

	_, err = e.UpdateTransaction(context.Background(), ledger.UpdateTransactionRequest{
		TransactionID: expense.ID, UserID: 1, Amount: dec("50"),
	})
	require.NoError(t, err)
	assertBalance(t, store, 1, "0")
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	e, _ := newEngine(t)

	_, err := e.UpdateTransaction(context.Background(), ledger.UpdateTransactionRequest{
		TransactionID: 99, UserID: 1, Amount: dec("1"),
	})
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	income, err := add(t, e, models.TypeIncome, "10", 1)
	require.NoError(t, err)
	// 其他用户不可见
	_, err = e.UpdateTransaction(context.Background(), ledger.UpdateTransactionRequest{
		TransactionID: income.ID, UserID: 2, Amount: dec("1"),
	})
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestDeleteTransaction_RestoresContribution(t *testing.T) {
	e, store := newEngine(t)

	_, err := add(t, e, models.TypeIncome, "60", 1)
	require.NoError(t, err)
	_, err = add(t, e, models.TypeIncome, "30", 1)
	require.NoError(t, err)
	expense, err := add(t, e, models.TypeExpense, "20", 1)
	require.NoError(t, err)
	assertBalance(t, store, 1, "70")

	err = e.DeleteTransaction(context.Background(), ledger.DeleteTransactionRequest{
		TransactionID: expense.ID, UserID: 1, PaymentMethodID: 1,
	})
	require.NoError(t, err)
	assertBalance(t, store, 1, "90")

	list, err := store.ListTransactions(context.Background(), ledger.TransactionFilter{UserID: 1})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestDeleteTransaction_Errors(t *testing.T) {
	e, store := newEngine(t)

	err := e.DeleteTransaction(context.Background(), ledger.DeleteTransactionRequest{TransactionID: 5, UserID: 1})
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	income, err := add(t, e, models.TypeIncome, "10", 1)
	require.NoError(t, err)

	err = e.DeleteTransaction(context.Background(), ledger.DeleteTransactionRequest{
		TransactionID: income.ID, UserID: 1, PaymentMethodID: 2,
	})
	assert.ErrorIs(t, err, ledger.ErrInvalidInput)
	assertBalance(t, store, 1, "10")

	err = e.DeleteTransaction(context.Background(), ledger.DeleteTransactionRequest{TransactionID: income.ID})
	assert.ErrorIs(t, err, ledger.ErrInvalidInput)
}

func TestDeleteTransaction_ZeroBalancePruning(t *testing.T) {
	e, store := newEngine(t, ledger.WithZeroBalancePruning(true))

	income, err := add(t, e, models.TypeIncome, "10", 1)
	require.NoError(t, err)
	require.NoError(t, e.DeleteTransaction(context.Background(), ledger.DeleteTransactionRequest{
		TransactionID: income.ID, UserID: 1,
	}))

	_, ok := store.Balance(1, 1)
	assert.False(t, ok)
}

func TestDeleteTransaction_KeepsZeroBalanceByDefault(t *testing.T) {
	e, store := newEngine(t)

	income, err := add(t, e, models.TypeIncome, "10", 1)
	require.NoError(t, err)
	require.NoError(t, e.DeleteTransaction(context.Background(), ledger.DeleteTransactionRequest{
		TransactionID: income.ID, UserID: 1,
	}))
	assertBalance(t, store, 1, "0")
}

func TestDeleteWalletBalance(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()

	assert.ErrorIs(t, e.DeleteWalletBalance(ctx, 1, 1), ledger.ErrNotFound)

	income, err := add(t, e, models.TypeIncome, "10", 1)
	require.NoError(t, err)
	assert.ErrorIs(t, e.DeleteWalletBalance(ctx, 1, 1), ledger.ErrInvalidInput)

	require.NoError(t, e.DeleteTransaction(ctx, ledger.DeleteTransactionRequest{TransactionID: income.ID, UserID: 1}))
	require.NoError(t, e.DeleteWalletBalance(ctx, 1, 1))
	_, ok := store.Balance(1, 1)
	assert.False(t, ok)
}

// failingStore 在余额更新时注入存储错误
type failingStore struct {
	ledger.Store
}

func (f failingStore) Atomic(ctx context.Context, fn func(tx ledger.Tx) error) error {
	return f.Store.Atomic(ctx, func(tx ledger.Tx) error {
		return fn(failingTx{tx})
	})
}

type failingTx struct {
	ledger.Tx
}

func (failingTx) ApplyDelta(context.Context, uint, uint, decimal.Decimal) (decimal.Decimal, error) {
	return decimal.Zero, errors.New("lost connection")
}

func TestAddTransaction_RollsBackOnStoreFailure(t *testing.T) {
	store := memstore.New()
	e := ledger.NewEngine(failingStore{store})

	_, err := e.AddTransaction(context.Background(), ledger.AddTransactionRequest{
		UserID: 1, Type: models.TypeIncome, Amount: dec("10"),
		CategoryID: 1, PaymentMethodID: 1, TransactionDate: "2024-03-15",
	})
	assert.ErrorIs(t, err, ledger.ErrStoreFailure)
	assert.Contains(t, err.Error(), "lost connection")

	list, err := store.ListTransactions(context.Background(), ledger.TransactionFilter{UserID: 1})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteTransaction_RollsBackOnStoreFailure(t *testing.T) {
	store := memstore.New()
	income, err := ledger.NewEngine(store).AddTransaction(context.Background(), ledger.AddTransactionRequest{
		UserID: 1, Type: models.TypeIncome, Amount: dec("10"),
		CategoryID: 1, PaymentMethodID: 1, TransactionDate: "2024-03-15",
	})
	require.NoError(t, err)

	err = ledger.NewEngine(failingStore{store}).DeleteTransaction(context.Background(), ledger.DeleteTransactionRequest{
		TransactionID: income.ID, UserID: 1,
	})
	assert.ErrorIs(t, err, ledger.ErrStoreFailure)

	list, err := store.ListTransactions(context.Background(), ledger.TransactionFilter{UserID: 1})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assertBalance(t, store, 1, "10")
}

// 任意增删改序列之后，余额等于该支付方式下所有交易带符号金额之和
func TestBalanceMatchesLedger_RandomOperations(t *testing.T) {
	e, store := newEngine(t, ledger.WithClock(func() time.Time {
		return time.Date(2024, 3, 31, 12, 0, 0, 0, time.Local)
	}))
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	var live []*models.Transaction
	for i := 0; i < 400; i++ {
		method := uint(rng.Intn(3) + 1)
		amount := decimal.New(int64(rng.Intn(10000)+1), -2)

		switch op := rng.Intn(4); {
		case op <= 1 || len(live) == 0:
			typ := models.TypeIncome
			if rng.Intn(2) == 0 {
				typ = models.TypeExpense
			}
			tr, err := e.AddTransaction(ctx, ledger.AddTransactionRequest{
				UserID: 1, Type: typ, Amount: amount, CategoryID: 1,
				PaymentMethodID: method, TransactionDate: "2024-03-15",
			})
			if err == nil {
				live = append(live, tr)
			} else {
				kind := ledger.KindOf(err)
				require.True(t, kind == ledger.KindInsufficientFunds || kind == ledger.KindNoBalanceRecord, err.Error())
			}
		case op == 2:
			tr := live[rng.Intn(len(live))]
			_, err := e.UpdateTransaction(ctx, ledger.UpdateTransactionRequest{
				TransactionID: tr.ID, UserID: 1, Amount: amount,
			})
			if err != nil {
				require.ErrorIs(t, err, ledger.ErrInsufficientFunds)
			}
		default:
			idx := rng.Intn(len(live))
			require.NoError(t, e.DeleteTransaction(ctx, ledger.DeleteTransactionRequest{
				TransactionID: live[idx].ID, UserID: 1,
			}))
			live = append(live[:idx], live[idx+1:]...)
		}

		for m := uint(1); m <= 3; m++ {
			list, err := store.ListTransactions(ctx, ledger.TransactionFilter{UserID: 1, PaymentMethodID: m})
			require.NoError(t, err)
			sum := decimal.Zero
			for _, tr := range list {
				sum = sum.Add(tr.SignedAmount())
			}
			got, ok := store.Balance(1, m)
			if !ok {
				require.True(t, sum.IsZero(), "method %d has transactions but no balance", m)
				continue
			}
			require.True(t, got.Equal(sum), "step %d method %d: balance %s != ledger %s", i, m, got, sum)
		}
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, ledger.Kind(""), ledger.KindOf(nil))
	assert.Equal(t, ledger.KindStoreFailure, ledger.KindOf(errors.New("boom")))
	assert.Equal(t, ledger.KindNotFound, ledger.KindOf(ledger.ErrNotFound))
	assert.False(t, errors.Is(ledger.ErrNotFound, ledger.ErrInvalidInput))

	wrapped := ledger.StoreFailure("insert", errors.New("duplicate entry"))
	assert.ErrorIs(t, wrapped, ledger.ErrStoreFailure)
	// 已分类的错误不会被再次包装
	assert.Same(t, ledger.ErrNotFound, ledger.StoreFailure("x", ledger.ErrNotFound))
}

package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"pocketledger/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls   int
	methods []models.PaymentMethod
	err     error
}

func (c *countingSource) Categories(_ context.Context, typ models.TransactionType) ([]models.Category, error) {
	c.calls++
	all := []models.Category{
		{ID: 1, Name: "Food", Type: models.TypeExpense},
		{ID: 2, Name: "Salary", Type: models.TypeIncome},
	}
	if typ == "" {
		return all, c.err
	}
	var out []models.Category
	for _, cat := range all {
		if cat.Type == typ {
			out = append(out, cat)
		}
	}
	return out, c.err
}

func (c *countingSource) Subcategories(_ context.Context, categoryID uint) ([]models.Subcategory, error) {
	c.calls++
	return []models.Subcategory{{ID: 7, CategoryID: 1, Name: "Coffee"}}, c.err
}

func (c *countingSource) PaymentMethods(_ context.Context) ([]models.PaymentMethod, error) {
	c.calls++
	return c.methods, c.err
}

func TestService_CachesLookups(t *testing.T) {
	src := &countingSource{methods: []models.PaymentMethod{{ID: 1, Name: "Cash"}}}
	svc := New(src, time.Minute)
	ctx := context.Background()

	first, err := svc.PaymentMethods(ctx)
	require.NoError(t, err)
	second, err := svc.PaymentMethods(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.calls)

	svc.Invalidate()
	_, err = svc.PaymentMethods(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestService_CategoriesByType(t *testing.T) {
	svc := New(&countingSource{}, time.Minute)

	list, err := svc.Categories(context.Background(), models.TypeIncome)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Salary", list[0].Name)
}

func TestService_Names(t *testing.T) {
	src := &countingSource{methods: []models.PaymentMethod{{ID: 3, Name: "E-Wallet"}}}
	svc := New(src, time.Minute)

	names, err := svc.Names(context.Background())
	require.NoError(t, err)

	sub := uint(7)
	assert.Equal(t, "Food", names.Category(1))
	assert.Equal(t, "Coffee", names.Subcategory(&sub))
	assert.Equal(t, "", names.Subcategory(nil))
	assert.Equal(t, "E-Wallet", names.PaymentMethod(3))
	assert.Equal(t, "", names.PaymentMethod(99))
}

func TestService_SourceErrorNotCached(t *testing.T) {
	src := &countingSource{err: errors.New("connection refused")}
	svc := New(src, time.Minute)

	_, err := svc.PaymentMethods(context.Background())
	assert.Error(t, err)

	src.err = nil
	src.methods = []models.PaymentMethod{{ID: 1, Name: "Cash"}}
	list, err := svc.PaymentMethods(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

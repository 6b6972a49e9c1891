package transactions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virgo-SSS/Ternakku/internal/adapters/storage/memory"
	"github.com/Virgo-SSS/Ternakku/internal/platform/apperr"
	"github.com/Virgo-SSS/Ternakku/internal/platform/query"
)

func newTestService() *Service {
	svc := NewService(memory.NewTable(Codec))
	clock := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	}
	return svc
}

func day(s string) time.Time {
	t, _ := time.Parse(query.DateLayout, s)
	return t
}

func seed(t *testing.T, svc *Service) {
	t.Helper()
	rows := []CreateInput{
		{Type: TypeIncome, Amount: 5_000_000, Category: "Penjualan", TransactionDate: day("2024-05-01")},
		{Type: TypeExpense, Amount: 750_000, Category: "pakan", TransactionDate: day("2024-05-03")},
		{Type: TypeExpense, Amount: 250_000, Category: "obat", TransactionDate: day("2024-05-20")},
		{Type: TypeIncome, Amount: 1_000_000, Category: "penjualan", TransactionDate: day("2024-06-02")},
	}
	for _, in := range rows {
		_, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
	}
}

func TestCreate_RequiredFields(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), CreateInput{Type: "gift", Amount: 0})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "type")
	assert.Contains(t, ve.Fields, "amount")
	assert.Contains(t, ve.Fields, "transaction_date")
}

func TestList_DateRangeAndType(t *testing.T) {
	svc := newTestService()
	seed(t, svc)

	items, err := svc.List(context.Background(), map[string]string{
		"type":             "expense",
		"transaction_date": "2024-05-01 to 2024-05-31",
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "pakan", items[0].Category)
}

func TestSummary_Totals(t *testing.T) {
	svc := newTestService()
	seed(t, svc)

	s, err := svc.Summary(context.Background(), map[string]string{"transaction_date": "2024-05-01 - 2024-05-31"})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 5_000_000, s.Income, 0.01)
	assert.InDelta(t, 1_000_000, s.Expense, 0.01)
	assert.InDelta(t, 4_000_000, s.Balance, 0.01)
	assert.InDelta(t, -750_000, s.ByCategory["pakan"], 0.01)

	all, err := svc.Summary(context.Background(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 6_000_000, all.ByCategory["penjualan"], 0.01)
}

func TestUpdate_Amount(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tx, err := svc.Create(ctx, CreateInput{Type: TypeExpense, Amount: 10, TransactionDate: day("2024-01-01")})
	require.NoError(t, err)

	neg := -5.0
	_, err = svc.Update(ctx, tx.ID, UpdateInput{Amount: &neg})
	assert.True(t, apperr.IsValidation(err))

	amt := 20.5
	got, err := svc.Update(ctx, tx.ID, UpdateInput{Amount: &amt})
	require.NoError(t, err)
	assert.InDelta(t, 20.5, got.Amount, 0.001)
	assert.Equal(t, "2024-01-01", query.DateValue(got.TransactionDate))
}

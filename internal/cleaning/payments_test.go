package cleaning

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespipe/pkg/contracts/domain"
)

func TestPaymentCleanerFullRowDedup(t *testing.T) {
	cleaner := NewPaymentCleaner(nil)
	rows := []domain.RawPayment{
		{OrderID: "1", PaidAmount: "50", PaymentDate: "2024-01-10"},
		{OrderID: "1", PaidAmount: "50", PaymentDate: "2024-01-10"},
		{OrderID: "1", PaidAmount: "25", PaymentDate: "2024-01-10"},
		{OrderID: "2", PaidAmount: "50", PaymentDate: "2024-01-10"},
	}

	records, report := cleaner.Clean(context.Background(), rows)

	// Only the exact duplicate collapses; the same order_id with a
	// different amount is a distinct payment.
	require.Len(t, records, 3)
	assert.True(t, report.HasWarning(domain.WarnDuplicatesRemoved))
	assert.Equal(t, 4, report.RowsIn)
	assert.Equal(t, 3, report.RowsOut)
}

func TestPaymentCleanerDateCoercion(t *testing.T) {
	cleaner := NewPaymentCleaner(nil)
	rows := []domain.RawPayment{
		{OrderID: "1", PaidAmount: "50", PaymentDate: "2024-01-10"},
		{OrderID: "2", PaidAmount: "60", PaymentDate: "garbage"},
		{OrderID: "3", PaidAmount: "70", PaymentDate: ""},
	}

	records, report := cleaner.Clean(context.Background(), rows)

	require.Len(t, records, 3)
	require.NotNil(t, records[0].PaymentDate)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), *records[0].PaymentDate)
	// A bad date nulls that row only, the column survives.
	assert.Nil(t, records[1].PaymentDate)
	assert.Nil(t, records[2].PaymentDate)
	assert.True(t, report.HasWarning(domain.WarnUnparseableDate))
}

func TestPaymentCleanerAmountCoercion(t *testing.T) {
	cleaner := NewPaymentCleaner(nil)
	rows := []domain.RawPayment{
		{OrderID: "1", PaidAmount: "50.5", PaymentDate: "2024-01-10"},
		{OrderID: "2", PaidAmount: "not-a-number", PaymentDate: "2024-01-11"},
	}

	records, report := cleaner.Clean(context.Background(), rows)

	require.NotNil(t, records[0].PaidAmount)
	assert.Equal(t, 50.5, *records[0].PaidAmount)
	assert.Nil(t, records[1].PaidAmount)
	assert.True(t, report.HasWarning(domain.WarnUnparseableAmount))
}

func TestPaymentCleanerEmptyInput(t *testing.T) {
	cleaner := NewPaymentCleaner(nil)

	records, report := cleaner.Clean(context.Background(), nil)

	assert.Empty(t, records)
	assert.Equal(t, 0, report.RowsIn)
}

func TestPaymentCleanerIdempotent(t *testing.T) {
	cleaner := NewPaymentCleaner(nil)
	rows := []domain.RawPayment{
		{OrderID: "1", PaidAmount: "50", PaymentDate: "2024-01-10"},
		{OrderID: "1", PaidAmount: "50", PaymentDate: "2024-01-10"},
		{OrderID: "2", PaidAmount: "60", PaymentDate: "2024-01-11"},
	}

	once, _ := cleaner.Clean(context.Background(), rows)

	again := make([]domain.RawPayment, len(once))
	for i, r := range once {
		again[i] = domain.RawPayment{
			OrderID:     r.OrderID,
			PaidAmount:  FormatAmount(r.PaidAmount),
			PaymentDate: FormatDate(r.PaymentDate),
		}
	}
	twice, report := cleaner.Clean(context.Background(), again)

	require.Len(t, twice, len(once))
	assert.False(t, report.HasWarning(domain.WarnDuplicatesRemoved))
	for i := range once {
		assert.Equal(t, once[i], twice[i])
	}
}

package reporting

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespipe/internal/config"
	"salespipe/pkg/contracts/domain"
)

// The reporting tests need a live Postgres instance. Point
// SALESPIPE_TEST_DSN at a scratch database to run them; they drop and
// recreate the reporting tables.
func testService(t *testing.T) *Service {
	t.Helper()

	dsn := os.Getenv("SALESPIPE_TEST_DSN")
	if dsn == "" {
		t.Skip("SALESPIPE_TEST_DSN not set, skipping reporting integration test")
	}

	svc, err := Open(context.Background(), config.ReportingConfig{
		DSN:          dsn,
		QueryTimeout: 30 * time.Second,
		TopCustomers: 5,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func ptrFloat(v float64) *float64 { return &v }

func TestServiceLoadAndQuery(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	customers := []domain.CustomerRecord{
		{CustomerID: "C1", Name: "Alice", Email: "alice@example.com", Country: "United States"},
		{CustomerID: "C2", Name: "Bob", Email: domain.MissingEmailPlaceholder, EmailMissing: true, Country: "Ireland"},
	}
	orders := []domain.OrderRecord{
		{OrderID: "O1", CustomerID: "C1", Amount: ptrFloat(250), Status: "Completed", IsValidAmount: true},
		{OrderID: "O2", CustomerID: "C1", Amount: ptrFloat(100), Status: "Pending", IsValidAmount: true},
		{OrderID: "O3", CustomerID: "C2", Amount: ptrFloat(75), Status: "Completed", IsValidAmount: true},
		{OrderID: "O4", CustomerID: "C2", Status: "Cancelled"},
	}
	payments := []domain.PaymentRecord{
		{OrderID: "O1", PaidAmount: ptrFloat(250)},
	}

	require.NoError(t, svc.LoadTables(ctx, customers, orders, payments))

	t.Run("top customers by spend", func(t *testing.T) {
		top, err := svc.TopCustomersBySpend(ctx, 5)
		require.NoError(t, err)
		require.Len(t, top, 2)

		assert.Equal(t, "C1", top[0].CustomerID)
		assert.Equal(t, "Alice", top[0].Name)
		assert.InDelta(t, 350, top[0].TotalSpend, 0.001)
		assert.Equal(t, "C2", top[1].CustomerID)
		assert.InDelta(t, 75, top[1].TotalSpend, 0.001)
	})

	t.Run("revenue by status", func(t *testing.T) {
		rows, err := svc.RevenueByStatus(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 3)

		byStatus := make(map[string]StatusRevenue, len(rows))
		for _, row := range rows {
			byStatus[row.Status] = row
		}
		assert.InDelta(t, 325, byStatus["Completed"].Revenue, 0.001)
		assert.Equal(t, 2, byStatus["Completed"].Orders)
		assert.InDelta(t, 0, byStatus["Cancelled"].Revenue, 0.001)
		assert.Equal(t, 1, byStatus["Cancelled"].Orders)
	})

	t.Run("reload replaces previous snapshot", func(t *testing.T) {
		require.NoError(t, svc.LoadTables(ctx, customers[:1], orders[:1], nil))

		top, err := svc.TopCustomersBySpend(ctx, 5)
		require.NoError(t, err)
		require.Len(t, top, 1)
		assert.InDelta(t, 250, top[0].TotalSpend, 0.001)
	})
}

package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespipe/internal/config"
	"salespipe/internal/operations"
	"salespipe/pkg/contracts/domain"
)

func ptrFloat(v float64) *float64 { return &v }
func ptrString(v string) *string  { return &v }
func ptrInt(v int) *int           { return &v }

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCustomersTableKeepsRawDateOnParseFailure(t *testing.T) {
	table := CustomersTable([]domain.CustomerRecord{
		{CustomerID: "C1", Name: "Alice", Email: "alice@example.com", Country: "United States", SignupDate: date(2023, time.January, 15)},
		{CustomerID: "C2", Name: "Bob", Email: domain.MissingEmailPlaceholder, EmailMissing: true, Country: "Ireland", SignupDateRaw: "not-a-date"},
	})

	require.Len(t, table.Records, 2)
	assert.Equal(t, "2023-01-15", table.Records[0][5])
	assert.Equal(t, "not-a-date", table.Records[1][5])
	assert.Equal(t, "true", table.Records[1][3])
}

func TestFactsTableFormatsOptionalFields(t *testing.T) {
	facts := []domain.FactRow{
		{
			OrderID:    "O1",
			CustomerID: "C1",
			Amount:     ptrFloat(120.5),
			Status:     "Completed",
			OrderDate:  date(2023, time.March, 1),

			CustomerName:  ptrString("Alice"),
			CustomerEmail: ptrString("alice@example.com"),
			Country:       ptrString("United States"),

			PaidAmount:  ptrFloat(120.5),
			PaymentDate: date(2023, time.March, 3),

			OrderYear:        ptrInt(2023),
			PaymentDelayDays: ptrInt(2),
			IsFullyPaid:      true,
		},
		{OrderID: "O2", CustomerID: "CX", Status: "Pending", PaidAmount: ptrFloat(0)},
	}

	table := FactsTable(facts)
	require.Len(t, table.Records, 2)
	require.Len(t, table.Headers, 17)

	assert.Equal(t, "120.5", table.Records[0][2])
	assert.Equal(t, "2", table.Records[0][15])
	assert.Equal(t, "true", table.Records[0][16])

	// Unmatched order: customer enrichment and derived fields stay empty.
	assert.Equal(t, "", table.Records[1][7])
	assert.Equal(t, "", table.Records[1][14])
	assert.Equal(t, "", table.Records[1][15])
	assert.Equal(t, "false", table.Records[1][16])
}

func TestAggregateTablesPivotLayout(t *testing.T) {
	tables := AggregateTables(domain.AggregationResult{
		RevenueByCountry: []domain.CountryRevenue{{Country: "United States", Amount: 500}},
		AvgOrderValue:    []domain.CustomerAvgOrder{{CustomerID: "C1", Name: "Alice", AvgOrderValue: 250}},
		MonthlyRevenue:   []domain.MonthlyRevenue{{Month: "2023-03", Amount: 500}},
		PivotCountryStatus: domain.PivotTable{
			Statuses: []string{"Completed", "Pending"},
			Rows: []domain.PivotRow{
				{Country: "Ireland", Cells: []float64{75, 0}},
				{Country: "United States", Cells: []float64{250, 100}},
			},
		},
	})

	require.Len(t, tables, 4)

	pivot := tables[domain.AggPivotCountryStatus]
	assert.Equal(t, []string{"country", "Completed", "Pending"}, pivot.Headers)
	require.Len(t, pivot.Records, 2)
	assert.Equal(t, []string{"Ireland", "75", "0"}, pivot.Records[0])
	assert.Equal(t, []string{"United States", "250", "100"}, pivot.Records[1])
}

func TestExportRunWritesAllFiles(t *testing.T) {
	outDir := t.TempDir()
	cfg := &config.Config{
		Paths: config.PathsConfig{DataDir: t.TempDir(), OutputDir: outDir},
	}

	result := &operations.RunResult{
		RunID: "test-run",
		Customers: []domain.CustomerRecord{
			{CustomerID: "C1", Name: "Alice", Email: "alice@example.com", Country: "United States"},
		},
		Orders: []domain.OrderRecord{
			{OrderID: "O1", CustomerID: "C1", Amount: ptrFloat(100), Status: "Completed", IsValidAmount: true},
		},
		Payments: []domain.PaymentRecord{
			{OrderID: "O1", PaidAmount: ptrFloat(100)},
		},
		Facts: []domain.FactRow{
			{OrderID: "O1", CustomerID: "C1", Amount: ptrFloat(100), Status: "Completed", IsFullyPaid: true},
		},
		Aggregates: domain.AggregationResult{
			RevenueByCountry: []domain.CountryRevenue{{Country: "United States", Amount: 100}},
			PivotCountryStatus: domain.PivotTable{
				Statuses: []string{"Completed"},
				Rows:     []domain.PivotRow{{Country: "United States", Cells: []float64{100}}},
			},
		},
	}

	exp := NewExporter(cfg, nil)
	require.NoError(t, exp.ExportRun(result))

	for _, name := range []string{
		"customers_clean.csv", "orders_clean.csv", "payments_clean.csv", "final_fact_orders.csv",
	} {
		rows := readCSV(t, filepath.Join(outDir, name))
		require.NotEmpty(t, rows, name)
		assert.Len(t, rows, 2, name)
	}

	for _, name := range []string{
		domain.AggRevenueByCountry, domain.AggAvgOrderValue,
		domain.AggMonthlyRevenue, domain.AggPivotCountryStatus,
	} {
		path := filepath.Join(outDir, "aggregates", name+".csv")
		rows := readCSV(t, path)
		require.NotEmpty(t, rows, name)
	}

	facts := readCSV(t, filepath.Join(outDir, "final_fact_orders.csv"))
	assert.Equal(t, "order_id", facts[0][0])
	assert.Equal(t, "is_fully_paid", facts[0][16])
}

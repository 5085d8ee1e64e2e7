package aggregation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespipe/pkg/contracts/domain"
)

func ptrFloat(v float64) *float64 { return &v }

func ptrStr(s string) *string { return &s }

func ptrDate(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func fact(country, customer, name string, amount *float64, status string, orderDate *time.Time) domain.FactRow {
	f := domain.FactRow{
		OrderID:    "O",
		CustomerID: customer,
		Amount:     amount,
		Status:     status,
		OrderDate:  orderDate,
	}
	if country != "" {
		f.Country = ptrStr(country)
	}
	if name != "" {
		f.CustomerName = ptrStr(name)
	}
	return f
}

func testFacts() []domain.FactRow {
	return []domain.FactRow{
		fact("United States", "C1", "Alice", ptrFloat(100), "Paid", ptrDate(2024, 1, 10)),
		fact("United States", "C1", "Alice", ptrFloat(50), "Pending", ptrDate(2024, 1, 20)),
		fact("Germany", "C2", "Bob", ptrFloat(200), "Paid", ptrDate(2024, 2, 5)),
		fact("United Kingdom", "C3", "Carol", ptrFloat(25), "Cancelled", ptrDate(2024, 2, 15)),
	}
}

func TestRevenueByCountrySortedDescending(t *testing.T) {
	agg := NewAggregator(nil)

	result := agg.Aggregate(context.Background(), testFacts())

	rows := result.RevenueByCountry
	require.Len(t, rows, 3)
	assert.Equal(t, domain.CountryRevenue{Country: "Germany", Amount: 200}, rows[0])
	assert.Equal(t, domain.CountryRevenue{Country: "United States", Amount: 150}, rows[1])
	assert.Equal(t, domain.CountryRevenue{Country: "United Kingdom", Amount: 25}, rows[2])
}

func TestRevenueByCountryNoLeakage(t *testing.T) {
	agg := NewAggregator(nil)
	facts := testFacts()

	result := agg.Aggregate(context.Background(), facts)

	var factTotal, aggTotal float64
	for _, f := range facts {
		if f.Amount != nil {
			factTotal += *f.Amount
		}
	}
	for _, row := range result.RevenueByCountry {
		aggTotal += row.Amount
	}
	assert.InDelta(t, factTotal, aggTotal, 1e-9)
}

func TestRevenueByCountryStableTies(t *testing.T) {
	agg := NewAggregator(nil)
	facts := []domain.FactRow{
		fact("Zambia", "C1", "A", ptrFloat(10), "Paid", nil),
		fact("Austria", "C2", "B", ptrFloat(10), "Paid", nil),
	}

	result := agg.Aggregate(context.Background(), facts)

	require.Len(t, result.RevenueByCountry, 2)
	assert.Equal(t, "Austria", result.RevenueByCountry[0].Country)
	assert.Equal(t, "Zambia", result.RevenueByCountry[1].Country)
}

func TestAvgOrderValue(t *testing.T) {
	agg := NewAggregator(nil)

	result := agg.Aggregate(context.Background(), testFacts())

	rows := result.AvgOrderValue
	require.Len(t, rows, 3)
	assert.Equal(t, "C1", rows[0].CustomerID)
	assert.Equal(t, "Alice", rows[0].Name)
	assert.InDelta(t, 75.0, rows[0].AvgOrderValue, 1e-9)
	assert.InDelta(t, 200.0, rows[1].AvgOrderValue, 1e-9)
}

func TestAvgOrderValueSkipsUnmatchedCustomers(t *testing.T) {
	agg := NewAggregator(nil)
	facts := append(testFacts(),
		fact("", "C404", "", ptrFloat(999), "Paid", ptrDate(2024, 3, 1)))

	result := agg.Aggregate(context.Background(), facts)

	for _, row := range result.AvgOrderValue {
		assert.NotEqual(t, "C404", row.CustomerID)
	}
}

func TestMonthlyRevenue(t *testing.T) {
	agg := NewAggregator(nil)

	result := agg.Aggregate(context.Background(), testFacts())

	rows := result.MonthlyRevenue
	require.Len(t, rows, 2)
	assert.Equal(t, domain.MonthlyRevenue{Month: "2024-01", Amount: 150}, rows[0])
	assert.Equal(t, domain.MonthlyRevenue{Month: "2024-02", Amount: 225}, rows[1])
}

func TestMonthlyRevenueExcludesNilOrderDate(t *testing.T) {
	agg := NewAggregator(nil)
	facts := append(testFacts(),
		fact("France", "C5", "Eve", ptrFloat(500), "Paid", nil))

	result := agg.Aggregate(context.Background(), facts)

	var total float64
	for _, row := range result.MonthlyRevenue {
		total += row.Amount
	}
	assert.InDelta(t, 375.0, total, 1e-9, "nil order_date rows are excluded from the trend")

	// The same row still counts toward the country grouping.
	assert.InDelta(t, 500.0, result.PivotCountryStatus.Cell("France", "Paid"), 1e-9)
}

func TestPivotCountryStatus(t *testing.T) {
	agg := NewAggregator(nil)

	result := agg.Aggregate(context.Background(), testFacts())

	pivot := result.PivotCountryStatus
	assert.Equal(t, []string{"Cancelled", "Paid", "Pending"}, pivot.Statuses)
	require.Len(t, pivot.Rows, 3)

	assert.InDelta(t, 100.0, pivot.Cell("United States", "Paid"), 1e-9)
	assert.InDelta(t, 50.0, pivot.Cell("United States", "Pending"), 1e-9)
	assert.InDelta(t, 200.0, pivot.Cell("Germany", "Paid"), 1e-9)
}

func TestPivotMissingCombinationsAreZero(t *testing.T) {
	agg := NewAggregator(nil)

	result := agg.Aggregate(context.Background(), testFacts())

	pivot := result.PivotCountryStatus
	// Germany never had a Pending or Cancelled order.
	assert.Equal(t, 0.0, pivot.Cell("Germany", "Pending"))
	assert.Equal(t, 0.0, pivot.Cell("Germany", "Cancelled"))
	assert.Equal(t, 0.0, pivot.Cell("United Kingdom", "Paid"))
}

func TestAggregateEmptyFacts(t *testing.T) {
	agg := NewAggregator(nil)

	result := agg.Aggregate(context.Background(), nil)

	assert.Empty(t, result.RevenueByCountry)
	assert.Empty(t, result.AvgOrderValue)
	assert.Empty(t, result.MonthlyRevenue)
	assert.Empty(t, result.PivotCountryStatus.Rows)
}

func TestAggregateMissingAmountContributesZero(t *testing.T) {
	agg := NewAggregator(nil)
	facts := []domain.FactRow{
		fact("Spain", "C1", "Ana", nil, "Paid", ptrDate(2024, 4, 1)),
		fact("Spain", "C1", "Ana", ptrFloat(30), "Paid", ptrDate(2024, 4, 2)),
	}

	result := agg.Aggregate(context.Background(), facts)

	require.Len(t, result.RevenueByCountry, 1)
	assert.InDelta(t, 30.0, result.RevenueByCountry[0].Amount, 1e-9)
	// The average skips the missing amount instead of counting it as 0.
	require.Len(t, result.AvgOrderValue, 1)
	assert.InDelta(t, 30.0, result.AvgOrderValue[0].AvgOrderValue, 1e-9)
}

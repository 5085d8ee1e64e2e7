package exporter

import (
	"strconv"

	"salespipe/internal/cleaning"
	"salespipe/pkg/contracts/domain"
)

// Table is a rendered, serialization-ready view of a record slice.
type Table struct {
	Headers []string
	Records [][]string
}

// CustomersTable renders cleaned customers. Rows whose signup_date
// column failed to parse keep the original raw value.
func CustomersTable(records []domain.CustomerRecord) Table {
	t := Table{Headers: []string{"customer_id", "name", "email", "email_missing", "country", "signup_date"}}
	for _, r := range records {
		signup := cleaning.FormatDate(r.SignupDate)
		if r.SignupDate == nil {
			signup = r.SignupDateRaw
		}
		t.Records = append(t.Records, []string{
			r.CustomerID, r.Name, r.Email, strconv.FormatBool(r.EmailMissing), r.Country, signup,
		})
	}
	return t
}

// OrdersTable renders cleaned orders.
func OrdersTable(records []domain.OrderRecord) Table {
	t := Table{Headers: []string{"order_id", "customer_id", "amount", "status", "order_date", "is_valid_amount", "is_outlier"}}
	for _, r := range records {
		t.Records = append(t.Records, []string{
			r.OrderID, r.CustomerID, cleaning.FormatAmount(r.Amount), r.Status,
			cleaning.FormatDate(r.OrderDate),
			strconv.FormatBool(r.IsValidAmount), strconv.FormatBool(r.IsOutlier),
		})
	}
	return t
}

// PaymentsTable renders cleaned payments.
func PaymentsTable(records []domain.PaymentRecord) Table {
	t := Table{Headers: []string{"order_id", "paid_amount", "payment_date"}}
	for _, r := range records {
		t.Records = append(t.Records, []string{
			r.OrderID, cleaning.FormatAmount(r.PaidAmount), cleaning.FormatDate(r.PaymentDate),
		})
	}
	return t
}

// FactsTable renders the derived fact table.
func FactsTable(facts []domain.FactRow) Table {
	t := Table{Headers: []string{
		"order_id", "customer_id", "amount", "status", "order_date",
		"is_valid_amount", "is_outlier",
		"customer_name", "customer_email", "email_missing", "country", "signup_date",
		"paid_amount", "payment_date",
		"order_year", "payment_delay_days", "is_fully_paid",
	}}
	for _, f := range facts {
		t.Records = append(t.Records, []string{
			f.OrderID, f.CustomerID, cleaning.FormatAmount(f.Amount), f.Status,
			cleaning.FormatDate(f.OrderDate),
			strconv.FormatBool(f.IsValidAmount), strconv.FormatBool(f.IsOutlier),
			derefString(f.CustomerName), derefString(f.CustomerEmail),
			formatOptionalBool(f.EmailMissing), derefString(f.Country),
			cleaning.FormatDate(f.SignupDate),
			cleaning.FormatAmount(f.PaidAmount), cleaning.FormatDate(f.PaymentDate),
			formatOptionalInt(f.OrderYear), formatOptionalInt(f.PaymentDelayDays),
			strconv.FormatBool(f.IsFullyPaid),
		})
	}
	return t
}

// AggregateTables renders the four aggregate tables keyed by their
// canonical names. The pivot keeps country as its leading row-label
// column followed by one column per status.
func AggregateTables(result domain.AggregationResult) map[string]Table {
	revenue := Table{Headers: []string{"country", "amount"}}
	for _, r := range result.RevenueByCountry {
		revenue.Records = append(revenue.Records, []string{r.Country, formatFloat(r.Amount)})
	}

	avg := Table{Headers: []string{"customer_id", "name", "avg_order_value"}}
	for _, r := range result.AvgOrderValue {
		avg.Records = append(avg.Records, []string{r.CustomerID, r.Name, formatFloat(r.AvgOrderValue)})
	}

	monthly := Table{Headers: []string{"order_month", "amount"}}
	for _, r := range result.MonthlyRevenue {
		monthly.Records = append(monthly.Records, []string{r.Month, formatFloat(r.Amount)})
	}

	pivot := Table{Headers: append([]string{"country"}, result.PivotCountryStatus.Statuses...)}
	for _, row := range result.PivotCountryStatus.Rows {
		record := make([]string, 0, len(row.Cells)+1)
		record = append(record, row.Country)
		for _, cell := range row.Cells {
			record = append(record, formatFloat(cell))
		}
		pivot.Records = append(pivot.Records, record)
	}

	return map[string]Table{
		domain.AggRevenueByCountry:   revenue,
		domain.AggAvgOrderValue:      avg,
		domain.AggMonthlyRevenue:     monthly,
		domain.AggPivotCountryStatus: pivot,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatOptionalBool(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

func formatOptionalInt(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}

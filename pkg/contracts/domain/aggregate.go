package domain

// Canonical aggregate table names, matching the persisted file names.
const (
	AggRevenueByCountry   = "revenue_by_country"
	AggAvgOrderValue      = "avg_order_value"
	AggMonthlyRevenue     = "monthly_revenue"
	AggPivotCountryStatus = "pivot_country_status"
)

// CountryRevenue is one row of the revenue-by-country summary.
type CountryRevenue struct {
	Country string  `json:"country" db:"country"`
	Amount  float64 `json:"amount" db:"amount"`
}

// CustomerAvgOrder is one row of the average-order-value summary,
// keyed by the (customer id, display name) pair.
type CustomerAvgOrder struct {
	CustomerID    string  `json:"customer_id" db:"customer_id"`
	Name          string  `json:"name" db:"name"`
	AvgOrderValue float64 `json:"avg_order_value" db:"avg_order_value"`
}

// MonthlyRevenue is one row of the monthly revenue trend. Month is a
// sortable "2006-01" label.
type MonthlyRevenue struct {
	Month  string  `json:"order_month" db:"order_month"`
	Amount float64 `json:"amount" db:"amount"`
}

// PivotRow is one row of the country-by-status pivot: the country is
// the row label and Cells is aligned with PivotTable.Statuses.
// Combinations never seen in the data hold 0, not null.
type PivotRow struct {
	Country string    `json:"country"`
	Cells   []float64 `json:"cells"`
}

// PivotTable is the two-dimensional country-by-status revenue summary.
type PivotTable struct {
	Statuses []string   `json:"statuses"`
	Rows     []PivotRow `json:"rows"`
}

// Cell returns the summed amount for a (country, status) pair, 0 when
// the pair never occurs.
func (p PivotTable) Cell(country, status string) float64 {
	col := -1
	for i, s := range p.Statuses {
		if s == status {
			col = i
			break
		}
	}
	if col < 0 {
		return 0
	}
	for _, row := range p.Rows {
		if row.Country == country {
			return row.Cells[col]
		}
	}
	return 0
}

// AggregationResult bundles the four summary tables produced from the
// fact table. The tables are independent of one another; none feeds
// back into another.
type AggregationResult struct {
	RevenueByCountry   []CountryRevenue   `json:"revenue_by_country"`
	AvgOrderValue      []CustomerAvgOrder `json:"avg_order_value"`
	MonthlyRevenue     []MonthlyRevenue   `json:"monthly_revenue"`
	PivotCountryStatus PivotTable         `json:"pivot_country_status"`
}

// Names returns the canonical table names in a fixed order.
func (AggregationResult) Names() []string {
	return []string{AggRevenueByCountry, AggAvgOrderValue, AggMonthlyRevenue, AggPivotCountryStatus}
}

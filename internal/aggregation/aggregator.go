// Package aggregation produces the four read-only summary tables
// from the derived fact table: revenue by country, average order
// value by customer, the monthly revenue trend, and the country by
// status revenue pivot. Each summary is computed independently from
// the same immutable fact snapshot.
package aggregation

import (
	"context"
	"log/slog"
	"sort"

	"salespipe/pkg/contracts/domain"
)

// StageAggregate names the aggregation stage in logs and reports.
const StageAggregate = "aggregate"

// monthLabel is the sortable year-month rendering used by the
// monthly revenue trend.
const monthLabel = "2006-01"

// Aggregator computes the summary tables.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an aggregator. A nil logger falls back to
// slog.Default().
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger.With(slog.String("stage", StageAggregate))}
}

// Aggregate computes all four summaries. Rows lacking the grouping
// key of a particular summary are excluded from that summary only:
// a nil country drops the row from the country groupings, a nil
// order date drops it from the monthly trend. Missing amounts
// contribute nothing to sums and averages.
func (a *Aggregator) Aggregate(ctx context.Context, facts []domain.FactRow) domain.AggregationResult {
	result := domain.AggregationResult{
		RevenueByCountry:   a.revenueByCountry(facts),
		AvgOrderValue:      a.avgOrderValue(facts),
		MonthlyRevenue:     a.monthlyRevenue(facts),
		PivotCountryStatus: a.pivotCountryStatus(facts),
	}

	a.logger.InfoContext(ctx, "aggregates computed",
		slog.Int("facts", len(facts)),
		slog.Int("countries", len(result.RevenueByCountry)),
		slog.Int("customers", len(result.AvgOrderValue)),
		slog.Int("months", len(result.MonthlyRevenue)))
	return result
}

func (a *Aggregator) revenueByCountry(facts []domain.FactRow) []domain.CountryRevenue {
	sums := make(map[string]float64)
	for _, f := range facts {
		if f.Country == nil {
			continue
		}
		if f.Amount != nil {
			sums[*f.Country] += *f.Amount
		} else {
			sums[*f.Country] += 0
		}
	}

	rows := make([]domain.CountryRevenue, 0, len(sums))
	for country, amount := range sums {
		rows = append(rows, domain.CountryRevenue{Country: country, Amount: amount})
	}
	// Descending by revenue; country name breaks ties so the order
	// stays stable across runs.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount != rows[j].Amount {
			return rows[i].Amount > rows[j].Amount
		}
		return rows[i].Country < rows[j].Country
	})
	return rows
}

func (a *Aggregator) avgOrderValue(facts []domain.FactRow) []domain.CustomerAvgOrder {
	type key struct {
		id   string
		name string
	}
	type acc struct {
		sum   float64
		count int
	}

	accs := make(map[key]*acc)
	for _, f := range facts {
		// The display name comes from the customer side of the join;
		// orders with no matching customer have no grouping key.
		if f.CustomerName == nil || f.Amount == nil {
			continue
		}
		k := key{id: f.CustomerID, name: *f.CustomerName}
		if accs[k] == nil {
			accs[k] = &acc{}
		}
		accs[k].sum += *f.Amount
		accs[k].count++
	}

	rows := make([]domain.CustomerAvgOrder, 0, len(accs))
	for k, v := range accs {
		rows = append(rows, domain.CustomerAvgOrder{
			CustomerID:    k.id,
			Name:          k.name,
			AvgOrderValue: v.sum / float64(v.count),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CustomerID != rows[j].CustomerID {
			return rows[i].CustomerID < rows[j].CustomerID
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

func (a *Aggregator) monthlyRevenue(facts []domain.FactRow) []domain.MonthlyRevenue {
	sums := make(map[string]float64)
	for _, f := range facts {
		if f.OrderDate == nil {
			continue
		}
		month := f.OrderDate.Format(monthLabel)
		if f.Amount != nil {
			sums[month] += *f.Amount
		} else {
			sums[month] += 0
		}
	}

	rows := make([]domain.MonthlyRevenue, 0, len(sums))
	for month, amount := range sums {
		rows = append(rows, domain.MonthlyRevenue{Month: month, Amount: amount})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })
	return rows
}

func (a *Aggregator) pivotCountryStatus(facts []domain.FactRow) domain.PivotTable {
	statusSet := make(map[string]bool)
	countrySet := make(map[string]bool)
	sums := make(map[string]map[string]float64)
	for _, f := range facts {
		if f.Country == nil {
			continue
		}
		country, status := *f.Country, f.Status
		statusSet[status] = true
		countrySet[country] = true
		if sums[country] == nil {
			sums[country] = make(map[string]float64)
		}
		if f.Amount != nil {
			sums[country][status] += *f.Amount
		}
	}

	statuses := sortedKeys(statusSet)
	countries := sortedKeys(countrySet)

	table := domain.PivotTable{Statuses: statuses, Rows: make([]domain.PivotRow, 0, len(countries))}
	for _, country := range countries {
		cells := make([]float64, len(statuses))
		for i, status := range statuses {
			// Combinations never observed stay 0, not null.
			cells[i] = sums[country][status]
		}
		table.Rows = append(table.Rows, domain.PivotRow{Country: country, Cells: cells})
	}
	return table
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package cleaning

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"salespipe/pkg/contracts/domain"
)

// OrderCleaner normalizes order statuses, coerces amounts to numbers,
// flags invalid amounts and marks IQR outliers.
type OrderCleaner struct {
	logger *slog.Logger
	titler cases.Caser
}

// NewOrderCleaner creates an order cleaner. A nil logger falls back
// to slog.Default().
func NewOrderCleaner(logger *slog.Logger) *OrderCleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderCleaner{
		logger: logger.With(slog.String("stage", StageOrders)),
		titler: cases.Title(language.English),
	}
}

// NormalizeStatus trims and title-cases a raw status, so " paid "
// and "PAID" both become "Paid".
func (c *OrderCleaner) NormalizeStatus(raw string) string {
	return c.titler.String(strings.TrimSpace(raw))
}

// Clean runs the order cleaning steps: status normalization, amount
// coercion (unparseable values become nil, never a sentinel), the
// is_valid_amount flag, and IQR outlier fencing over the run's whole
// amount column. Missing amounts fail the numeric comparison and are
// therefore flagged as outliers.
func (c *OrderCleaner) Clean(ctx context.Context, rows []domain.RawOrder) ([]domain.OrderRecord, *domain.StageReport) {
	report := domain.NewStageReport(StageOrders)
	report.RowsIn = len(rows)

	if len(rows) == 0 {
		report.RowsOut = 0
		return []domain.OrderRecord{}, report
	}

	records := make([]domain.OrderRecord, 0, len(rows))
	var badAmounts, badDates, invalid int
	for _, row := range rows {
		record := domain.OrderRecord{
			OrderID:    row.OrderID,
			CustomerID: row.CustomerID,
			Status:     c.NormalizeStatus(row.Status),
		}
		amount, ok := ParseAmount(row.Amount)
		if !ok {
			badAmounts++
		}
		record.Amount = amount

		date, ok := ParseDate(row.OrderDate)
		if !ok {
			badDates++
		}
		record.OrderDate = date

		record.IsValidAmount = record.Amount != nil && *record.Amount > 0
		if !record.IsValidAmount {
			invalid++
		}
		records = append(records, record)
	}

	if badAmounts > 0 {
		report.Warn(domain.WarnUnparseableAmount,
			fmt.Sprintf("%d order amounts could not be parsed", badAmounts), badAmounts)
	}
	if badDates > 0 {
		report.Warn(domain.WarnUnparseableDate,
			fmt.Sprintf("%d order dates could not be parsed", badDates), badDates)
	}
	if invalid > 0 {
		report.Warn(domain.WarnInvalidAmount,
			fmt.Sprintf("found %d orders with invalid amounts", invalid), invalid)
		c.logger.InfoContext(ctx, "found orders with invalid amounts", slog.Int("count", invalid))
	}

	outliers := c.flagOutliers(records)
	report.Warn(domain.WarnOutliersFlagged,
		fmt.Sprintf("identified %d outlier orders", outliers), outliers)
	c.logger.InfoContext(ctx, "identified outlier orders", slog.Int("count", outliers))

	report.RowsOut = len(records)
	return records, report
}

// flagOutliers computes the IQR fence over all present amounts and
// sets IsOutlier per record. Both fence bounds are inclusive: a value
// exactly at a bound is not an outlier. Records with no amount are
// always outliers.
func (c *OrderCleaner) flagOutliers(records []domain.OrderRecord) int {
	amounts := make([]float64, 0, len(records))
	for _, r := range records {
		if r.Amount != nil {
			amounts = append(amounts, *r.Amount)
		}
	}
	lower, upper, ok := OutlierFence(amounts)

	count := 0
	for i := range records {
		a := records[i].Amount
		records[i].IsOutlier = a == nil || !ok || *a < lower || *a > upper
		if records[i].IsOutlier {
			count++
		}
	}
	return count
}

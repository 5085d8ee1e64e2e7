package cleaning

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"salespipe/pkg/contracts/domain"
)

// PaymentCleaner removes fully identical payment rows and coerces
// payment dates and amounts.
type PaymentCleaner struct {
	logger *slog.Logger
}

// NewPaymentCleaner creates a payment cleaner. A nil logger falls
// back to slog.Default().
func NewPaymentCleaner(logger *slog.Logger) *PaymentCleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentCleaner{logger: logger.With(slog.String("stage", StagePayments))}
}

// Clean runs the payment cleaning steps: full-record dedup (first
// occurrence wins; duplicate order_id values with differing amounts
// or dates survive), per-row payment_date parsing and paid_amount
// coercion. Unparseable values degrade to nil and are counted.
func (c *PaymentCleaner) Clean(ctx context.Context, rows []domain.RawPayment) ([]domain.PaymentRecord, *domain.StageReport) {
	report := domain.NewStageReport(StagePayments)
	report.RowsIn = len(rows)

	if len(rows) == 0 {
		report.RowsOut = 0
		return []domain.PaymentRecord{}, report
	}

	// Full-row equality dedup, not key-based.
	seen := make(map[string]bool, len(rows))
	deduped := make([]domain.RawPayment, 0, len(rows))
	for _, row := range rows {
		key := strings.Join([]string{row.OrderID, row.PaidAmount, row.PaymentDate}, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, row)
	}
	if removed := len(rows) - len(deduped); removed > 0 {
		report.Warn(domain.WarnDuplicatesRemoved,
			fmt.Sprintf("removed %d duplicate payments", removed), removed)
		c.logger.InfoContext(ctx, "removed duplicate payments", slog.Int("count", removed))
	}

	records := make([]domain.PaymentRecord, 0, len(deduped))
	var badDates, badAmounts int
	for _, row := range deduped {
		record := domain.PaymentRecord{OrderID: row.OrderID}

		date, ok := ParseDate(row.PaymentDate)
		if !ok {
			badDates++
		}
		record.PaymentDate = date

		amount, ok := ParseAmount(row.PaidAmount)
		if !ok {
			badAmounts++
		}
		record.PaidAmount = amount

		records = append(records, record)
	}

	if badDates > 0 {
		report.Warn(domain.WarnUnparseableDate,
			fmt.Sprintf("%d payment dates could not be parsed", badDates), badDates)
		c.logger.WarnContext(ctx, "payment dates could not be parsed", slog.Int("count", badDates))
	}
	if badAmounts > 0 {
		report.Warn(domain.WarnUnparseableAmount,
			fmt.Sprintf("%d paid amounts could not be parsed", badAmounts), badAmounts)
	}

	report.RowsOut = len(records)
	return records, report
}

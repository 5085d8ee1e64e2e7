package transform

import (
	"context"
	"log/slog"
	"math"
	"time"

	"salespipe/pkg/contracts/domain"
)

// Deriver computes the per-row business fields on the joined fact
// table. It never drops or reorders rows.
type Deriver struct {
	logger *slog.Logger
}

// NewDeriver creates a derived-field calculator. A nil logger falls
// back to slog.Default().
func NewDeriver(logger *slog.Logger) *Deriver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Deriver{logger: logger.With(slog.String("stage", StageDerive))}
}

// Derive returns a fresh fact table with order_year,
// payment_delay_days, coalesced paid_amount and is_fully_paid filled
// in. payment_delay_days is nil iff either date is nil; it is the
// whole-day difference and goes negative when payment predates the
// order.
func (d *Deriver) Derive(ctx context.Context, facts []domain.FactRow) []domain.FactRow {
	derived := make([]domain.FactRow, len(facts))
	for i, fact := range facts {
		row := fact

		if row.OrderDate != nil {
			year := row.OrderDate.Year()
			row.OrderYear = &year
		}

		if row.OrderDate != nil && row.PaymentDate != nil {
			days := wholeDays(row.PaymentDate.Sub(*row.OrderDate))
			row.PaymentDelayDays = &days
		}

		if row.PaidAmount == nil {
			zero := 0.0
			row.PaidAmount = &zero
		}

		// A row with no order amount is never fully paid; the missing
		// amount fails the comparison rather than defaulting to 0.
		row.IsFullyPaid = row.Amount != nil && *row.PaidAmount >= *row.Amount-domain.FullyPaidTolerance

		derived[i] = row
	}

	d.logger.InfoContext(ctx, "derived fact fields", slog.Int("rows", len(derived)))
	return derived
}

// wholeDays floors a duration to whole elapsed days, so -1h is -1
// days, matching elapsed-day semantics for negative delays.
func wholeDays(d time.Duration) int {
	return int(math.Floor(d.Hours() / 24))
}

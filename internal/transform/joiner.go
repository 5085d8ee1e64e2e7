package transform

import (
	"context"
	"log/slog"

	"salespipe/pkg/contracts/domain"
)

// Stage names used in logging and step reporting.
const (
	StageJoin   = "join_facts"
	StageDerive = "derive_fields"
)

// Joiner merges the three cleaned tables into one row-per-order fact
// table.
type Joiner struct {
	logger *slog.Logger
}

// NewJoiner creates a fact joiner. A nil logger falls back to
// slog.Default().
func NewJoiner(logger *slog.Logger) *Joiner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Joiner{logger: logger.With(slog.String("stage", StageJoin))}
}

// Join left-joins orders to customers on customer_id, then the result
// to payments on order_id. Every order row survives exactly once per
// matching payment (or once with nil payment fields when no payment
// matches); unmatched customers contribute nil customer fields, never
// row loss. Several payments carrying the same order_id fan out into
// one fact row each.
func (j *Joiner) Join(ctx context.Context, customers []domain.CustomerRecord, orders []domain.OrderRecord, payments []domain.PaymentRecord) []domain.FactRow {
	customersByID := make(map[string]domain.CustomerRecord, len(customers))
	for _, c := range customers {
		if _, exists := customersByID[c.CustomerID]; !exists {
			customersByID[c.CustomerID] = c
		}
	}

	paymentsByOrder := make(map[string][]domain.PaymentRecord, len(payments))
	for _, p := range payments {
		paymentsByOrder[p.OrderID] = append(paymentsByOrder[p.OrderID], p)
	}

	facts := make([]domain.FactRow, 0, len(orders))
	for _, order := range orders {
		base := domain.FactRow{
			OrderID:       order.OrderID,
			CustomerID:    order.CustomerID,
			Amount:        order.Amount,
			Status:        order.Status,
			OrderDate:     order.OrderDate,
			IsValidAmount: order.IsValidAmount,
			IsOutlier:     order.IsOutlier,
		}
		if customer, ok := customersByID[order.CustomerID]; ok {
			name := customer.Name
			email := customer.Email
			missing := customer.EmailMissing
			country := customer.Country
			base.CustomerName = &name
			base.CustomerEmail = &email
			base.EmailMissing = &missing
			base.Country = &country
			base.SignupDate = customer.SignupDate
		}

		matched := paymentsByOrder[order.OrderID]
		if len(matched) == 0 {
			facts = append(facts, base)
			continue
		}
		for _, payment := range matched {
			row := base
			row.PaidAmount = payment.PaidAmount
			row.PaymentDate = payment.PaymentDate
			facts = append(facts, row)
		}
	}

	j.logger.InfoContext(ctx, "joined fact table",
		slog.Int("orders", len(orders)),
		slog.Int("customers", len(customers)),
		slog.Int("payments", len(payments)),
		slog.Int("facts", len(facts)))
	return facts
}

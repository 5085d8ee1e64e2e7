package operations

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"salespipe/internal/aggregation"
	"salespipe/internal/cleaning"
	"salespipe/internal/infrastructure"
	"salespipe/internal/transform"
	"salespipe/pkg/contracts/domain"
)

// Manager executes the pipeline: three concurrent cleaners, then
// join, derive and aggregate in order.
type Manager struct {
	logger *slog.Logger

	customers  *cleaning.CustomerCleaner
	orders     *cleaning.OrderCleaner
	payments   *cleaning.PaymentCleaner
	joiner     *transform.Joiner
	deriver    *transform.Deriver
	aggregator *aggregation.Aggregator
}

// NewManager creates a pipeline manager. A nil logger falls back to
// slog.Default().
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		logger:     logger,
		customers:  cleaning.NewCustomerCleaner(logger),
		orders:     cleaning.NewOrderCleaner(logger),
		payments:   cleaning.NewPaymentCleaner(logger),
		joiner:     transform.NewJoiner(logger),
		deriver:    transform.NewDeriver(logger),
		aggregator: aggregation.NewAggregator(logger),
	}
}

// Run executes one pipeline run over the given raw inputs and
// returns the complete result. Cleaner diagnostics surface as
// warnings in the result; the only errors that abort a run are
// structural and those already failed at ingestion, so within a run
// the steps complete unless the context is cancelled.
func (m *Manager) Run(ctx context.Context, inputs RawInputs) (*RunResult, error) {
	runID := uuid.New().String()
	ctx = infrastructure.WithRunID(ctx, runID)

	result := &RunResult{
		RunID:     runID,
		StartTime: time.Now(),
		Steps: map[string]*StepState{
			StepCleanCustomers: NewStepState(StepCleanCustomers),
			StepCleanOrders:    NewStepState(StepCleanOrders),
			StepCleanPayments:  NewStepState(StepCleanPayments),
			StepJoin:           NewStepState(StepJoin),
			StepDerive:         NewStepState(StepDerive),
			StepAggregate:      NewStepState(StepAggregate),
		},
		Reports: append([]*domain.StageReport{}, inputs.SourceReports...),
	}

	m.logger.InfoContext(ctx, "pipeline run starting",
		slog.Int("raw_customers", len(inputs.Customers)),
		slog.Int("raw_orders", len(inputs.Orders)),
		slog.Int("raw_payments", len(inputs.Payments)))

	// The cleaners have no data dependency on one another; each owns
	// its own input table, so they run concurrently without locking.
	var reportMu sync.Mutex
	addReport := func(report *domain.StageReport) {
		reportMu.Lock()
		defer reportMu.Unlock()
		result.Reports = append(result.Reports, report)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return m.runStep(groupCtx, result.Steps[StepCleanCustomers], func(c context.Context) error {
			cleaned, report := m.customers.Clean(c, inputs.Customers)
			result.Customers = cleaned
			addReport(report)
			return nil
		})
	})
	group.Go(func() error {
		return m.runStep(groupCtx, result.Steps[StepCleanOrders], func(c context.Context) error {
			cleaned, report := m.orders.Clean(c, inputs.Orders)
			result.Orders = cleaned
			addReport(report)
			return nil
		})
	})
	group.Go(func() error {
		return m.runStep(groupCtx, result.Steps[StepCleanPayments], func(c context.Context) error {
			cleaned, report := m.payments.Clean(c, inputs.Payments)
			result.Payments = cleaned
			addReport(report)
			return nil
		})
	})
	if err := group.Wait(); err != nil {
		result.EndTime = time.Now()
		return result, err
	}

	sequential := []struct {
		state *StepState
		run   func(context.Context) error
	}{
		{result.Steps[StepJoin], func(c context.Context) error {
			result.Facts = m.joiner.Join(c, result.Customers, result.Orders, result.Payments)
			return nil
		}},
		{result.Steps[StepDerive], func(c context.Context) error {
			result.Facts = m.deriver.Derive(c, result.Facts)
			return nil
		}},
		{result.Steps[StepAggregate], func(c context.Context) error {
			result.Aggregates = m.aggregator.Aggregate(c, result.Facts)
			return nil
		}},
	}
	for _, step := range sequential {
		if err := m.runStep(ctx, step.state, step.run); err != nil {
			result.EndTime = time.Now()
			return result, err
		}
	}

	result.EndTime = time.Now()
	m.logger.InfoContext(ctx, "pipeline run complete",
		slog.Int("facts", len(result.Facts)),
		slog.Int("warnings", len(result.Warnings())),
		slog.Duration("duration", result.EndTime.Sub(result.StartTime)))
	return result, nil
}

// runStep tracks one step's lifecycle around its work function.
func (m *Manager) runStep(ctx context.Context, state *StepState, run func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		state.Fail(err)
		return err
	}
	state.Start()
	m.logger.DebugContext(ctx, "step starting", slog.String("step", state.ID))
	if err := run(ctx); err != nil {
		state.Fail(err)
		m.logger.ErrorContext(ctx, "step failed",
			slog.String("step", state.ID),
			slog.String("error", err.Error()))
		return err
	}
	state.Complete()
	return nil
}

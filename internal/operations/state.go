package operations

import (
	"sync"
	"time"

	"salespipe/pkg/contracts/domain"
)

// Step identifiers. The cleaner ids match the stage names their
// reports carry.
const (
	StepCleanCustomers = "clean_customers"
	StepCleanOrders    = "clean_orders"
	StepCleanPayments  = "clean_payments"
	StepJoin           = "join_facts"
	StepDerive         = "derive_fields"
	StepAggregate      = "aggregate"
)

// StepStatus represents the current status of a step.
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusActive    StepStatus = "active"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
)

// StepState is the runtime state of one pipeline step.
type StepState struct {
	mu        sync.RWMutex
	ID        string     `json:"id"`
	Status    StepStatus `json:"status"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// NewStepState creates a pending step state.
func NewStepState(id string) *StepState {
	return &StepState{ID: id, Status: StepStatusPending}
}

// Start marks the step active.
func (s *StepState) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.Status = StepStatusActive
	s.StartTime = &now
}

// Complete marks the step completed.
func (s *StepState) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.Status = StepStatusCompleted
	s.EndTime = &now
}

// Fail marks the step failed with the given error.
func (s *StepState) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.Status = StepStatusFailed
	s.EndTime = &now
	if err != nil {
		s.Error = err.Error()
	}
}

// CurrentStatus returns the step status under the read lock.
func (s *StepState) CurrentStatus() StepStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Status
}

// RawInputs bundles the three raw source tables plus the ingestion
// reports that accompanied them.
type RawInputs struct {
	Customers     []domain.RawCustomer
	Orders        []domain.RawOrder
	Payments      []domain.RawPayment
	SourceReports []*domain.StageReport
}

// RunResult is the complete output of one pipeline run: the cleaned
// tables, the derived fact table, the aggregates and all stage
// reports. Consumers receive it by reference and must treat it as
// read-only.
type RunResult struct {
	RunID     string    `json:"run_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Steps map[string]*StepState `json:"steps"`

	Customers []domain.CustomerRecord `json:"-"`
	Orders    []domain.OrderRecord    `json:"-"`
	Payments  []domain.PaymentRecord  `json:"-"`
	Facts     []domain.FactRow        `json:"-"`

	Aggregates domain.AggregationResult `json:"-"`

	Reports []*domain.StageReport `json:"reports"`
}

// Warnings collects every warning raised across the run's reports.
func (r *RunResult) Warnings() []domain.Warning {
	var all []domain.Warning
	for _, report := range r.Reports {
		all = append(all, report.Warnings...)
	}
	return all
}

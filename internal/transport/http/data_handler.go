package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"salespipe/internal/errors"
	"salespipe/internal/operations"
	"salespipe/internal/services"
	"salespipe/pkg/contracts"
	"salespipe/pkg/contracts/domain"
)

// Cleaned table names served by the API.
const (
	TableCustomers = "customers"
	TableOrders    = "orders"
	TablePayments  = "payments"
	TableFacts     = "facts"
)

// DataHandler serves the latest run's tables and aggregates.
type DataHandler struct {
	data   *services.DataService
	logger *slog.Logger
}

// NewDataHandler creates a data handler. A nil logger falls back to
// slog.Default().
func NewDataHandler(data *services.DataService, logger *slog.Logger) *DataHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataHandler{data: data, logger: logger.With(slog.String("handler", "data"))}
}

// RunSummary is the API view of a run: ids, timing, step states and
// the stage reports with their warnings.
type RunSummary struct {
	RunID      string                           `json:"run_id"`
	StartTime  string                           `json:"start_time"`
	EndTime    string                           `json:"end_time"`
	Steps      map[string]*operations.StepState `json:"steps"`
	Reports    []*domain.StageReport            `json:"reports"`
	Tables     []string                         `json:"tables"`
	Aggregates []string                         `json:"aggregates"`
}

// GetRun returns the latest run summary.
func (h *DataHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	result, ok := h.data.Latest()
	if !ok {
		render.Render(w, r, errors.ErrNoRun)
		return
	}
	render.JSON(w, r, RunSummary{
		RunID:      result.RunID,
		StartTime:  result.StartTime.Format("2006-01-02T15:04:05Z07:00"),
		EndTime:    result.EndTime.Format("2006-01-02T15:04:05Z07:00"),
		Steps:      result.Steps,
		Reports:    result.Reports,
		Tables:     []string{TableCustomers, TableOrders, TablePayments, TableFacts},
		Aggregates: domain.AggregationResult{}.Names(),
	})
}

// GetTable returns one cleaned table (or the fact table) as JSON rows.
func (h *DataHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	result, ok := h.data.Latest()
	if !ok {
		render.Render(w, r, errors.ErrNoRun)
		return
	}

	switch chi.URLParam(r, "name") {
	case TableCustomers:
		render.JSON(w, r, result.Customers)
	case TableOrders:
		render.JSON(w, r, result.Orders)
	case TablePayments:
		render.JSON(w, r, result.Payments)
	case TableFacts:
		render.JSON(w, r, result.Facts)
	default:
		render.Render(w, r, errors.ErrTableNotFound)
	}
}

// GetAggregate returns one of the four aggregate tables. The pivot is
// served with country as the row label, statuses as columns.
func (h *DataHandler) GetAggregate(w http.ResponseWriter, r *http.Request) {
	result, ok := h.data.Latest()
	if !ok {
		render.Render(w, r, errors.ErrNoRun)
		return
	}

	switch chi.URLParam(r, "name") {
	case domain.AggRevenueByCountry:
		render.JSON(w, r, result.Aggregates.RevenueByCountry)
	case domain.AggAvgOrderValue:
		render.JSON(w, r, result.Aggregates.AvgOrderValue)
	case domain.AggMonthlyRevenue:
		render.JSON(w, r, result.Aggregates.MonthlyRevenue)
	case domain.AggPivotCountryStatus:
		render.JSON(w, r, result.Aggregates.PivotCountryStatus)
	default:
		render.Render(w, r, errors.ErrTableNotFound)
	}
}

// Health reports liveness and whether a run is available.
func (h *DataHandler) Health(w http.ResponseWriter, r *http.Request) {
	_, hasRun := h.data.Latest()
	render.JSON(w, r, map[string]any{
		"status":  "ok",
		"version": contracts.Version,
		"has_run": hasRun,
	})
}

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespipe/internal/operations"
	"salespipe/internal/services"
	"salespipe/pkg/contracts/domain"
)

func completedRun(t *testing.T) *operations.RunResult {
	t.Helper()
	manager := operations.NewManager(nil)
	result, err := manager.Run(context.Background(), operations.RawInputs{
		Customers: []domain.RawCustomer{
			{CustomerID: "C1", Name: "Alice", Email: "a@x.com", Country: "usa", SignupDate: "2023-05-01"},
		},
		Orders: []domain.RawOrder{
			{OrderID: "O1", CustomerID: "C1", Amount: "100", Status: "paid", OrderDate: "2024-01-10"},
		},
		Payments: []domain.RawPayment{
			{OrderID: "O1", PaidAmount: "100", PaymentDate: "2024-01-12"},
		},
	})
	require.NoError(t, err)
	return result
}

func TestRouterServesRunAndTables(t *testing.T) {
	data := services.NewDataService()
	data.SetResult(completedRun(t))
	router := NewRouter(data, nil)

	tests := []struct {
		name string
		path string
	}{
		{name: "health", path: "/api/health"},
		{name: "run summary", path: "/api/run"},
		{name: "customers table", path: "/api/tables/customers"},
		{name: "orders table", path: "/api/tables/orders"},
		{name: "payments table", path: "/api/tables/payments"},
		{name: "fact table", path: "/api/tables/facts"},
		{name: "revenue aggregate", path: "/api/aggregates/revenue_by_country"},
		{name: "pivot aggregate", path: "/api/aggregates/pivot_country_status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestGetTableUnknownName(t *testing.T) {
	data := services.NewDataService()
	data.SetResult(completedRun(t))
	router := NewRouter(data, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tables/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEndpointsBeforeFirstRun(t *testing.T) {
	router := NewRouter(services.NewDataService(), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/run", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	// Health stays alive without a run.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["has_run"])
}

func TestPivotSerializationKeepsCountryRowLabel(t *testing.T) {
	data := services.NewDataService()
	data.SetResult(completedRun(t))
	router := NewRouter(data, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/aggregates/pivot_country_status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var pivot domain.PivotTable
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pivot))
	require.Len(t, pivot.Rows, 1)
	assert.Equal(t, "United States", pivot.Rows[0].Country)
	assert.Equal(t, []string{"Paid"}, pivot.Statuses)
}

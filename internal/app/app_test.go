package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeSources(t *testing.T, dataDir string) {
	t.Helper()

	customers := "customer_id,name,email,country,signup_date\n" +
		"C1,Alice,alice@example.com,usa,15-01-2023\n" +
		"C2,Bob,,IRELAND,20-02-2023\n"
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "customers.csv"), []byte(customers), 0644))

	orders := `[
		{"order_id": "O1", "customer_id": "C1", "amount": 120.5, "status": "completed", "order_date": "01-03-2023"},
		{"order_id": "O2", "customer_id": "C2", "amount": "abc", "status": "PENDING", "order_date": "05-03-2023"}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "orders.json"), []byte(orders), 0644))

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"order_id", "paid_amount", "payment_date"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"O1", 120.5, "03-03-2023"}))
	require.NoError(t, f.SaveAs(filepath.Join(dataDir, "payments.xlsx")))
}

func writeConfig(t *testing.T, dir, dataDir, outputDir string) {
	t.Helper()

	content := fmt.Sprintf(`logging:
  level: warn
  format: text
  output: stdout
paths:
  data_dir: %s
  output_dir: %s
`, dataDir, outputDir)
	configPath := filepath.Join(dir, "salespipe.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	t.Setenv("SALESPIPE_CONFIG", configPath)
}

func TestNewApplicationInitializesComponents(t *testing.T) {
	writeConfig(t, t.TempDir(), t.TempDir(), t.TempDir())

	application, err := NewApplication()
	require.NoError(t, err)
	defer application.Close()

	assert.NotNil(t, application.Config)
	assert.NotNil(t, application.Logger)
	assert.NotNil(t, application.DataService)
	assert.NotNil(t, application.Manager)
	assert.NotNil(t, application.Exporter)
	assert.NotNil(t, application.Server)
}

func TestExecutePipelineEndToEnd(t *testing.T) {
	dataDir := t.TempDir()
	outputDir := t.TempDir()
	writeSources(t, dataDir)
	writeConfig(t, t.TempDir(), dataDir, outputDir)

	application, err := NewApplication()
	require.NoError(t, err)
	defer application.Close()

	result, err := application.ExecutePipeline(context.Background())
	require.NoError(t, err)

	assert.Len(t, result.Customers, 2)
	assert.Len(t, result.Facts, 2)

	latest, ok := application.DataService.Latest()
	require.True(t, ok)
	assert.Equal(t, result.RunID, latest.RunID)

	for _, name := range []string{
		"customers_clean.csv", "orders_clean.csv", "payments_clean.csv", "final_fact_orders.csv",
	} {
		_, err := os.Stat(filepath.Join(outputDir, name))
		assert.NoError(t, err, name)
	}
	_, err = os.Stat(filepath.Join(outputDir, "aggregates", "revenue_by_country.csv"))
	assert.NoError(t, err)
}

func TestExecutePipelineMissingSourcesStillRuns(t *testing.T) {
	dataDir := t.TempDir()
	outputDir := t.TempDir()
	writeConfig(t, t.TempDir(), dataDir, outputDir)

	application, err := NewApplication()
	require.NoError(t, err)
	defer application.Close()

	result, err := application.ExecutePipeline(context.Background())
	require.NoError(t, err)

	assert.Empty(t, result.Facts)
	assert.NotEmpty(t, result.Warnings())
}

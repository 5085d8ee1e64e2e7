package exporter

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"salespipe/internal/config"
	"salespipe/internal/operations"
)

// Exporter writes a completed run's tables to the configured output
// directories.
type Exporter struct {
	writer *CSVWriter
	paths  config.PathsConfig
	aggDir string
}

// NewExporter creates an exporter for the configured paths.
func NewExporter(cfg *config.Config, logger *slog.Logger) *Exporter {
	return &Exporter{
		writer: NewCSVWriter(logger),
		paths:  cfg.Paths,
		aggDir: cfg.AggregatesDir(),
	}
}

// ExportRun persists the cleaned tables, the fact table and the four
// aggregate tables.
func (e *Exporter) ExportRun(result *operations.RunResult) error {
	cleaned := map[string]Table{
		"customers_clean.csv":   CustomersTable(result.Customers),
		"orders_clean.csv":      OrdersTable(result.Orders),
		"payments_clean.csv":    PaymentsTable(result.Payments),
		"final_fact_orders.csv": FactsTable(result.Facts),
	}
	for name, table := range cleaned {
		path := filepath.Join(e.paths.OutputDir, name)
		if err := e.writer.WriteSimpleCSV(path, table.Headers, table.Records); err != nil {
			return fmt.Errorf("failed to export %s: %w", name, err)
		}
	}

	for name, table := range AggregateTables(result.Aggregates) {
		path := filepath.Join(e.aggDir, name+".csv")
		if err := e.writer.WriteSimpleCSV(path, table.Headers, table.Records); err != nil {
			return fmt.Errorf("failed to export aggregate %s: %w", name, err)
		}
	}
	return nil
}

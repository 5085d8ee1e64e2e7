package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	pipeerrors "salespipe/internal/errors"
	"salespipe/pkg/contracts/domain"
)

// Stage names for ingestion reports.
const (
	StageCustomersSource = "ingest_customers"
	StageOrdersSource    = "ingest_orders"
	StagePaymentsSource  = "ingest_payments"
)

// ReadCustomersCSV loads the raw customer table from a CSV file with
// a header row. A missing file yields an empty table plus a warning;
// a present file without a customer_id column is a structural error.
func ReadCustomersCSV(path string, logger *slog.Logger) ([]domain.RawCustomer, *domain.StageReport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	report := domain.NewStageReport(StageCustomersSource)

	file, err := os.Open(path)
	if err != nil {
		report.Warn(domain.WarnSourceMissing,
			fmt.Sprintf("customers source %s not readable, using empty table", path), 0)
		logger.Warn("customers source missing", slog.String("path", path))
		return []domain.RawCustomer{}, report, nil
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []domain.RawCustomer{}, report, nil
	}
	if err != nil {
		report.Warn(domain.WarnSourceMissing,
			fmt.Sprintf("customers source %s not parseable, using empty table", path), 0)
		return []domain.RawCustomer{}, report, nil
	}

	cols := columnIndex(header)
	if _, ok := cols["customer_id"]; !ok {
		return nil, report, pipeerrors.MissingKeyColumn("customers", "customer_id")
	}

	var rows []domain.RawCustomer
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed line degrades to a skipped row, not a failed
			// table.
			report.Warn(domain.WarnSourceMissing, "skipped malformed CSV line", 1)
			continue
		}
		rows = append(rows, domain.RawCustomer{
			CustomerID: field(record, cols, "customer_id"),
			Name:       field(record, cols, "name"),
			Email:      field(record, cols, "email"),
			Country:    field(record, cols, "country"),
			SignupDate: field(record, cols, "signup_date"),
		})
	}

	report.RowsOut = len(rows)
	logger.Info("customers loaded", slog.String("path", path), slog.Int("rows", len(rows)))
	return rows, report, nil
}

// columnIndex maps trimmed, lower-cased header names to positions.
func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

// field returns the named column of a record, "" when absent.
func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

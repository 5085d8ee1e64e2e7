package ingestion

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	pipeerrors "salespipe/internal/errors"
	"salespipe/pkg/contracts/domain"
)

// ReadOrdersJSON loads the raw order table from a JSON array file.
// Field values arrive as whatever JSON type the feed chose (amounts
// show up both as numbers and as strings like "invalid"), so every
// value is normalized to a string for the cleaner to coerce.
func ReadOrdersJSON(path string, logger *slog.Logger) ([]domain.RawOrder, *domain.StageReport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	report := domain.NewStageReport(StageOrdersSource)

	data, err := os.ReadFile(path)
	if err != nil {
		report.Warn(domain.WarnSourceMissing,
			fmt.Sprintf("orders source %s not readable, using empty table", path), 0)
		logger.Warn("orders source missing", slog.String("path", path))
		return []domain.RawOrder{}, report, nil
	}

	var objects []map[string]any
	if err := json.Unmarshal(data, &objects); err != nil {
		report.Warn(domain.WarnSourceMissing,
			fmt.Sprintf("orders source %s not parseable, using empty table", path), 0)
		logger.Warn("orders source not parseable", slog.String("path", path), slog.String("error", err.Error()))
		return []domain.RawOrder{}, report, nil
	}

	if len(objects) > 0 && !anyHasKey(objects, "order_id") {
		return nil, report, pipeerrors.MissingKeyColumn("orders", "order_id")
	}

	rows := make([]domain.RawOrder, 0, len(objects))
	for _, obj := range objects {
		rows = append(rows, domain.RawOrder{
			OrderID:    stringify(obj["order_id"]),
			CustomerID: stringify(obj["customer_id"]),
			Amount:     stringify(obj["amount"]),
			Status:     stringify(obj["status"]),
			OrderDate:  stringify(obj["order_date"]),
		})
	}

	report.RowsOut = len(rows)
	logger.Info("orders loaded", slog.String("path", path), slog.Int("rows", len(rows)))
	return rows, report, nil
}

func anyHasKey(objects []map[string]any, key string) bool {
	for _, obj := range objects {
		if _, ok := obj[key]; ok {
			return true
		}
	}
	return false
}

// stringify renders a decoded JSON value as the raw string the
// cleaners expect. Integral floats drop their trailing ".0" so ids
// round-trip cleanly.
func stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return fmt.Sprintf("%v", value)
	}
}

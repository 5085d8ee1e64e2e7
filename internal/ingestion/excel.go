package ingestion

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	pipeerrors "salespipe/internal/errors"
	"salespipe/pkg/contracts/domain"
)

// ReadPaymentsExcel loads the raw payment table from the first sheet
// of an Excel workbook. Row one is the header. A missing or corrupt
// workbook yields an empty table plus a warning; a sheet without an
// order_id column is a structural error.
func ReadPaymentsExcel(path string, logger *slog.Logger) ([]domain.RawPayment, *domain.StageReport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	report := domain.NewStageReport(StagePaymentsSource)

	f, err := excelize.OpenFile(path)
	if err != nil {
		report.Warn(domain.WarnSourceMissing,
			fmt.Sprintf("payments source %s not readable, using empty table", path), 0)
		logger.Warn("payments source missing", slog.String("path", path))
		return []domain.RawPayment{}, report, nil
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []domain.RawPayment{}, report, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		report.Warn(domain.WarnSourceMissing,
			fmt.Sprintf("payments sheet %s not readable, using empty table", sheets[0]), 0)
		return []domain.RawPayment{}, report, nil
	}
	if len(rows) == 0 {
		return []domain.RawPayment{}, report, nil
	}

	cols := columnIndex(rows[0])
	if _, ok := cols["order_id"]; !ok {
		return nil, report, pipeerrors.MissingKeyColumn("payments", "order_id")
	}

	payments := make([]domain.RawPayment, 0, len(rows)-1)
	for _, row := range rows[1:] {
		payments = append(payments, domain.RawPayment{
			OrderID:     field(row, cols, "order_id"),
			PaidAmount:  field(row, cols, "paid_amount"),
			PaymentDate: field(row, cols, "payment_date"),
		})
	}

	report.RowsOut = len(payments)
	logger.Info("payments loaded",
		slog.String("path", path),
		slog.String("sheet", sheets[0]),
		slog.Int("rows", len(payments)))
	return payments, report, nil
}

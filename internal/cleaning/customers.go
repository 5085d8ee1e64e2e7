package cleaning

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"salespipe/pkg/contracts/domain"
)

// countryAliases collapses known country variants, after trimming and
// title-casing, to one canonical form.
var countryAliases = map[string]string{
	"Usa": "United States",
	"Uk":  "United Kingdom",
}

// CustomerCleaner deduplicates customer records by customer_id,
// flags and backfills missing emails, standardizes country names and
// parses signup dates.
type CustomerCleaner struct {
	logger *slog.Logger
	titler cases.Caser
}

// NewCustomerCleaner creates a customer cleaner. A nil logger falls
// back to slog.Default().
func NewCustomerCleaner(logger *slog.Logger) *CustomerCleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &CustomerCleaner{
		logger: logger.With(slog.String("stage", StageCustomers)),
		titler: cases.Title(language.English),
	}
}

// NormalizeCountry trims, title-cases and alias-resolves a raw
// country value. Applying it twice yields the same result.
func (c *CustomerCleaner) NormalizeCountry(raw string) string {
	country := c.titler.String(strings.TrimSpace(raw))
	if canonical, ok := countryAliases[country]; ok {
		return canonical
	}
	return country
}

// Clean runs the customer cleaning steps in order: dedup by
// customer_id (first occurrence wins), email_missing flagging with
// placeholder substitution, country standardization and signup date
// parsing. The whole signup_date column is left raw if any value in
// it fails to parse; that failure is reported, not fatal.
func (c *CustomerCleaner) Clean(ctx context.Context, rows []domain.RawCustomer) ([]domain.CustomerRecord, *domain.StageReport) {
	report := domain.NewStageReport(StageCustomers)
	report.RowsIn = len(rows)

	if len(rows) == 0 {
		report.RowsOut = 0
		return []domain.CustomerRecord{}, report
	}

	// Dedup by customer_id, keeping the first occurrence.
	seen := make(map[string]bool, len(rows))
	deduped := make([]domain.RawCustomer, 0, len(rows))
	for _, row := range rows {
		if seen[row.CustomerID] {
			continue
		}
		seen[row.CustomerID] = true
		deduped = append(deduped, row)
	}
	if removed := len(rows) - len(deduped); removed > 0 {
		report.Warn(domain.WarnDuplicatesRemoved,
			fmt.Sprintf("removed %d duplicate customers", removed), removed)
		c.logger.InfoContext(ctx, "removed duplicate customers", slog.Int("count", removed))
	}

	// The signup_date column parses as a whole: one bad value leaves
	// every row's date in its raw form.
	parsedDates := make([]*time.Time, len(deduped))
	columnOK := true
	for i, row := range deduped {
		parsed, ok := ParseDate(row.SignupDate)
		if !ok {
			columnOK = false
			break
		}
		parsedDates[i] = parsed
	}
	if !columnOK {
		report.Warn(domain.WarnColumnParseFailed,
			"signup_date column could not be parsed; keeping raw values", 0)
		c.logger.WarnContext(ctx, "signup_date column parse failed, keeping raw values")
	}

	records := make([]domain.CustomerRecord, 0, len(deduped))
	for i, row := range deduped {
		record := domain.CustomerRecord{
			CustomerID:    row.CustomerID,
			Name:          strings.TrimSpace(row.Name),
			Country:       c.NormalizeCountry(row.Country),
			SignupDateRaw: row.SignupDate,
		}
		if columnOK {
			record.SignupDate = parsedDates[i]
		}
		if strings.TrimSpace(row.Email) == "" {
			record.EmailMissing = true
			record.Email = domain.MissingEmailPlaceholder
		} else {
			record.Email = strings.TrimSpace(row.Email)
		}
		records = append(records, record)
	}

	report.RowsOut = len(records)
	c.logger.InfoContext(ctx, "customers cleaned",
		slog.Int("rows_in", report.RowsIn),
		slog.Int("rows_out", report.RowsOut))
	return records, report
}

package domain

// Warning is a structured diagnostic raised while a stage processed
// best-effort data. Warnings never abort the pipeline.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Count is the number of rows the condition applied to, when the
	// warning is row-scoped.
	Count int `json:"count,omitempty"`
}

// Warning codes emitted by the ingestion and cleaning stages.
const (
	WarnDuplicatesRemoved = "duplicates_removed"
	WarnInvalidAmount     = "invalid_amount"
	WarnOutliersFlagged   = "outliers_flagged"
	WarnUnparseableAmount = "unparseable_amount"
	WarnUnparseableDate   = "unparseable_date"
	WarnColumnParseFailed = "column_parse_failed"
	WarnSourceMissing     = "source_missing"
)

// StageReport summarizes one stage's pass over its table: row counts
// plus any warnings. It replaces ad-hoc progress printing so the
// stages themselves stay pure functions of their inputs.
type StageReport struct {
	Stage    string    `json:"stage"`
	RowsIn   int       `json:"rows_in"`
	RowsOut  int       `json:"rows_out"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// NewStageReport creates a report for the named stage.
func NewStageReport(stage string) *StageReport {
	return &StageReport{Stage: stage}
}

// Warn appends a row-scoped warning.
func (r *StageReport) Warn(code, message string, count int) {
	r.Warnings = append(r.Warnings, Warning{Code: code, Message: message, Count: count})
}

// HasWarning reports whether a warning with the given code was raised.
func (r *StageReport) HasWarning(code string) bool {
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

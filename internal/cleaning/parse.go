package cleaning

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Stage names used in reports and step logging.
const (
	StageCustomers = "clean_customers"
	StageOrders    = "clean_orders"
	StagePayments  = "clean_payments"
)

// dateLayouts are tried in order. Day-first forms come before
// US-style ones because the raw feeds are day-first.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	"02 Jan 2006",
}

// ParseDate parses a raw date string against the known layouts.
// It returns nil for empty input and ok=false when no layout matched.
func ParseDate(raw string) (t *time.Time, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, true
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return &parsed, true
		}
	}
	return nil, false
}

// ParseAmount coerces a raw amount string to a finite float. It
// returns nil for empty input and ok=false when the value is not a
// finite number.
func ParseAmount(raw string) (v *float64, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return &f, true
}

// FormatDate renders a parsed date back to the canonical layout.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// FormatAmount renders an optional amount, empty when missing.
func FormatAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

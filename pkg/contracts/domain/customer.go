package domain

import (
	"time"
)

// RawCustomer represents a customer row as handed over by ingestion,
// before any cleaning. All fields are kept as strings because raw
// sources routinely carry malformed values.
type RawCustomer struct {
	CustomerID string `json:"customer_id" csv:"customer_id"`
	Name       string `json:"name" csv:"name"`
	Email      string `json:"email" csv:"email"`
	Country    string `json:"country" csv:"country"`
	SignupDate string `json:"signup_date" csv:"signup_date"`
}

// CustomerRecord is a cleaned customer row. After cleaning there is
// exactly one record per distinct CustomerID and Country holds a
// canonical value.
type CustomerRecord struct {
	CustomerID string `json:"customer_id" db:"customer_id"`
	Name       string `json:"name" db:"name"`
	// Email holds the placeholder value when the source had no email;
	// EmailMissing records whether that substitution happened.
	Email        string `json:"email" db:"email"`
	EmailMissing bool   `json:"email_missing" db:"email_missing"`
	Country      string `json:"country" db:"country"`
	// SignupDate is nil when the whole signup_date column failed to
	// parse; SignupDateRaw always keeps the original source value.
	SignupDate    *time.Time `json:"signup_date" db:"signup_date"`
	SignupDateRaw string     `json:"signup_date_raw,omitempty" db:"signup_date_raw"`
}

// MissingEmailPlaceholder is substituted for absent customer emails.
const MissingEmailPlaceholder = "MISSING"

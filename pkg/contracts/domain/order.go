package domain

import (
	"time"
)

// RawOrder represents an order row as handed over by ingestion.
// Amount stays a string until the Order Cleaner coerces it; raw feeds
// are known to carry values like "invalid" or "" in that column.
type RawOrder struct {
	OrderID    string `json:"order_id" csv:"order_id"`
	CustomerID string `json:"customer_id" csv:"customer_id"`
	Amount     string `json:"amount" csv:"amount"`
	Status     string `json:"status" csv:"status"`
	OrderDate  string `json:"order_date" csv:"order_date"`
}

// OrderRecord is a cleaned order row. Amount is nil when the raw value
// could not be coerced to a number, never a sentinel float.
type OrderRecord struct {
	OrderID    string     `json:"order_id" db:"order_id"`
	CustomerID string     `json:"customer_id" db:"customer_id"`
	Amount     *float64   `json:"amount" db:"amount"`
	Status     string     `json:"status" db:"status"`
	OrderDate  *time.Time `json:"order_date" db:"order_date"`
	// IsValidAmount is true iff Amount is present and greater than zero.
	IsValidAmount bool `json:"is_valid_amount" db:"is_valid_amount"`
	// IsOutlier is true iff Amount is missing or falls outside the
	// IQR fence computed over the cleaning run's amount column.
	IsOutlier bool `json:"is_outlier" db:"is_outlier"`
}

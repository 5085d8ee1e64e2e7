package domain

import (
	"time"
)

// RawPayment represents a payment row as handed over by ingestion.
type RawPayment struct {
	OrderID     string `json:"order_id" csv:"order_id"`
	PaidAmount  string `json:"paid_amount" csv:"paid_amount"`
	PaymentDate string `json:"payment_date" csv:"payment_date"`
}

// PaymentRecord is a cleaned payment row. Cleaning guarantees no two
// records are fully identical; it does not deduplicate by OrderID, so
// several payments against one order remain distinct rows.
type PaymentRecord struct {
	OrderID     string     `json:"order_id" db:"order_id"`
	PaidAmount  *float64   `json:"paid_amount" db:"paid_amount"`
	PaymentDate *time.Time `json:"payment_date" db:"payment_date"`
}

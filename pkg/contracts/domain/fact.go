package domain

import (
	"time"
)

// FactRow is one denormalized row of the order fact table: an order
// left-enriched with its customer and payment. Customer and payment
// fields are pointers because a left join leaves them nil when no
// match exists. A duplicate payment OrderID fans out into multiple
// fact rows for the same order.
//
// Customer-side fields carry the Customer prefix so they cannot
// collide with order columns when the table is serialized.
type FactRow struct {
	// Order side, always present.
	OrderID       string     `json:"order_id" db:"order_id"`
	CustomerID    string     `json:"customer_id" db:"customer_id"`
	Amount        *float64   `json:"amount" db:"amount"`
	Status        string     `json:"status" db:"status"`
	OrderDate     *time.Time `json:"order_date" db:"order_date"`
	IsValidAmount bool       `json:"is_valid_amount" db:"is_valid_amount"`
	IsOutlier     bool       `json:"is_outlier" db:"is_outlier"`

	// Customer side, nil when the order's CustomerID matched nothing.
	CustomerName  *string    `json:"customer_name" db:"customer_name"`
	CustomerEmail *string    `json:"customer_email" db:"customer_email"`
	EmailMissing  *bool      `json:"email_missing" db:"email_missing"`
	Country       *string    `json:"country" db:"country"`
	SignupDate    *time.Time `json:"signup_date" db:"signup_date"`

	// Payment side, nil when no payment references the order.
	PaidAmount  *float64   `json:"paid_amount" db:"paid_amount"`
	PaymentDate *time.Time `json:"payment_date" db:"payment_date"`

	// Derived fields, populated by the derive pass.
	OrderYear        *int `json:"order_year" db:"order_year"`
	PaymentDelayDays *int `json:"payment_delay_days" db:"payment_delay_days"`
	IsFullyPaid      bool `json:"is_fully_paid" db:"is_fully_paid"`
}

// FullyPaidTolerance absorbs float and rounding noise when comparing
// paid amounts against order amounts.
const FullyPaidTolerance = 0.01

// Package reporting is the SQL-backed analysis collaborator: it
// loads the cleaned tables into Postgres and runs read-only summary
// queries over them. The sink is optional; with no DSN configured the
// pipeline never touches a database.
package reporting

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"salespipe/internal/config"
	"salespipe/pkg/contracts/domain"
)

// Service owns the reporting database connection.
type Service struct {
	db           *sqlx.DB
	logger       *slog.Logger
	queryTimeout time.Duration
}

// Open connects to the reporting database. A nil logger falls back
// to slog.Default().
func Open(ctx context.Context, cfg config.ReportingConfig, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to reporting database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	logger.InfoContext(ctx, "reporting database connected")
	return &Service{db: db, logger: logger, queryTimeout: cfg.QueryTimeout}, nil
}

// Close releases the database connection.
func (s *Service) Close() error {
	return s.db.Close()
}

const schemaDDL = `
DROP TABLE IF EXISTS payments;
DROP TABLE IF EXISTS orders;
DROP TABLE IF EXISTS customers;

CREATE TABLE customers (
	customer_id   TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL,
	email_missing BOOLEAN NOT NULL,
	country       TEXT NOT NULL,
	signup_date   DATE
);

CREATE TABLE orders (
	order_id        TEXT NOT NULL,
	customer_id     TEXT NOT NULL,
	amount          DOUBLE PRECISION,
	status          TEXT NOT NULL,
	order_date      DATE,
	is_valid_amount BOOLEAN NOT NULL,
	is_outlier      BOOLEAN NOT NULL
);

CREATE TABLE payments (
	order_id     TEXT NOT NULL,
	paid_amount  DOUBLE PRECISION,
	payment_date DATE
);
`

const (
	insertCustomer = `INSERT INTO customers (customer_id, name, email, email_missing, country, signup_date)
		VALUES (:customer_id, :name, :email, :email_missing, :country, :signup_date)`
	insertOrder = `INSERT INTO orders (order_id, customer_id, amount, status, order_date, is_valid_amount, is_outlier)
		VALUES (:order_id, :customer_id, :amount, :status, :order_date, :is_valid_amount, :is_outlier)`
	insertPayment = `INSERT INTO payments (order_id, paid_amount, payment_date)
		VALUES (:order_id, :paid_amount, :payment_date)`
)

// LoadTables recreates the reporting schema and loads the three
// cleaned tables. Each run replaces the previous snapshot.
func (s *Service) LoadTables(ctx context.Context, customers []domain.CustomerRecord, orders []domain.OrderRecord, payments []domain.PaymentRecord) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to create reporting schema: %w", err)
	}
	if len(customers) > 0 {
		if _, err := tx.NamedExecContext(ctx, insertCustomer, customers); err != nil {
			return fmt.Errorf("failed to load customers: %w", err)
		}
	}
	if len(orders) > 0 {
		if _, err := tx.NamedExecContext(ctx, insertOrder, orders); err != nil {
			return fmt.Errorf("failed to load orders: %w", err)
		}
	}
	if len(payments) > 0 {
		if _, err := tx.NamedExecContext(ctx, insertPayment, payments); err != nil {
			return fmt.Errorf("failed to load payments: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reporting load: %w", err)
	}

	s.logger.InfoContext(ctx, "cleaned tables loaded into reporting database",
		slog.Int("customers", len(customers)),
		slog.Int("orders", len(orders)),
		slog.Int("payments", len(payments)))
	return nil
}

// CustomerSpend is one row of the top-customers analysis.
type CustomerSpend struct {
	CustomerID string  `db:"customer_id" json:"customer_id"`
	Name       string  `db:"name" json:"name"`
	TotalSpend float64 `db:"total_spend" json:"total_spend"`
}

// StatusRevenue is one row of the revenue-by-status analysis.
type StatusRevenue struct {
	Status  string  `db:"status" json:"status"`
	Revenue float64 `db:"revenue" json:"revenue"`
	Orders  int     `db:"order_count" json:"order_count"`
}

const topCustomersQuery = `
SELECT c.customer_id, c.name, SUM(o.amount) AS total_spend
FROM orders o
JOIN customers c ON c.customer_id = o.customer_id
WHERE o.amount IS NOT NULL
GROUP BY c.customer_id, c.name
ORDER BY total_spend DESC, c.customer_id
LIMIT $1`

const revenueByStatusQuery = `
SELECT status, SUM(COALESCE(amount, 0)) AS revenue, COUNT(*) AS order_count
FROM orders
GROUP BY status
ORDER BY revenue DESC, status`

// TopCustomersBySpend returns the highest-spending customers.
func (s *Service) TopCustomersBySpend(ctx context.Context, limit int) ([]CustomerSpend, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	var rows []CustomerSpend
	if err := s.db.SelectContext(ctx, &rows, topCustomersQuery, limit); err != nil {
		return nil, fmt.Errorf("top customers query failed: %w", err)
	}
	return rows, nil
}

// RevenueByStatus returns revenue and order counts per status.
func (s *Service) RevenueByStatus(ctx context.Context) ([]StatusRevenue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	var rows []StatusRevenue
	if err := s.db.SelectContext(ctx, &rows, revenueByStatusQuery); err != nil {
		return nil, fmt.Errorf("revenue by status query failed: %w", err)
	}
	return rows, nil
}

// RunAnalysis loads the tables and logs the two summary analyses. It
// mirrors a run's read-only SQL pass end to end.
func (s *Service) RunAnalysis(ctx context.Context, result AnalysisInput, topN int) error {
	if err := s.LoadTables(ctx, result.Customers, result.Orders, result.Payments); err != nil {
		return err
	}

	top, err := s.TopCustomersBySpend(ctx, topN)
	if err != nil {
		return err
	}
	for _, row := range top {
		s.logger.InfoContext(ctx, "top customer by spend",
			slog.String("customer_id", row.CustomerID),
			slog.String("name", row.Name),
			slog.Float64("total_spend", row.TotalSpend))
	}

	byStatus, err := s.RevenueByStatus(ctx)
	if err != nil {
		return err
	}
	for _, row := range byStatus {
		s.logger.InfoContext(ctx, "revenue by status",
			slog.String("status", row.Status),
			slog.Float64("revenue", row.Revenue),
			slog.Int("orders", row.Orders))
	}
	return nil
}

// AnalysisInput is the subset of a run the SQL pass needs.
type AnalysisInput struct {
	Customers []domain.CustomerRecord
	Orders    []domain.OrderRecord
	Payments  []domain.PaymentRecord
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// SeedAgent is the demo operator account.
type SeedAgent struct {
	Email    string
	Password string
	Name     string
}

var DefaultSeedAgent = SeedAgent{
	Email:    "test@brandmetrics.com",
	Password: "agent123",
	Name:     "Test Agent",
}

type seedPayroll struct {
	amount                         float64
	periodStart, periodEnd, paidOn string
}

var seedPayrollRows = []seedPayroll{
	{1200.00, "2024-01-01", "2024-01-07", "2024-01-08"},
	{4800.00, "2024-01-01", "2024-01-31", "2024-02-01"},
	{57600.00, "2024-01-01", "2024-12-31", "2024-12-31"},
	{4800.00, "2023-12-01", "2023-12-31", "2024-01-01"},
	{2400.00, "2024-01-08", "2024-01-14", "2024-01-15"},
	{3600.00, "2024-01-15", "2024-01-21", "2024-01-22"},
}

type seedOrder struct {
	customer, project, date string
	amount                  float64
	status, description     string
}

var seedOrderRows = []seedOrder{
	{"John Smith", "Website Redesign", "2024-01-15", 2500.00, "Completed", "Complete website overhaul for Smith Corp"},
	{"John Smith", "Logo Design", "2024-01-10", 500.00, "Completed", "New logo design for Smith Corp"},
	{"Sarah Johnson", "Marketing Campaign", "2024-01-20", 1800.00, "In Progress", "Q1 marketing campaign for Johnson LLC"},
	{"Mike Wilson", "Brand Guidelines", "2024-01-12", 1200.00, "Completed", "Brand style guide for Wilson Industries"},
	{"Emily Davis", "Social Media Management", "2024-01-18", 900.00, "In Progress", "Monthly social media management"},
	{"David Brown", "Print Materials", "2024-01-05", 750.00, "Completed", "Business cards and brochures"},
}

// Seed inserts the demo agent and, when their tables are still empty for it,
// the sample payroll and order rows. It returns the agent id.
func Seed(ctx context.Context, db *sql.DB, agent SeedAgent) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(agent.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var agentID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO agents (email, password_hash, name) VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`,
		agent.Email, string(hash), agent.Name,
	).Scan(&agentID)
	if err != nil {
		return 0, fmt.Errorf("seed agent: %w", err)
	}

	var payrollCount int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM payroll WHERE agent_id = $1`, agentID).Scan(&payrollCount); err != nil {
		return 0, fmt.Errorf("count payroll: %w", err)
	}
	if payrollCount == 0 {
		for _, p := range seedPayrollRows {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO payroll (agent_id, amount, period_start, period_end, payment_date) VALUES ($1, $2, $3, $4, $5)`,
				agentID, p.amount, p.periodStart, p.periodEnd, p.paidOn,
			); err != nil {
				return 0, fmt.Errorf("seed payroll: %w", err)
			}
		}
	}

	var orderCount int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&orderCount); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	if orderCount == 0 {
		for _, o := range seedOrderRows {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO orders (customer_name, project_name, order_date, total_amount, status, description) VALUES ($1, $2, $3, $4, $5, $6)`,
				o.customer, o.project, o.date, o.amount, o.status, o.description,
			); err != nil {
				return 0, fmt.Errorf("seed orders: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return agentID, nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS agents (
		id BIGSERIAL PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS payroll (
		id BIGSERIAL PRIMARY KEY,
		agent_id BIGINT NOT NULL REFERENCES agents(id),
		amount NUMERIC(10,2) NOT NULL,
		period_start DATE NOT NULL,
		period_end DATE NOT NULL,
		payment_date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		customer_name TEXT NOT NULL,
		project_name TEXT NOT NULL,
		order_date DATE NOT NULL,
		total_amount NUMERIC(10,2) NOT NULL,
		status TEXT NOT NULL,
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS chat_history (
		id BIGSERIAL PRIMARY KEY,
		agent_id BIGINT NOT NULL REFERENCES agents(id),
		message TEXT NOT NULL,
		response TEXT NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_payroll_agent_period ON payroll (agent_id, period_start, period_end)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_history_agent_ts ON chat_history (agent_id, timestamp DESC)`,
}

// Migrate creates the tables if they do not exist. It is safe to run repeatedly.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}

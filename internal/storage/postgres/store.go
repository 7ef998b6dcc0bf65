// Package postgres implements the chat store on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	apperrors "payroll-assistant/internal/common/errors"
	"payroll-assistant/internal/models"
)

const (
	// Dates compare as YYYY-MM-DD text so custom range bounds that are not
	// valid calendar dates still compare lexicographically instead of failing.
	sumPayrollQuery = `SELECT COALESCE(SUM(amount), 0) FROM payroll
		WHERE agent_id = $1
		  AND to_char(period_start, 'YYYY-MM-DD') >= $2
		  AND to_char(period_end, 'YYYY-MM-DD') <= $3`

	// LIKE wildcards typed by the user are not escaped.
	findOrdersQuery = `SELECT id, customer_name, project_name, order_date, total_amount, status, COALESCE(description, '')
		FROM orders
		WHERE customer_name ILIKE '%' || $1 || '%'
		ORDER BY order_date DESC, id DESC
		LIMIT $2`

	appendChatTurnQuery = `INSERT INTO chat_history (agent_id, message, response, timestamp)
		VALUES ($1, $2, $3, $4)`

	listChatHistoryQuery = `SELECT message, response, timestamp FROM chat_history
		WHERE agent_id = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT $2`
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) SumPayrollInRange(ctx context.Context, agentID int64, start, end string) (float64, error) {
	var total float64
	if err := s.db.QueryRowContext(ctx, sumPayrollQuery, agentID, start, end).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum payroll: %w", err)
	}
	return total, nil
}

func (s *Store) FindOrdersByName(ctx context.Context, name string, limit int) ([]models.OrderRecord, error) {
	rows, err := s.db.QueryContext(ctx, findOrdersQuery, name, limit)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer rows.Close()

	var orders []models.OrderRecord
	for rows.Next() {
		var o models.OrderRecord
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.ProjectName, &o.OrderDate, &o.TotalAmount, &o.Status, &o.Description); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

func (s *Store) AppendChatTurn(ctx context.Context, turn models.ChatTurn) error {
	if _, err := s.db.ExecContext(ctx, appendChatTurnQuery, turn.AgentID, turn.Message, turn.Response, turn.Timestamp); err != nil {
		return apperrors.NewStoreWriteFailedError("append_chat_turn", err)
	}
	return nil
}

// ListChatHistory returns the newest limit turns, oldest first.
func (s *Store) ListChatHistory(ctx context.Context, agentID int64, limit int) ([]models.ChatTurn, error) {
	rows, err := s.db.QueryContext(ctx, listChatHistoryQuery, agentID, limit)
	if err != nil {
		return nil, apperrors.NewStoreQueryFailedError("list_chat_history", err)
	}
	defer rows.Close()

	turns := []models.ChatTurn{}
	for rows.Next() {
		t := models.ChatTurn{AgentID: agentID}
		if err := rows.Scan(&t.Message, &t.Response, &t.Timestamp); err != nil {
			return nil, apperrors.NewStoreQueryFailedError("list_chat_history", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreQueryFailedError("list_chat_history", err)
	}

	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

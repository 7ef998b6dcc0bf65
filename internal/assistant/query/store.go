package query

import (
	"context"

	"payroll-assistant/internal/models"
)

// PayrollReader sums payroll rows fully contained in [start, end].
type PayrollReader interface {
	SumPayrollInRange(ctx context.Context, agentID int64, start, end string) (float64, error)
}

// OrderReader finds orders whose customer name contains name, case-insensitively,
// newest first.
type OrderReader interface {
	FindOrdersByName(ctx context.Context, name string, limit int) ([]models.OrderRecord, error)
}

type ChatTurnWriter interface {
	AppendChatTurn(ctx context.Context, turn models.ChatTurn) error
}

// ChatHistoryReader returns the latest turns for an agent, oldest first.
type ChatHistoryReader interface {
	ListChatHistory(ctx context.Context, agentID int64, limit int) ([]models.ChatTurn, error)
}

// Store is the full capability set backed by postgres.
type Store interface {
	PayrollReader
	OrderReader
	ChatTurnWriter
	ChatHistoryReader
}

// Package query runs the payroll and order lookups behind a chat answer.
package query

import (
	"context"
	"time"

	apperrors "payroll-assistant/internal/common/errors"
	"payroll-assistant/internal/models"
)

const DefaultOrderLimit = 10

type Config struct {
	QueryTimeout time.Duration
	OrderLimit   int
}

type Executor struct {
	payroll PayrollReader
	orders  OrderReader
	config  Config
}

func NewExecutor(payroll PayrollReader, orders OrderReader, config Config) *Executor {
	if config.OrderLimit <= 0 {
		config.OrderLimit = DefaultOrderLimit
	}
	return &Executor{payroll: payroll, orders: orders, config: config}
}

// SumPayroll totals the agent's payroll rows inside r. No rows yields 0.
func (e *Executor) SumPayroll(ctx context.Context, agentID int64, r models.DateRange) (float64, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	total, err := e.payroll.SumPayrollInRange(ctx, agentID, r.Start, r.End)
	if err != nil {
		return 0, apperrors.NewStoreQueryFailedError("sum_payroll", err)
	}
	return total, nil
}

// FindOrders returns at most the configured number of orders matching name.
func (e *Executor) FindOrders(ctx context.Context, name string) ([]models.OrderRecord, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	orders, err := e.orders.FindOrdersByName(ctx, name, e.config.OrderLimit)
	if err != nil {
		return nil, apperrors.NewStoreQueryFailedError("find_orders", err)
	}
	if len(orders) > e.config.OrderLimit {
		orders = orders[:e.config.OrderLimit]
	}
	return orders, nil
}

func (e *Executor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.config.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.config.QueryTimeout)
}

package query

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "payroll-assistant/internal/common/errors"
	"payroll-assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) SumPayrollInRange(ctx context.Context, agentID int64, start, end string) (float64, error) {
	args := m.Called(ctx, agentID, start, end)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockStore) FindOrdersByName(ctx context.Context, name string, limit int) ([]models.OrderRecord, error) {
	args := m.Called(ctx, name, limit)
	orders, _ := args.Get(0).([]models.OrderRecord)
	return orders, args.Error(1)
}

func createTestConfig() Config {
	return Config{QueryTimeout: time.Second, OrderLimit: 10}
}

func TestExecutor_SumPayroll(t *testing.T) {
	store := new(mockStore)
	store.On("SumPayrollInRange", mock.Anything, int64(1), "2024-01-01", "2024-01-31").Return(4800.0, nil)

	exec := NewExecutor(store, store, createTestConfig())
	total, err := exec.SumPayroll(context.Background(), 1, models.DateRange{Start: "2024-01-01", End: "2024-01-31"})

	require.NoError(t, err)
	assert.Equal(t, 4800.0, total)
	store.AssertExpectations(t)
}

func TestExecutor_SumPayroll_AppliesTimeout(t *testing.T) {
	store := new(mockStore)
	store.On("SumPayrollInRange", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), int64(1), "a", "b").Return(0.0, nil)

	exec := NewExecutor(store, store, createTestConfig())
	_, err := exec.SumPayroll(context.Background(), 1, models.DateRange{Start: "a", End: "b"})
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestExecutor_SumPayroll_StoreFailure(t *testing.T) {
	store := new(mockStore)
	store.On("SumPayrollInRange", mock.Anything, int64(1), "a", "b").Return(0.0, errors.New("connection refused"))

	exec := NewExecutor(store, store, createTestConfig())
	_, err := exec.SumPayroll(context.Background(), 1, models.DateRange{Start: "a", End: "b"})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStoreQueryFailed)
}

func TestExecutor_SumPayroll_DeadlineIsTimeout(t *testing.T) {
	store := new(mockStore)
	store.On("SumPayrollInRange", mock.Anything, int64(1), "a", "b").Return(0.0, context.DeadlineExceeded)

	exec := NewExecutor(store, store, createTestConfig())
	_, err := exec.SumPayroll(context.Background(), 1, models.DateRange{Start: "a", End: "b"})

	assert.ErrorIs(t, err, apperrors.ErrQueryTimeout)
}

func TestExecutor_FindOrders(t *testing.T) {
	orders := []models.OrderRecord{
		{CustomerName: "John Smith", ProjectName: "Website Redesign"},
		{CustomerName: "John Smith", ProjectName: "Logo Design"},
	}
	store := new(mockStore)
	store.On("FindOrdersByName", mock.Anything, "john", 10).Return(orders, nil)

	exec := NewExecutor(store, store, createTestConfig())
	got, err := exec.FindOrders(context.Background(), "john")

	require.NoError(t, err)
	assert.Equal(t, orders, got)
}

func TestExecutor_FindOrders_CapsResults(t *testing.T) {
	many := make([]models.OrderRecord, 5)
	store := new(mockStore)
	store.On("FindOrdersByName", mock.Anything, "x", 3).Return(many, nil)

	exec := NewExecutor(store, store, Config{OrderLimit: 3})
	got, err := exec.FindOrders(context.Background(), "x")

	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestExecutor_FindOrders_StoreFailure(t *testing.T) {
	store := new(mockStore)
	store.On("FindOrdersByName", mock.Anything, "x", DefaultOrderLimit).Return(nil, errors.New("boom"))

	exec := NewExecutor(store, store, Config{})
	_, err := exec.FindOrders(context.Background(), "x")

	assert.ErrorIs(t, err, apperrors.ErrStoreQueryFailed)
}

package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_EmptyDatabase(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO agents`)).
		WithArgs("test@brandmetrics.com", sqlmock.AnyArg(), "Test Agent").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM payroll WHERE agent_id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	for range seedPayrollRows {
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO payroll`)).WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM orders`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	for range seedOrderRows {
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO orders`)).WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	id, err := Seed(context.Background(), db, DefaultSeedAgent)

	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeed_AlreadySeeded(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO agents`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM payroll WHERE agent_id = $1`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM orders`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))
	mock.ExpectCommit()

	id, err := Seed(context.Background(), db, DefaultSeedAgent)

	require.NoError(t, err)
	assert.Equal(t, int64(4), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeed_RollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO agents`)).
		WillReturnError(errors.New("relation \"agents\" does not exist"))
	mock.ExpectRollback()

	_, err := Seed(context.Background(), db, DefaultSeedAgent)

	assert.ErrorContains(t, err, "seed agent")
	assert.NoError(t, mock.ExpectationsWereMet())
}

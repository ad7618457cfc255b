package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoragesTransact_CommitsSharedTransaction(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	s := NewStorages(&DB{DB: sqlDB, logger: logger.Nop()}, NewMemorySessionStore(), logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM expenses").WithArgs("u").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM users").WithArgs("u").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = s.Transact(context.Background(), func(ctx context.Context, repos Repositories) error {
		if _, err := repos.Expenses.DeleteUserExpenses(ctx, "u"); err != nil {
			return err
		}
		return repos.Users.DeleteUser(ctx, "u")
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoragesTransact_RollsBackOnError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	s := NewStorages(&DB{DB: sqlDB, logger: logger.Nop()}, NewMemorySessionStore(), logger.Nop())
	remoteErr := errors.New("asset delete failed")

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM users").WithArgs("u").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err = s.Transact(context.Background(), func(ctx context.Context, repos Repositories) error {
		if err := repos.Users.DeleteUser(ctx, "u"); err != nil {
			return err
		}
		return remoteErr
	})
	assert.ErrorIs(t, err, remoteErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

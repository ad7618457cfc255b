package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsRetryable reports whether err is a PostgreSQL error that may clear up
// by itself: a lost connection, a deadlock or serialization rollback, or a
// server that is still starting. Nothing in the application retries on its
// own; the OTP cleanup worker only uses the answer to pick a log level
// because its next tick is the retry.
//
// Constraint violations, data exceptions, syntax errors and anything that is
// not a *pgconn.PgError report false.
func IsRetryable(err error) bool {
	code := postgresError(err)
	if code == "" {
		return false
	}

	switch {
	case pgerrcode.IsConnectionException(code): // class 08
		return true
	case pgerrcode.IsTransactionRollback(code): // class 40
		return true
	case code == pgerrcode.CannotConnectNow, code == pgerrcode.AdminShutdown:
		return true
	}

	return false
}

// postgresError returns the SQLSTATE code of err, or "" when err does not
// wrap a PostgreSQL server error.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

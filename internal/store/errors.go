package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserAlreadyExists is returned when an insert or update violates the
	// unique username or email constraint.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("no user was found")

	// ErrExpenseNotFound is returned when no expense with the given id is
	// owned by the given user.
	ErrExpenseNotFound = errors.New("expense was not found")

	// ErrSessionNotFound is returned for unknown or expired session ids.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrOTPNotMatched is returned when a password reset is attempted with a
	// code that is no longer the stored, unexpired OTP.
	ErrOTPNotMatched = errors.New("otp does not match or has expired")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning fails during multi-row
	// iteration.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrCommittingTx is returned by [WithTx] when every step succeeded but
	// the commit did not. Side effects made inside the transaction function
	// outside the database have already happened.
	ErrCommittingTx = errors.New("error committing transaction")

	// ErrSessionEncoding is returned when a session cannot be serialized to
	// or from the session backend.
	ErrSessionEncoding = errors.New("failed to encode session")
)

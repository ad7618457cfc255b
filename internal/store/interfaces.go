package store

import (
	"context"
	"time"

	"github.com/MKhiriev/expense-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts, their avatar reference and the
// password-recovery state.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// CreateExternalUser inserts a user unless one with the same email
	// already exists. created is false when the insert was a no-op.
	CreateExternalUser(ctx context.Context, user models.User) (createdUser models.User, created bool, err error)

	FindUserByID(ctx context.Context, userID string) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	UpdateAvatar(ctx context.Context, userID string, avatar models.Avatar) error

	SetOTP(ctx context.Context, userID string, otp int, expiry time.Time) error
	// RegisterFailedOTPAttempt increments the failure counter and clears the
	// pending OTP once maxAttempts is reached. It returns the new counter.
	RegisterFailedOTPAttempt(ctx context.Context, userID string, maxAttempts int) (int, error)
	// ResetPasswordWithOTP writes passwordHash and clears the OTP in one
	// statement, only if otp is still the stored, unexpired code.
	ResetPasswordWithOTP(ctx context.Context, userID string, otp int, passwordHash string, now time.Time) error
	ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error)

	DeleteUser(ctx context.Context, userID string) error
}

// ExpenseRepository persists expense records. Every method is scoped to
// the owning user.
type ExpenseRepository interface {
	CreateExpense(ctx context.Context, expense models.Expense) (models.Expense, error)
	FindExpense(ctx context.Context, userID, expenseID string) (models.Expense, error)
	ListExpenses(ctx context.Context, userID string) ([]models.Expense, error)
	ListExpenseIDs(ctx context.Context, userID string) ([]string, error)
	UpdateExpense(ctx context.Context, expense models.Expense) (models.Expense, error)
	DeleteExpense(ctx context.Context, userID, expenseID string) error
	DeleteUserExpenses(ctx context.Context, userID string) (int64, error)
}

// SessionStore keeps server-side sessions keyed by an opaque id.
type SessionStore interface {
	CreateSession(ctx context.Context, session models.Session) error
	GetSession(ctx context.Context, sessionID string) (models.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteUserSessions(ctx context.Context, userID string) error
}

// Transactor runs fn with repositories bound to a single database
// transaction. The transaction commits when fn returns nil.
type Transactor interface {
	Transact(ctx context.Context, fn TxFunc) error
}

// TxFunc is the unit of work executed by [Transactor.Transact].
type TxFunc func(ctx context.Context, repos Repositories) error

// Repositories groups the repositories that share one database handle.
type Repositories struct {
	Users    UserRepository
	Expenses ExpenseRepository
}

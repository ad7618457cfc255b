package service

import (
	"context"

	"github.com/MKhiriev/expense-tracker/models"
)

// AuthService handles local accounts: signup and username-or-email sign-in.
type AuthService interface {
	Register(ctx context.Context, form models.SignupForm) (models.User, error)
	// Login never reveals whether the account exists: an unknown login and
	// a wrong password both yield ErrInvalidCredentials.
	Login(ctx context.Context, creds models.Credentials) (models.User, error)
}

// OAuthService maps an external identity to a local account.
type OAuthService interface {
	Enabled() bool
	AuthCodeURL(state string) string
	// Link exchanges code for the provider profile and returns the account
	// owning its email, creating it on first sign-in.
	Link(ctx context.Context, code string) (models.User, error)
}

// RecoveryService implements password recovery with one-time codes sent by
// e-mail.
type RecoveryService interface {
	// Issue sends a fresh code to email and returns the id to continue the
	// flow with. For an unknown email a random id is returned so callers
	// cannot tell the difference.
	Issue(ctx context.Context, email string) (string, error)
	Verify(ctx context.Context, userID string, code string) (models.ResetTicket, error)
	SetPassword(ctx context.Context, userID, ticket, password, confirm string) error
}

// AccountService manages the signed-in user's own account.
type AccountService interface {
	Profile(ctx context.Context, userID string) (models.User, error)
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error)
	UpdateAvatar(ctx context.Context, userID string, upload models.AvatarUpload) (models.Avatar, error)
	ChangePassword(ctx context.Context, userID string, change models.PasswordChange) error
	DeleteAccount(ctx context.Context, userID string) error
}

// ExpenseService is owner-scoped CRUD over expenses.
type ExpenseService interface {
	Create(ctx context.Context, userID string, form models.ExpenseForm) (models.Expense, error)
	List(ctx context.Context, userID string) ([]models.Expense, error)
	Get(ctx context.Context, userID, expenseID string) (models.Expense, error)
	Update(ctx context.Context, userID, expenseID string, form models.ExpenseForm) (models.Expense, error)
	Delete(ctx context.Context, userID, expenseID string) error
}

// SessionService creates and resolves server-side sessions.
type SessionService interface {
	Create(ctx context.Context, userID string) (models.Session, error)
	Resolve(ctx context.Context, sessionID string) (models.Session, error)
	Destroy(ctx context.Context, sessionID string) error
	DestroyAll(ctx context.Context, userID string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// ExpenseServiceWrapper defines middleware composition for ExpenseService.
// Implementations wrap an existing ExpenseService to add behavior such as
// validating.
type ExpenseServiceWrapper interface {
	Wrap(ExpenseService) ExpenseService
}

// IDGenerator produces primary keys for new records.
type IDGenerator interface {
	Generate() string
}

package service

import (
	"time"

	"github.com/MKhiriev/expense-tracker/internal/adapter"
	"github.com/MKhiriev/expense-tracker/internal/config"
	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/store"
	"github.com/MKhiriev/expense-tracker/internal/utils"
	"github.com/MKhiriev/expense-tracker/models"
)

type Services struct {
	AuthService     AuthService
	OAuthService    OAuthService
	RecoveryService RecoveryService
	AccountService  AccountService
	ExpenseService  ExpenseService
	SessionService  SessionService
	AppInfoService  AppInfoService
}

// Adapters groups the remote collaborators used by the services.
type Adapters struct {
	Mailer   adapter.Mailer
	Assets   adapter.AssetStore
	Identity adapter.IdentityProvider
}

func NewServices(storages *store.Storages, adapters Adapters, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) *Services {
	ids := utils.NewUUIDGenerator()

	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, ids, logger),
		OAuthService:    NewOAuthService(storages.UserRepository, adapters.Identity, ids, logger),
		RecoveryService: NewRecoveryService(storages.UserRepository, adapters.Mailer, cfg.App, logger),
		AccountService:  NewAccountService(storages, storages.UserRepository, storages.ExpenseRepository, adapters.Assets, logger),
		ExpenseService: NewExpenseValidationService().
			Wrap(NewExpenseService(storages.ExpenseRepository, ids, logger)),
		SessionService: NewSessionService(storages.SessionStore, cfg.App.SessionTTL, logger),
		AppInfoService: NewAppInfoService(buildInfo, logger),
	}
}

// clock is overridden in tests.
type clock func() time.Time

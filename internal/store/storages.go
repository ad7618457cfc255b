package store

import (
	"context"

	"github.com/MKhiriev/expense-tracker/internal/logger"
)

// Storages bundles every repository the services depend on.
type Storages struct {
	UserRepository    UserRepository
	ExpenseRepository ExpenseRepository
	SessionStore      SessionStore

	db     *DB
	logger *logger.Logger
}

// NewStorages wires the PostgreSQL repositories on db together with the
// given session backend.
func NewStorages(db *DB, sessions SessionStore, logger *logger.Logger) *Storages {
	logger.Debug().Msg("creating storages")
	return &Storages{
		UserRepository:    NewUserRepository(db, logger),
		ExpenseRepository: NewExpenseRepository(db, logger),
		SessionStore:      sessions,
		db:                db,
		logger:            logger,
	}
}

// Transact implements [Transactor]. The repositories handed to fn share
// one transaction; it is committed when fn returns nil and rolled back
// otherwise.
func (s *Storages) Transact(ctx context.Context, fn TxFunc) error {
	return WithTx(ctx, s.db.DB, nil, func(ctx context.Context, tx DBTX) error {
		return fn(ctx, Repositories{
			Users:    NewUserRepository(tx, s.logger),
			Expenses: NewExpenseRepository(tx, s.logger),
		})
	})
}

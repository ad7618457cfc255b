package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/migrations"
)

// DB wraps the PostgreSQL connection pool shared by the repositories.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate brings the users and expenses schema up to date.
func (db *DB) Migrate(ctx context.Context) error {
	if err := migrations.Migrate(ctx, db.DB); err != nil {
		db.logger.Err(err).Str("func", "DB.Migrate").Msg("schema migration failed")
		return fmt.Errorf("error migrating schema: %w", err)
	}

	db.logger.Info().Str("func", "DB.Migrate").Msg("schema is up to date")
	return nil
}

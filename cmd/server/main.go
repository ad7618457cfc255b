package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/expense-tracker/internal/adapter"
	"github.com/MKhiriev/expense-tracker/internal/config"
	"github.com/MKhiriev/expense-tracker/internal/handler"
	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/server"
	"github.com/MKhiriev/expense-tracker/internal/service"
	"github.com/MKhiriev/expense-tracker/internal/store"
	"github.com/MKhiriev/expense-tracker/internal/workers"
	"github.com/MKhiriev/expense-tracker/models"
	"github.com/redis/go-redis/v9"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("expense-server", false).Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("expense-server", cfg.App.IsDevelopment())
	log.Debug().Str("env", cfg.App.Env).Str("address", cfg.Server.HTTPAddress).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	sessions, closeSessions, err := newSessionStore(ctx, cfg.Storage.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to session store")
	}
	defer closeSessions()

	storages := store.NewStorages(db, sessions, log)

	assets, err := adapter.NewAssetStore(ctx, cfg.Assets, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating asset store")
	}
	adapters := service.Adapters{
		Mailer: adapter.NewMailer(cfg.Mail, log),
		Assets: assets,
	}
	if cfg.OAuth.Enabled() {
		adapters.Identity = adapter.NewGoogleProvider(cfg.OAuth, log)
	}

	services := service.NewServices(storages, adapters, cfg, buildInfo, log)

	handlers, err := handler.NewHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(storages, cfg.Workers, log), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// newSessionStore connects to Redis when an address is configured and
// falls back to the in-process store otherwise.
func newSessionStore(ctx context.Context, cfg config.Redis, log *logger.Logger) (store.SessionStore, func(), error) {
	if cfg.Addr == "" {
		log.Warn().Msg("no redis address configured, sessions are kept in memory")
		return store.NewMemorySessionStore(), func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("error pinging redis: %w", err)
	}

	return store.NewRedisSessionStore(rdb, log), func() { _ = rdb.Close() }, nil
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}

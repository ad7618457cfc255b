package http

import (
	"time"

	"github.com/MKhiriev/expense-tracker/internal/config"
	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/service"
)

type Handler struct {
	services *service.Services
	views    *views

	signKey      string
	cookieSecure bool
	sessionTTL   time.Duration
	staticDir    string
	development  bool

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:     services,
		views:        newViews(),
		signKey:      cfg.ResetTicketSignKey,
		cookieSecure: cfg.CookieSecure,
		sessionTTL:   cfg.SessionTTL,
		staticDir:    cfg.StaticDir,
		development:  cfg.IsDevelopment(),
		logger:       logger,
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// expense-tracker application. It aggregates all sub-configurations and is
// populated by merging values from a .env file, environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the runtime environment,
	// session lifetime, and password-recovery parameters.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database and the
	// session store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// OAuth holds the Google identity provider credentials.
	OAuth OAuth `envPrefix:"OAUTH_GOOGLE_"`

	// Mail holds the transactional mail API settings used for OTP delivery.
	Mail Mail `envPrefix:"MAIL_"`

	// Assets holds the S3-compatible object store settings used for avatars.
	Assets Assets `envPrefix:"ASSETS_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App groups application-level behaviour settings.
type App struct {
	// Env is the runtime environment. "development" exposes error details
	// on the error page.
	Env string `env:"ENV"`

	// ResetTicketSignKey is the HMAC key used to sign password reset tickets.
	ResetTicketSignKey string `env:"RESET_TICKET_SIGN_KEY"`

	// ResetTicketIssuer is the "iss" claim of password reset tickets.
	ResetTicketIssuer string `env:"RESET_TICKET_ISSUER"`

	// SessionTTL is the lifetime of an authenticated session.
	SessionTTL time.Duration `env:"SESSION_TTL"`

	// OTPTTL is how long an issued recovery code stays valid.
	OTPTTL time.Duration `env:"OTP_TTL"`

	// OTPMaxAttempts is the number of failed verifications after which the
	// current code is discarded.
	OTPMaxAttempts int `env:"OTP_MAX_ATTEMPTS"`

	// CookieSecure marks session and flash cookies as Secure.
	CookieSecure bool `env:"COOKIE_SECURE"`

	// StaticDir is the directory served under /images, /stylesheets, etc.
	StaticDir string `env:"STATIC_DIR"`
}

// IsDevelopment reports whether the application runs in development mode.
func (a App) IsDevelopment() bool {
	return a.Env == EnvDevelopment
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Redis holds the session store connection settings. When Addr is
	// empty sessions are kept in process memory.
	Redis Redis `envPrefix:"REDIS_"`
}

// Server holds the HTTP listener settings.
type Server struct {
	HTTPAddress string `env:"ADDRESS"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds the PostgreSQL connection string.
type DB struct {
	DSN string `env:"DATABASE_URI"`
}

// Redis holds the session store connection settings.
type Redis struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB"`
}

// OAuth holds the Google OAuth 2.0 client registration. Google sign-in is
// disabled when ClientID is empty.
type OAuth struct {
	ClientID     string   `env:"CLIENT_ID"`
	ClientSecret string   `env:"CLIENT_SECRET"`
	RedirectURL  string   `env:"REDIRECT_URL"`
	UserInfoURL  string   `env:"USERINFO_URL"`
	Scopes       []string `env:"SCOPES" envSeparator:","`
}

// Enabled reports whether Google sign-in is configured.
func (o OAuth) Enabled() bool {
	return o.ClientID != ""
}

// Mail holds the HTTP mail API settings. When APIURL is empty, outgoing
// messages are written to the log instead of being sent.
type Mail struct {
	APIURL  string        `env:"API_URL"`
	APIKey  string        `env:"API_KEY"`
	From    string        `env:"FROM"`
	Timeout time.Duration `env:"TIMEOUT"`
}

// Assets holds the S3-compatible object store settings. Avatar uploads are
// disabled when Bucket is empty.
type Assets struct {
	Endpoint        string `env:"ENDPOINT"`
	Region          string `env:"REGION"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	Bucket          string `env:"BUCKET"`
	UsePathStyle    bool   `env:"USE_PATH_STYLE"`

	// PublicURL is the base URL objects are served from.
	PublicURL string `env:"PUBLIC_URL"`

	// ThumbnailURL is the base URL of a resizing proxy in front of the
	// bucket. Falls back to PublicURL.
	ThumbnailURL string `env:"THUMBNAIL_URL"`
}

// Enabled reports whether the asset store is configured.
func (a Assets) Enabled() bool {
	return a.Bucket != ""
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// OTPCleanupInterval is how often expired recovery codes are purged.
	OTPCleanupInterval time.Duration `env:"OTP_CLEANUP_INTERVAL"`
	// SessionSweepInterval is how often the in-memory session store drops
	// expired sessions. The Redis store expires keys on its own.
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL"`
}

// GetStructuredConfig loads, merges, defaults and validates the application
// configuration.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags().
		withJSON().
		build()
}

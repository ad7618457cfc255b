package config

import "time"

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	defaultHTTPAddress          = "localhost:8080"
	defaultRequestTimeout       = 30 * time.Second
	defaultSessionTTL           = 24 * time.Hour
	defaultOTPTTL               = 5 * time.Minute
	defaultOTPMaxAttempts       = 5
	defaultResetTicketIssuer    = "expense-tracker"
	defaultStaticDir            = "public"
	defaultMailTimeout          = 10 * time.Second
	defaultAssetsRegion         = "us-east-1"
	defaultOTPCleanupInterval   = time.Minute
	defaultSessionSweepInterval = 10 * time.Minute
	defaultGoogleUserInfoURL    = "https://openidconnect.googleapis.com/v1/userinfo"
)

var defaultGoogleScopes = []string{"openid", "email", "profile"}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.Env == "" {
		cfg.App.Env = EnvProduction
	}
	if cfg.App.SessionTTL == 0 {
		cfg.App.SessionTTL = defaultSessionTTL
	}
	if cfg.App.OTPTTL == 0 {
		cfg.App.OTPTTL = defaultOTPTTL
	}
	if cfg.App.OTPMaxAttempts == 0 {
		cfg.App.OTPMaxAttempts = defaultOTPMaxAttempts
	}
	if cfg.App.ResetTicketIssuer == "" {
		cfg.App.ResetTicketIssuer = defaultResetTicketIssuer
	}
	if cfg.App.StaticDir == "" {
		cfg.App.StaticDir = defaultStaticDir
	}

	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}

	if cfg.OAuth.UserInfoURL == "" {
		cfg.OAuth.UserInfoURL = defaultGoogleUserInfoURL
	}
	if len(cfg.OAuth.Scopes) == 0 {
		cfg.OAuth.Scopes = append([]string(nil), defaultGoogleScopes...)
	}

	if cfg.Mail.Timeout == 0 {
		cfg.Mail.Timeout = defaultMailTimeout
	}

	if cfg.Assets.Region == "" {
		cfg.Assets.Region = defaultAssetsRegion
	}
	if cfg.Assets.ThumbnailURL == "" {
		cfg.Assets.ThumbnailURL = cfg.Assets.PublicURL
	}

	if cfg.Workers.OTPCleanupInterval == 0 {
		cfg.Workers.OTPCleanupInterval = defaultOTPCleanupInterval
	}
	if cfg.Workers.SessionSweepInterval == 0 {
		cfg.Workers.SessionSweepInterval = defaultSessionSweepInterval
	}
}

func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.ResetTicketSignKey == "" || cfg.App.OTPMaxAttempts < 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.App.Env != EnvDevelopment && cfg.App.Env != EnvProduction {
		return ErrInvalidAppConfigs
	}

	if cfg.OAuth.Enabled() && (cfg.OAuth.ClientSecret == "" || cfg.OAuth.RedirectURL == "") {
		return ErrInvalidOAuthConfigs
	}

	if cfg.Assets.Enabled() && cfg.Assets.PublicURL == "" {
		return ErrInvalidAssetsConfigs
	}

	if cfg.Mail.APIURL != "" && cfg.Mail.From == "" {
		return ErrInvalidMailConfigs
	}

	return nil
}

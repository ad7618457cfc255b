package config

import (
	"encoding/json"
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func minimalConfig() *StructuredConfig {
	return &StructuredConfig{
		App:     App{ResetTicketSignKey: "secret"},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/expenses"}},
	}
}

func resetFlags(t *testing.T, args ...string) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	oldArgs := os.Args
	os.Args = append([]string{"cmd"}, args...)
	t.Cleanup(func() { os.Args = oldArgs })
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that an empty builder fails validation
// because the database DSN is required.
func TestBuild_EmptyBuilder(t *testing.T) {
	_, err := newConfigBuilder().build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_AppliesDefaults verifies that unset values fall back to the
// documented defaults.
func TestBuild_AppliesDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, minimalConfig())

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.App.Env)
	assert.False(t, cfg.App.IsDevelopment())
	assert.Equal(t, 24*time.Hour, cfg.App.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.App.OTPTTL)
	assert.Equal(t, 5, cfg.App.OTPMaxAttempts)
	assert.Equal(t, "expense-tracker", cfg.App.ResetTicketIssuer)
	assert.Equal(t, "public", cfg.App.StaticDir)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, []string{"openid", "email", "profile"}, cfg.OAuth.Scopes)
	assert.Equal(t, time.Minute, cfg.Workers.OTPCleanupInterval)
	assert.Equal(t, 10*time.Minute, cfg.Workers.SessionSweepInterval)
	assert.False(t, cfg.OAuth.Enabled())
	assert.False(t, cfg.Assets.Enabled())
}

// TestBuild_LaterSourcesOverride verifies that each source overrides the
// values of the sources merged before it.
func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		minimalConfig(),
		&StructuredConfig{Server: Server{HTTPAddress: "127.0.0.1:3000"}},
		&StructuredConfig{Server: Server{HTTPAddress: "127.0.0.1:4000"}, App: App{Env: EnvDevelopment}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:4000", cfg.Server.HTTPAddress)
	assert.Equal(t, "secret", cfg.App.ResetTicketSignKey)
	assert.True(t, cfg.App.IsDevelopment())
}

func TestBuild_ThumbnailURLFallsBackToPublicURL(t *testing.T) {
	base := minimalConfig()
	base.Assets = Assets{Bucket: "avatars", PublicURL: "https://cdn.example.com/avatars"}

	b := newConfigBuilder()
	b.configs = append(b.configs, base)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatars", cfg.Assets.ThumbnailURL)
	assert.Equal(t, "us-east-1", cfg.Assets.Region)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:   "minimal config is valid",
			mutate: func(cfg *StructuredConfig) {},
		},
		{
			name:    "missing dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "missing reset ticket key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.ResetTicketSignKey = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "negative otp attempts",
			mutate:  func(cfg *StructuredConfig) { cfg.App.OTPMaxAttempts = -1 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "unknown environment",
			mutate:  func(cfg *StructuredConfig) { cfg.App.Env = "staging" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "oauth client without secret",
			mutate:  func(cfg *StructuredConfig) { cfg.OAuth.ClientID = "id"; cfg.OAuth.RedirectURL = "http://x/cb" },
			wantErr: ErrInvalidOAuthConfigs,
		},
		{
			name: "oauth fully configured",
			mutate: func(cfg *StructuredConfig) {
				cfg.OAuth = OAuth{ClientID: "id", ClientSecret: "s", RedirectURL: "http://x/cb"}
			},
		},
		{
			name:    "bucket without public url",
			mutate:  func(cfg *StructuredConfig) { cfg.Assets.Bucket = "avatars" },
			wantErr: ErrInvalidAssetsConfigs,
		},
		{
			name:    "mail api without sender",
			mutate:  func(cfg *StructuredConfig) { cfg.Mail.APIURL = "https://mail.example.com" },
			wantErr: ErrInvalidMailConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := minimalConfig()
			cfg.applyDefaults()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── withEnv / withFlags / withJSON ────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{
		"APP_RESET_TICKET_SIGN_KEY": "env-key",
		"STORAGE_REDIS_ADDR":        "redis:6379",
	})

	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())

	require.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
	assert.Equal(t, "env-key", b.configs[0].App.ResetTicketSignKey)
	assert.Equal(t, "redis:6379", b.configs[0].Storage.Redis.Addr)
}

func TestWithEnv_InvalidValueSetsError(t *testing.T) {
	setEnvVars(t, map[string]string{"SERVER_REQUEST_TIMEOUT": "forever"})

	b := newConfigBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithFlags_AppendsParsedFlags(t *testing.T) {
	resetFlags(t, "-d", "postgres://flags/db")

	b := newConfigBuilder().withFlags()
	require.Len(t, b.configs, 1)
	assert.Equal(t, "postgres://flags/db", b.configs[0].Storage.DB.DSN)
}

func TestWithJSON_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, minimalConfig())

	b.withJSON()
	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_UsesLastNonEmptyPath(t *testing.T) {
	first := writeTempJSONConfig(t, map[string]any{"server": map[string]any{"http_address": "127.0.0.1:1111"}})
	second := writeTempJSONConfig(t, map[string]any{"server": map[string]any{"http_address": "127.0.0.1:2222"}})

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: first},
		&StructuredConfig{JSONFilePath: second},
		&StructuredConfig{},
	)

	b.withJSON()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 4)
	assert.Equal(t, "127.0.0.1:2222", b.configs[3].Server.HTTPAddress)
}

func TestWithJSON_MissingFileSetsError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "missing.json"})

	b.withJSON()
	assert.Error(t, b.err)
}

func TestWithJSON_SkippedAfterEarlierError(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{})

	b := newConfigBuilder()
	b.err = assert.AnError
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})

	b.withJSON()
	assert.Len(t, b.configs, 1)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

// TestGetStructuredConfig_JSONOverridesEnvAndFlags exercises the whole
// pipeline: env supplies the secrets, flags point at a JSON file, JSON wins.
func TestGetStructuredConfig_JSONOverridesEnvAndFlags(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"server": map[string]any{"http_address": "127.0.0.1:9999"},
	})
	setEnvVars(t, map[string]string{
		"APP_RESET_TICKET_SIGN_KEY": "env-key",
		"STORAGE_DB_DATABASE_URI":   "postgres://env/db",
		"SERVER_ADDRESS":            "127.0.0.1:1111",
	})
	resetFlags(t, "-a", "127.0.0.1:2222", "-c", path)

	cfg, err := GetStructuredConfig()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.HTTPAddress)
	assert.Equal(t, "postgres://env/db", cfg.Storage.DB.DSN)
	assert.Equal(t, "env-key", cfg.App.ResetTicketSignKey)
}

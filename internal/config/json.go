package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		Env                string   `json:"env"`
		ResetTicketSignKey string   `json:"reset_ticket_sign_key"`
		ResetTicketIssuer  string   `json:"reset_ticket_issuer"`
		SessionTTL         Duration `json:"session_ttl"`
		OTPTTL             Duration `json:"otp_ttl"`
		OTPMaxAttempts     int      `json:"otp_max_attempts"`
		CookieSecure       bool     `json:"cookie_secure"`
		StaticDir          string   `json:"static_dir"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Redis struct {
			Addr     string `json:"addr"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	OAuth struct {
		ClientID     string   `json:"client_id"`
		ClientSecret string   `json:"client_secret"`
		RedirectURL  string   `json:"redirect_url"`
		UserInfoURL  string   `json:"userinfo_url"`
		Scopes       []string `json:"scopes"`
	} `json:"oauth_google,omitempty"`

	Mail struct {
		APIURL  string   `json:"api_url"`
		APIKey  string   `json:"api_key"`
		From    string   `json:"from"`
		Timeout Duration `json:"timeout"`
	} `json:"mail,omitempty"`

	Assets struct {
		Endpoint        string `json:"endpoint"`
		Region          string `json:"region"`
		AccessKeyID     string `json:"access_key_id"`
		SecretAccessKey string `json:"secret_access_key"`
		Bucket          string `json:"bucket"`
		UsePathStyle    bool   `json:"use_path_style"`
		PublicURL       string `json:"public_url"`
		ThumbnailURL    string `json:"thumbnail_url"`
	} `json:"assets,omitempty"`

	Workers struct {
		OTPCleanupInterval   Duration `json:"otp_cleanup_interval"`
		SessionSweepInterval Duration `json:"session_sweep_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Env:                jsonCfg.App.Env,
			ResetTicketSignKey: jsonCfg.App.ResetTicketSignKey,
			ResetTicketIssuer:  jsonCfg.App.ResetTicketIssuer,
			SessionTTL:         time.Duration(jsonCfg.App.SessionTTL),
			OTPTTL:             time.Duration(jsonCfg.App.OTPTTL),
			OTPMaxAttempts:     jsonCfg.App.OTPMaxAttempts,
			CookieSecure:       jsonCfg.App.CookieSecure,
			StaticDir:          jsonCfg.App.StaticDir,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Redis: Redis{
				Addr:     jsonCfg.Storage.Redis.Addr,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		OAuth: OAuth{
			ClientID:     jsonCfg.OAuth.ClientID,
			ClientSecret: jsonCfg.OAuth.ClientSecret,
			RedirectURL:  jsonCfg.OAuth.RedirectURL,
			UserInfoURL:  jsonCfg.OAuth.UserInfoURL,
			Scopes:       jsonCfg.OAuth.Scopes,
		},
		Mail: Mail{
			APIURL:  jsonCfg.Mail.APIURL,
			APIKey:  jsonCfg.Mail.APIKey,
			From:    jsonCfg.Mail.From,
			Timeout: time.Duration(jsonCfg.Mail.Timeout),
		},
		Assets: Assets{
			Endpoint:        jsonCfg.Assets.Endpoint,
			Region:          jsonCfg.Assets.Region,
			AccessKeyID:     jsonCfg.Assets.AccessKeyID,
			SecretAccessKey: jsonCfg.Assets.SecretAccessKey,
			Bucket:          jsonCfg.Assets.Bucket,
			UsePathStyle:    jsonCfg.Assets.UsePathStyle,
			PublicURL:       jsonCfg.Assets.PublicURL,
			ThumbnailURL:    jsonCfg.Assets.ThumbnailURL,
		},
		Workers: Workers{
			OTPCleanupInterval:   time.Duration(jsonCfg.Workers.OTPCleanupInterval),
			SessionSweepInterval: time.Duration(jsonCfg.Workers.SessionSweepInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

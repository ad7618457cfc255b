package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/expense-tracker/internal/config"
	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/utils"
	"github.com/MKhiriev/expense-tracker/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	providerGoogle  = "google"
	userInfoTimeout = 10 * time.Second
)

type googleProvider struct {
	oauth       *oauth2.Config
	client      *utils.HTTPClient
	userInfoURL string

	logger *logger.Logger
}

type googleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
}

// NewGoogleProvider returns an [IdentityProvider] for Google sign-in built
// from the explicit client registration in cfg.
func NewGoogleProvider(cfg config.OAuth, logger *logger.Logger) IdentityProvider {
	return newOAuthProvider(&oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       cfg.Scopes,
		Endpoint:     google.Endpoint,
	}, cfg.UserInfoURL, logger)
}

func newOAuthProvider(oauthCfg *oauth2.Config, userInfoURL string, logger *logger.Logger) *googleProvider {
	return &googleProvider{
		oauth:       oauthCfg,
		client:      utils.NewHTTPClient("", userInfoTimeout),
		userInfoURL: userInfoURL,
		logger:      logger,
	}
}

func (p *googleProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (p *googleProvider) Exchange(ctx context.Context, code string) (models.IdentityProfile, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		p.logger.Err(err).Str("func", "*googleProvider.Exchange").Msg("authorization code exchange failed")
		return models.IdentityProfile{}, fmt.Errorf("%w: %w", ErrOAuthExchange, err)
	}

	var info googleUserInfo
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetResult(&info).
		Get(p.userInfoURL)
	if err != nil {
		p.logger.Err(err).Str("func", "*googleProvider.Exchange").Msg("userinfo request failed")
		return models.IdentityProfile{}, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	if err = mapHTTPError("google userinfo", resp); err != nil {
		p.logger.Err(err).Str("func", "*googleProvider.Exchange").Int("status", resp.StatusCode()).Msg("userinfo request rejected")
		return models.IdentityProfile{}, err
	}

	if info.Sub == "" {
		return models.IdentityProfile{}, ErrInvalidProfile
	}

	name := strings.TrimSpace(info.Name)
	if name == "" {
		name = strings.TrimSpace(info.GivenName)
	}

	return models.IdentityProfile{
		Provider:       providerGoogle,
		ProviderUserID: info.Sub,
		Email:          strings.TrimSpace(info.Email),
		EmailVerified:  info.EmailVerified,
		DisplayName:    name,
	}, nil
}

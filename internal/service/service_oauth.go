package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/expense-tracker/internal/adapter"
	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/store"
	"github.com/MKhiriev/expense-tracker/internal/validators"
	"github.com/MKhiriev/expense-tracker/models"
)

const (
	minUsernameLen       = 3
	maxUsernameLen       = 20
	usernameSuffixDigits = 4
	usernameRetries      = 3
	fallbackUsername     = "user"
)

type oauthService struct {
	userRepository store.UserRepository
	provider       adapter.IdentityProvider
	ids            IDGenerator

	// suffix returns the random numeric suffix appended on username collisions.
	suffix func() string

	logger *logger.Logger
}

// NewOAuthService constructs an OAuthService. A nil provider disables OAuth
// sign-in.
func NewOAuthService(userRepository store.UserRepository, provider adapter.IdentityProvider, ids IDGenerator, logger *logger.Logger) OAuthService {
	return &oauthService{
		userRepository: userRepository,
		provider:       provider,
		ids:            ids,
		suffix:         randomSuffix,
		logger:         logger,
	}
}

func (s *oauthService) Enabled() bool {
	return s.provider != nil
}

func (s *oauthService) AuthCodeURL(state string) string {
	if s.provider == nil {
		return ""
	}
	return s.provider.AuthCodeURL(state)
}

// Link resolves the provider profile behind code to a local account.
//
// The account is matched by lowercased email. On first sign-in an account
// without a password is created; the insert is a no-op when another request
// created the same email concurrently, in which case that account is
// returned. A username derived from the display name that is already taken
// is retried with a random numeric suffix.
func (s *oauthService) Link(ctx context.Context, code string) (models.User, error) {
	log := logger.FromContext(ctx)

	if s.provider == nil {
		return models.User{}, ErrOAuthDisabled
	}

	profile, err := s.provider.Exchange(ctx, code)
	if err != nil {
		log.Err(err).Str("func", "*oauthService.Link").Msg("identity provider exchange failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	email := validators.NormalizeEmail(profile.Email)
	if email == "" || !profile.EmailVerified {
		log.Warn().Str("func", "*oauthService.Link").Str("provider", profile.Provider).Msg("profile without a verified email")
		return models.User{}, ErrIdentityIncomplete
	}

	existing, err := s.userRepository.FindUserByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		log.Err(err).Str("func", "*oauthService.Link").Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	base := usernameFromProfile(profile.DisplayName, email)
	candidate := base
	for attempt := 0; attempt <= usernameRetries; attempt++ {
		user, created, err := s.userRepository.CreateExternalUser(ctx, models.User{
			ID:       s.ids.Generate(),
			Username: candidate,
			Email:    email,
			Avatar:   models.DefaultAvatar(),
		})
		if err == nil {
			if created {
				log.Info().Str("func", "*oauthService.Link").Str("user_id", user.ID).Str("provider", profile.Provider).Msg("account created from external identity")
			}
			return user, nil
		}
		if !errors.Is(err, store.ErrUserAlreadyExists) {
			log.Err(err).Str("func", "*oauthService.Link").Msg("external user creation failed")
			return models.User{}, fmt.Errorf("external user creation failed: %w", err)
		}

		candidate = withSuffix(base, s.suffix())
	}

	log.Warn().Str("func", "*oauthService.Link").Str("username", base).Msg("username retries exhausted")
	return models.User{}, ErrUsernameUnavailable
}

// usernameFromProfile keeps the letters, digits, '_', '-' and '.' of the
// display name, falling back to the local part of email, and fits the
// result into the 3 to 20 character username range.
func usernameFromProfile(displayName, email string) string {
	name := sanitizeUsername(displayName)
	if utf8.RuneCountInString(name) < minUsernameLen {
		local, _, _ := strings.Cut(email, "@")
		name = sanitizeUsername(local)
	}
	if utf8.RuneCountInString(name) < minUsernameLen {
		name = fallbackUsername + name
	}

	return truncateRunes(name, maxUsernameLen)
}

func sanitizeUsername(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == '-', r == '.':
			b.WriteRune(r)
		}
	}
	return b.String()
}

func withSuffix(base, suffix string) string {
	return truncateRunes(base, maxUsernameLen-utf8.RuneCountInString(suffix)) + suffix
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func randomSuffix() string {
	return fmt.Sprintf("%0*d", usernameSuffixDigits, rand.IntN(10000))
}

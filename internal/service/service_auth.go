package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/store"
	"github.com/MKhiriev/expense-tracker/internal/utils"
	"github.com/MKhiriev/expense-tracker/internal/validators"
	"github.com/MKhiriev/expense-tracker/models"
)

// authService is the concrete implementation of AuthService.
// It handles local signup and sign-in against the UserRepository, with
// bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// validator checks signup and sign-in forms.
	validator validators.Validator

	ids IDGenerator

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, ids IDGenerator, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		validator:      validators.NewAccountValidator(),
		ids:            ids,
		logger:         logger,
	}
}

// Register creates a new local account.
//
// The username is trimmed and the email lowercased before validation. The
// password is stored only as a bcrypt hash.
//
// Returns the persisted user or:
//   - ErrInvalidDataProvided (wrapping the validator error) for bad input.
//   - store.ErrUserAlreadyExists (wrapped) if the username or email is taken.
func (a *authService) Register(ctx context.Context, form models.SignupForm) (models.User, error) {
	log := logger.FromContext(ctx)

	form.Username = validators.NormalizeUsername(form.Username)
	form.Email = validators.NormalizeEmail(form.Email)

	if err := a.validator.Validate(ctx, form); err != nil {
		log.Debug().Err(err).Str("func", "*authService.Register").Str("username", form.Username).Msg("invalid signup form")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	passwordHash, err := utils.HashPassword(form.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		ID:           a.ids.Generate(),
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: passwordHash,
		Avatar:       models.DefaultAvatar(),
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Str("username", form.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates a local account.
//
// A login containing "@" is looked up by lowercased email, otherwise by
// username. Accounts without a password (created through OAuth) never
// match.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, creds); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	var (
		foundUser models.User
		err       error
	)
	login := strings.TrimSpace(creds.Login)
	if strings.Contains(login, "@") {
		foundUser, err = a.userRepository.FindUserByEmail(ctx, validators.NormalizeEmail(login))
	} else {
		foundUser, err = a.userRepository.FindUserByUsername(ctx, login)
	}
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug().Str("func", "*authService.Login").Msg("no user with given login")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by login failed")
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	ok, err := utils.CheckPassword(foundUser.PasswordHash, creds.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Str("user_id", foundUser.ID).Msg("password check failed")
		return models.User{}, ErrInvalidCredentials
	}
	if !ok {
		log.Debug().Str("func", "*authService.Login").Str("user_id", foundUser.ID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/expense-tracker/internal/adapter"
	"github.com/MKhiriev/expense-tracker/internal/config"
	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/store"
	"github.com/MKhiriev/expense-tracker/internal/utils"
	"github.com/MKhiriev/expense-tracker/internal/validators"
	"github.com/MKhiriev/expense-tracker/models"
	"github.com/google/uuid"
)

const otpMailSubject = "Your password reset code"

// recoveryService drives the NoRequest -> OtpIssued -> Verified ->
// PasswordSet cycle. The OTP pair lives on the user record; the verified
// state is carried by a signed reset ticket.
type recoveryService struct {
	userRepository store.UserRepository
	mailer         adapter.Mailer

	otpTTL        time.Duration
	maxAttempts   int
	ticketSignKey string
	ticketIssuer  string
	generateOTP   func() (int, error)
	now           clock

	logger *logger.Logger
}

func NewRecoveryService(userRepository store.UserRepository, mailer adapter.Mailer, cfg config.App, logger *logger.Logger) RecoveryService {
	return &recoveryService{
		userRepository: userRepository,
		mailer:         mailer,
		otpTTL:         cfg.OTPTTL,
		maxAttempts:    cfg.OTPMaxAttempts,
		ticketSignKey:  cfg.ResetTicketSignKey,
		ticketIssuer:   cfg.ResetTicketIssuer,
		generateOTP:    utils.GenerateOTP,
		now:            time.Now,
		logger:         logger,
	}
}

// Issue stores a new code for the account owning email, replacing any
// pending one, and mails it.
//
// An unknown email returns a random id and a nil error. A mail delivery
// failure returns ErrUpstream.
func (s *recoveryService) Issue(ctx context.Context, email string) (string, error) {
	log := logger.FromContext(ctx)

	email = validators.NormalizeEmail(email)
	if email == "" {
		return "", ErrInvalidDataProvided
	}

	user, err := s.userRepository.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug().Str("func", "*recoveryService.Issue").Msg("otp requested for unknown email")
		return uuid.NewString(), nil
	}
	if err != nil {
		log.Err(err).Str("func", "*recoveryService.Issue").Msg("user search by email failed")
		return "", fmt.Errorf("user search by email failed: %w", err)
	}

	otp, err := s.generateOTP()
	if err != nil {
		log.Err(err).Str("func", "*recoveryService.Issue").Msg("otp generation failed")
		return "", fmt.Errorf("otp generation failed: %w", err)
	}

	expiry := s.now().Add(s.otpTTL)
	if err = s.userRepository.SetOTP(ctx, user.ID, otp, expiry); err != nil {
		log.Err(err).Str("func", "*recoveryService.Issue").Str("user_id", user.ID).Msg("saving otp failed")
		return "", fmt.Errorf("saving otp failed: %w", err)
	}

	if err = s.mailer.Send(ctx, otpMessage(user, otp, s.otpTTL)); err != nil {
		log.Err(err).Str("func", "*recoveryService.Issue").Str("user_id", user.ID).Msg("sending otp failed")
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	log.Info().Str("func", "*recoveryService.Issue").Str("user_id", user.ID).Time("otp_expiry", expiry).Msg("otp issued")
	return user.ID, nil
}

// Verify checks code against the pending OTP of userID. It succeeds iff the
// OTP exists, equals code and has not expired; the returned ticket expires
// together with the OTP. Every failure against a pending OTP is counted and
// the OTP is discarded after the configured number of attempts.
func (s *recoveryService) Verify(ctx context.Context, userID string, code string) (models.ResetTicket, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.ResetTicket{}, ErrOTPInvalid
	}
	if err != nil {
		log.Err(err).Str("func", "*recoveryService.Verify").Str("user_id", userID).Msg("user search by id failed")
		return models.ResetTicket{}, fmt.Errorf("user search by id failed: %w", err)
	}

	otp, parseErr := strconv.Atoi(strings.TrimSpace(code))
	if parseErr != nil || !user.OTPValidAt(otp, s.now()) {
		s.registerFailure(ctx, user)
		return models.ResetTicket{}, ErrOTPInvalid
	}

	ticket, err := utils.GenerateResetTicket(s.ticketIssuer, user.ID, otp, *user.OTPExpiry, s.ticketSignKey)
	if err != nil {
		log.Err(err).Str("func", "*recoveryService.Verify").Str("user_id", userID).Msg("reset ticket creation failed")
		return models.ResetTicket{}, fmt.Errorf("reset ticket creation failed: %w", err)
	}

	return ticket, nil
}

func (s *recoveryService) registerFailure(ctx context.Context, user models.User) {
	if user.OTP == nil {
		return
	}

	log := logger.FromContext(ctx)
	attempts, err := s.userRepository.RegisterFailedOTPAttempt(ctx, user.ID, s.maxAttempts)
	if err != nil {
		log.Err(err).Str("func", "*recoveryService.registerFailure").Str("user_id", user.ID).Msg("failed to count otp attempt")
		return
	}
	if attempts >= s.maxAttempts {
		log.Warn().Str("func", "*recoveryService.registerFailure").Str("user_id", user.ID).Msg("otp discarded after too many attempts")
	}
}

// SetPassword replaces the password of userID if ticket proves a verified,
// still pending OTP. The OTP is cleared in the same statement, so a ticket
// authorizes exactly one reset.
func (s *recoveryService) SetPassword(ctx context.Context, userID, ticket, password, confirm string) error {
	log := logger.FromContext(ctx)

	if password != confirm {
		return ErrPasswordMismatch
	}
	if password == "" {
		return ErrInvalidDataProvided
	}

	parsed, err := utils.ValidateAndParseResetTicket(ticket, s.ticketSignKey, s.ticketIssuer)
	if err != nil {
		log.Debug().Err(err).Str("func", "*recoveryService.SetPassword").Msg("reset ticket rejected")
		return ErrResetTicketInvalid
	}
	if parsed.UserID() != userID {
		log.Warn().Str("func", "*recoveryService.SetPassword").Str("user_id", userID).Msg("reset ticket issued for another user")
		return ErrResetTicketInvalid
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		log.Err(err).Str("func", "*recoveryService.SetPassword").Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	err = s.userRepository.ResetPasswordWithOTP(ctx, userID, parsed.OTP, passwordHash, s.now())
	if errors.Is(err, store.ErrOTPNotMatched) {
		return ErrOTPInvalid
	}
	if err != nil {
		log.Err(err).Str("func", "*recoveryService.SetPassword").Str("user_id", userID).Msg("password reset failed")
		return fmt.Errorf("password reset failed: %w", err)
	}

	log.Info().Str("func", "*recoveryService.SetPassword").Str("user_id", userID).Msg("password reset with otp")
	return nil
}

func otpMessage(user models.User, otp int, ttl time.Duration) models.MailMessage {
	minutes := int(ttl.Minutes())
	return models.MailMessage{
		To:      user.Email,
		Subject: otpMailSubject,
		Text: fmt.Sprintf("Hello %s,\n\nYour password reset code is %d. It expires in %d minutes.\n\nIf you did not request it, ignore this e-mail.",
			user.Username, otp, minutes),
		HTML: fmt.Sprintf("<p>Hello %s,</p><p>Your password reset code is <b>%d</b>. It expires in %d minutes.</p><p>If you did not request it, ignore this e-mail.</p>",
			html.EscapeString(user.Username), otp, minutes),
	}
}

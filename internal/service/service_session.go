package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/store"
	"github.com/MKhiriev/expense-tracker/models"
	"github.com/google/uuid"
)

type sessionService struct {
	sessions store.SessionStore
	ttl      time.Duration
	now      clock

	logger *logger.Logger
}

func NewSessionService(sessions store.SessionStore, ttl time.Duration, logger *logger.Logger) SessionService {
	return &sessionService{
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Create starts a session for userID. Session ids are random UUIDv4 values.
func (s *sessionService) Create(ctx context.Context, userID string) (models.Session, error) {
	now := s.now()
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.sessions.CreateSession(ctx, session); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionService.Create").Str("user_id", userID).Msg("session creation failed")
		return models.Session{}, fmt.Errorf("session creation failed: %w", err)
	}

	return session, nil
}

// Resolve returns the live session with sessionID or store.ErrSessionNotFound.
func (s *sessionService) Resolve(ctx context.Context, sessionID string) (models.Session, error) {
	if sessionID == "" {
		return models.Session{}, store.ErrSessionNotFound
	}

	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return models.Session{}, err
	}
	if session.Expired(s.now()) {
		return models.Session{}, store.ErrSessionNotFound
	}

	return session, nil
}

func (s *sessionService) Destroy(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("session deletion failed: %w", err)
	}
	return nil
}

func (s *sessionService) DestroyAll(ctx context.Context, userID string) error {
	if err := s.sessions.DeleteUserSessions(ctx, userID); err != nil {
		return fmt.Errorf("user sessions deletion failed: %w", err)
	}
	return nil
}

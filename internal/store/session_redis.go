package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/models"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix      = "session:"
	userSessionsKeyPrefix = "user_sessions:"
)

// redisSessionStore keeps each session as a JSON value under
// "session:<id>" with a TTL equal to its remaining lifetime, plus a
// "user_sessions:<userID>" set used to sign a user out everywhere.
type redisSessionStore struct {
	rdb    redis.UniversalClient
	logger *logger.Logger
	now    func() time.Time
}

// NewRedisSessionStore constructs a [SessionStore] backed by rdb.
func NewRedisSessionStore(rdb redis.UniversalClient, logger *logger.Logger) SessionStore {
	return &redisSessionStore{
		rdb:    rdb,
		logger: logger,
		now:    time.Now,
	}
}

func (s *redisSessionStore) CreateSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("%w: session already expired", ErrSessionEncoding)
	}

	b, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSessionEncoding, err)
	}

	userKey := userSessionsKeyPrefix + session.UserID
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKeyPrefix+session.ID, b, ttl)
		pipe.SAdd(ctx, userKey, session.ID)
		pipe.ExpireGT(ctx, userKey, ttl)
		// ExpireGT never sets a TTL on a key without one.
		pipe.ExpireNX(ctx, userKey, ttl)
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*redisSessionStore.CreateSession").Str("user_id", session.UserID).Msg("error storing session")
		return fmt.Errorf("error storing session: %w", err)
	}

	return nil
}

func (s *redisSessionStore) GetSession(ctx context.Context, sessionID string) (models.Session, error) {
	val, err := s.rdb.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisSessionStore.GetSession").Msg("error reading session")
		return models.Session{}, fmt.Errorf("error reading session: %w", err)
	}

	var session models.Session
	if err = json.Unmarshal(val, &session); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrSessionEncoding, err)
	}

	if session.Expired(s.now()) {
		return models.Session{}, ErrSessionNotFound
	}

	return session, nil
}

func (s *redisSessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	session, err := s.GetSession(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionKeyPrefix+sessionID)
		pipe.SRem(ctx, userSessionsKeyPrefix+session.UserID, sessionID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}

	return nil
}

func (s *redisSessionStore) DeleteUserSessions(ctx context.Context, userID string) error {
	userKey := userSessionsKeyPrefix + userID

	ids, err := s.rdb.SMembers(ctx, userKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("error listing user sessions: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKeyPrefix+id)
	}
	keys = append(keys, userKey)

	if err = s.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisSessionStore.DeleteUserSessions").Str("user_id", userID).Msg("error deleting user sessions")
		return fmt.Errorf("error deleting user sessions: %w", err)
	}

	return nil
}

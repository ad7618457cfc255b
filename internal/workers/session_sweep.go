// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/expense-tracker/internal/logger"
)

// SessionSweeper is implemented by session backends that do not expire
// entries on their own.
type SessionSweeper interface {
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// SessionSweepWorker periodically removes expired sessions from a backend
// without native expiry. A session that is never presented again would
// otherwise stay in memory until the process exits.
type SessionSweepWorker struct {
	sessions SessionSweeper
	interval time.Duration
	now      func() time.Time

	logger *logger.Logger
}

func NewSessionSweepWorker(sessions SessionSweeper, interval time.Duration, logger *logger.Logger) *SessionSweepWorker {
	return &SessionSweepWorker{
		sessions: sessions,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

func (w *SessionSweepWorker) Run(ctx context.Context) {
	w.logger.Info().Dur("interval", w.interval).Msg("session sweep worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("session sweep worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *SessionSweepWorker) sweep(ctx context.Context) {
	deleted, err := w.sessions.DeleteExpiredSessions(ctx, w.now())
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.Err(err).Str("func", "*SessionSweepWorker.sweep").Msg("sweeping expired sessions failed")
		return
	}

	if deleted > 0 {
		w.logger.Debug().Int64("deleted", deleted).Msg("expired sessions swept")
	}
}

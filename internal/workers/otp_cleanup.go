// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/store"
	"github.com/rs/zerolog"
)

// OTPCleaner removes recovery codes whose expiry has passed.
type OTPCleaner interface {
	ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error)
}

// OTPCleanupWorker periodically clears expired recovery codes, so a code
// that was never verified does not stay in the users table. Expired codes
// are already rejected at verification time; the cleanup only keeps the
// stored state tidy.
type OTPCleanupWorker struct {
	users    OTPCleaner
	interval time.Duration
	now      func() time.Time

	// isRetryable decides whether a failed pass is logged as a warning
	// (the next tick will retry) or as an error.
	isRetryable func(error) bool

	logger *logger.Logger
}

func NewOTPCleanupWorker(users OTPCleaner, interval time.Duration, logger *logger.Logger) *OTPCleanupWorker {
	return &OTPCleanupWorker{
		users:       users,
		interval:    interval,
		now:         time.Now,
		isRetryable: store.IsRetryable,
		logger:      logger,
	}
}

func (w *OTPCleanupWorker) Run(ctx context.Context) {
	w.logger.Info().Dur("interval", w.interval).Msg("otp cleanup worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("otp cleanup worker stopped")
			return
		case <-ticker.C:
			w.cleanup(ctx)
		}
	}
}

func (w *OTPCleanupWorker) cleanup(ctx context.Context) {
	cleared, err := w.users.ClearExpiredOTPs(ctx, w.now())
	if err != nil {
		if ctx.Err() != nil {
			return
		}

		level := zerolog.ErrorLevel
		if w.isRetryable(err) {
			level = zerolog.WarnLevel
		}
		w.logger.WithLevel(level).Err(err).Str("func", "*OTPCleanupWorker.cleanup").Msg("clearing expired otps failed")
		return
	}

	if cleared > 0 {
		w.logger.Debug().Int64("cleared", cleared).Msg("expired otps cleared")
	}
}

package workers

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/expense-tracker/internal/config"
	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/mock"
	"github.com/MKhiriev/expense-tracker/internal/store"
	"github.com/MKhiriev/expense-tracker/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeSweeper struct {
	mu      sync.Mutex
	calls   []time.Time
	deleted int64
	err     error
}

func (f *fakeSweeper) DeleteExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, now)
	return f.deleted, f.err
}

func (f *fakeSweeper) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

var sweepNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestSweepWorker(sweeper SessionSweeper, buf *bytes.Buffer) *SessionSweepWorker {
	w := NewSessionSweepWorker(sweeper, 5*time.Millisecond, &logger.Logger{Logger: zerolog.New(buf)})
	w.now = func() time.Time { return sweepNow }
	return w
}

func TestSessionSweepWorker_RunsOnEveryTick(t *testing.T) {
	sweeper := &fakeSweeper{deleted: 3}
	var buf bytes.Buffer
	w := newTestSweepWorker(sweeper, &buf)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return sweeper.callCount() >= 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancellation")
	}

	sweeper.mu.Lock()
	defer sweeper.mu.Unlock()
	assert.Equal(t, sweepNow, sweeper.calls[0])
}

func TestSessionSweepWorker_StopsWithoutTick(t *testing.T) {
	sweeper := &fakeSweeper{}
	w := NewSessionSweepWorker(sweeper, time.Hour, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Run(ctx)

	assert.Zero(t, sweeper.callCount())
}

func TestSessionSweepWorker_LogsFailure(t *testing.T) {
	var buf bytes.Buffer
	w := newTestSweepWorker(&fakeSweeper{err: errTransient}, &buf)

	w.sweep(context.Background())

	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), "sweeping expired sessions failed")
}

func TestSessionSweepWorker_QuietOnCancelledContext(t *testing.T) {
	var buf bytes.Buffer
	w := newTestSweepWorker(&fakeSweeper{err: context.Canceled}, &buf)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.sweep(ctx)

	assert.Empty(t, buf.String())
}

func TestSessionSweepWorker_ClearsAbandonedMemorySessions(t *testing.T) {
	ctx := context.Background()
	sessions := store.NewMemorySessionStore()
	require.NoError(t, sessions.CreateSession(ctx, models.Session{ID: "old", UserID: "u-1", ExpiresAt: sweepNow.Add(-time.Minute)}))
	require.NoError(t, sessions.CreateSession(ctx, models.Session{ID: "new", UserID: "u-1", ExpiresAt: sweepNow.Add(time.Hour)}))

	sweeper, ok := sessions.(SessionSweeper)
	require.True(t, ok)

	var buf bytes.Buffer
	w := newTestSweepWorker(sweeper, &buf)
	w.sweep(ctx)

	assert.Contains(t, buf.String(), `"deleted":1`)
	deleted, err := sweeper.DeleteExpiredSessions(ctx, sweepNow)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestNewWorkers_SessionSweepOnlyForMemoryStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := config.Workers{OTPCleanupInterval: time.Minute, SessionSweepInterval: 10 * time.Minute}

	t.Run("memory store is swept", func(t *testing.T) {
		storages := &store.Storages{
			UserRepository: mock.NewMockUserRepository(ctrl),
			SessionStore:   store.NewMemorySessionStore(),
		}

		ws := NewWorkers(storages, cfg, logger.Nop())

		require.Len(t, ws.workers, 2)
		assert.IsType(t, &OTPCleanupWorker{}, ws.workers[0])
		sweep, ok := ws.workers[1].(*SessionSweepWorker)
		require.True(t, ok)
		assert.Equal(t, 10*time.Minute, sweep.interval)
	})

	t.Run("self-expiring store is not swept", func(t *testing.T) {
		storages := &store.Storages{
			UserRepository: mock.NewMockUserRepository(ctrl),
			SessionStore:   mock.NewMockSessionStore(ctrl),
		}

		ws := NewWorkers(storages, cfg, logger.Nop())

		require.Len(t, ws.workers, 1)
		assert.IsType(t, &OTPCleanupWorker{}, ws.workers[0])
	})
}

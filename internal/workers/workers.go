package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/expense-tracker/internal/config"
	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the background workers of the server. The session sweep
// only runs when the session backend needs it; Redis expires keys itself.
func NewWorkers(storages *store.Storages, cfg config.Workers, logger *logger.Logger) *Workers {
	workers := []Worker{
		NewOTPCleanupWorker(storages.UserRepository, cfg.OTPCleanupInterval, logger),
	}
	if sweeper, ok := storages.SessionStore.(SessionSweeper); ok {
		workers = append(workers, NewSessionSweepWorker(sweeper, cfg.SessionSweepInterval, logger))
	}

	return &Workers{workers: workers}
}

// Run starts every worker in its own goroutine and blocks until all of them
// have returned.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func(worker Worker) {
			defer wg.Done()
			worker.Run(ctx)
		}(worker)
	}
	wg.Wait()
}

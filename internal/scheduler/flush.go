package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/favtube/internal/logger"
)

type flusher interface {
	Flush(ctx context.Context) bool
}

// Flusher retries saves that failed when a mutation happened
type Flusher struct {
	service  flusher
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewFlusher creates a new flusher
func NewFlusher(service flusher, log logger.Logger, interval time.Duration) *Flusher {
	return &Flusher{
		service:  service,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic flush process
func (f *Flusher) Start(ctx context.Context) error {
	ticker := time.NewTicker(f.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if !f.service.Flush(ctx) {
					f.logger.Debug("favorites still not persisted, will retry",
						logger.Duration("interval", f.interval))
				}
			case <-f.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the periodic flush and makes a last attempt with ctx
func (f *Flusher) Stop(ctx context.Context) bool {
	close(f.stopCh)
	return f.service.Flush(ctx)
}

package scheduler

import (
	"context"

	"github.com/MrSnakeDoc/favtube/internal/logger"
)

type loader interface {
	Load(ctx context.Context) error
}

// StoreSyncer restores the persisted favorites into the service on startup
type StoreSyncer struct {
	service loader
	store   string
	logger  logger.Logger
}

// NewStoreSyncer creates a new store syncer
func NewStoreSyncer(service loader, store string, log logger.Logger) *StoreSyncer {
	return &StoreSyncer{
		service: service,
		store:   store,
		logger:  log,
	}
}

// Sync loads the persisted collection. On failure the service keeps an
// empty collection and the error is returned for the caller to log.
func (ss *StoreSyncer) Sync(ctx context.Context) error {
	ss.logger.Info("syncing favorites from store",
		logger.String("store", ss.store))

	return ss.service.Load(ctx)
}

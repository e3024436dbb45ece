package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/favtube/internal/domain"
	"github.com/MrSnakeDoc/favtube/internal/favorites"
	"github.com/MrSnakeDoc/favtube/internal/logger"
	"github.com/MrSnakeDoc/favtube/internal/sources/importfile"
)

type adder interface {
	Add(ctx context.Context, rawInput string) (domain.Favorite, favorites.Result, error)
}

// ImportReport counts the outcome of one import pass
type ImportReport struct {
	Added     int
	Duplicate int
	Invalid   int
	// Skipped counts inputs already imported by an earlier pass, so a
	// favorite removed by the user is not brought back on the next tick.
	Skipped int
}

// ImportReloader periodically adds the favorites listed in the import file
type ImportReloader struct {
	loader        *importfile.Loader
	service       adder
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}

	mu       sync.Mutex
	imported map[domain.VideoID]struct{}
}

// NewImportReloader creates a new import reloader
func NewImportReloader(
	importFile string,
	service adder,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *ImportReloader {
	return &ImportReloader{
		loader:        importfile.NewLoader(importFile),
		service:       service,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
		imported:      make(map[domain.VideoID]struct{}),
	}
}

// Start runs a first import and then begins the periodic reload process.
// A failed first import is logged, the file may appear later.
func (ir *ImportReloader) Start(ctx context.Context) error {
	if _, err := ir.Reload(ctx); err != nil {
		ir.logger.Warn("initial import failed",
			logger.String("file", ir.loader.Path()),
			logger.Error(err))
	}

	ticker := time.NewTicker(ir.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := ir.Reload(ctx); err != nil {
					ir.logger.Error("failed to import favorites",
						logger.Error(err))
				}
			case <-ir.manualTrigger:
				ir.logger.Info("manual import triggered")
				if _, err := ir.Reload(ctx); err != nil {
					ir.logger.Error("failed to import favorites",
						logger.Error(err))
				}
			case <-ir.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (ir *ImportReloader) Stop() {
	close(ir.stopCh)
}

// Reload reads the import file and adds every new input to the service.
// Invalid and duplicate inputs are counted, not fatal.
func (ir *ImportReloader) Reload(ctx context.Context) (ImportReport, error) {
	ir.mu.Lock()
	defer ir.mu.Unlock()

	var report ImportReport

	config, err := ir.loader.Load()
	if err != nil {
		return report, fmt.Errorf("failed to load import file: %w", err)
	}

	inputs, err := importfile.Inputs(config)
	if err != nil {
		return report, fmt.Errorf("failed to map import file: %w", err)
	}

	for _, in := range inputs {
		id, ok := domain.ResolveVideoID(in.Raw)
		if !ok {
			report.Invalid++
			ir.logger.Warn("skipping invalid import entry",
				logger.String("group", in.Group),
				logger.String("input", in.Raw))
			continue
		}
		if _, done := ir.imported[id]; done {
			report.Skipped++
			continue
		}

		_, _, err := ir.service.Add(ctx, in.Raw)
		switch {
		case err == nil:
			report.Added++
		case errors.Is(err, domain.ErrDuplicateEntry):
			report.Duplicate++
		default:
			return report, fmt.Errorf("failed to import %q: %w", in.Raw, err)
		}
		ir.imported[id] = struct{}{}
	}

	ir.logger.Info("imported favorites",
		logger.Int("added", report.Added),
		logger.Int("duplicate", report.Duplicate),
		logger.Int("invalid", report.Invalid),
		logger.Int("skipped", report.Skipped))

	return report, nil
}

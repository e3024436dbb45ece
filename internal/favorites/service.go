package favorites

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/favtube/internal/domain"
	"github.com/MrSnakeDoc/favtube/internal/logger"
)

// ErrBlobNotFound is returned by a Persister when nothing was saved yet.
var ErrBlobNotFound = errors.New("favorites blob not found")

// Persister loads and saves the serialized collection as one blob.
type Persister interface {
	// Load returns the stored blob, or ErrBlobNotFound when absent.
	Load(ctx context.Context) ([]byte, error)
	// Save replaces the stored blob.
	Save(ctx context.Context, blob []byte) error
	// Name identifies the backend in logs and status output.
	Name() string
}

// Result describes the outcome of a mutation.
type Result struct {
	Collection domain.Collection
	// Persisted is false when the save failed. The mutation still stands
	// and the flusher retries the save later.
	Persisted bool
}

// Service owns the current collection and persists every change.
// Mutations are serialized; reads see the latest collection.
type Service struct {
	mu         sync.RWMutex
	collection domain.Collection
	persister  Persister
	logger     logger.Logger
	now        func() time.Time

	dirty     bool
	lastSave  time.Time
	lastError error
}

// NewService creates a service with an empty collection.
// Call Load to restore the persisted state.
func NewService(p Persister, log logger.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		persister: p,
		logger:    log,
		now:       now,
	}
}

// Load replaces the current collection with the persisted one.
// A missing or undecodable blob leaves the service with an empty
// collection; the returned error is informational only.
func (s *Service) Load(ctx context.Context) error {
	blob, err := s.persister.Load(ctx)
	if err != nil {
		s.replace(domain.Collection{})
		if errors.Is(err, ErrBlobNotFound) {
			s.logger.Info("no saved favorites, starting empty",
				logger.String("store", s.persister.Name()))
			return nil
		}
		return fmt.Errorf("failed to load favorites: %w", err)
	}

	c, err := domain.DecodeCollection(blob)
	if err != nil {
		s.replace(domain.Collection{})
		return err
	}

	s.replace(c)
	s.logger.Info("loaded favorites",
		logger.String("store", s.persister.Name()),
		logger.Int("count", c.Len()))
	return nil
}

func (s *Service) replace(c domain.Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection = c
}

// Collection returns the current collection.
func (s *Service) Collection() domain.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collection
}

// Add resolves rawInput and saves the new favorite.
// It returns domain.ErrInvalidInput or domain.ErrDuplicateEntry unchanged.
func (s *Service) Add(ctx context.Context, rawInput string) (domain.Favorite, Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, fav, err := s.collection.Add(rawInput, s.now())
	if err != nil {
		return domain.Favorite{}, Result{Collection: s.collection, Persisted: !s.dirty}, err
	}

	s.logger.Info("favorite added",
		logger.String("id", string(fav.ID)),
		logger.Bool("is_short", fav.IsShort))

	return fav, s.commitLocked(ctx, next), nil
}

// Remove drops id and saves. Unknown ids are a no-op and are not saved.
func (s *Service) Remove(ctx context.Context, id domain.VideoID) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.collection.Contains(id) {
		s.logger.Debug("remove of unknown favorite ignored",
			logger.String("id", string(id)))
		return Result{Collection: s.collection, Persisted: !s.dirty}
	}

	s.logger.Info("favorite removed", logger.String("id", string(id)))
	return s.commitLocked(ctx, s.collection.Remove(id))
}

// Clear removes every favorite and saves.
func (s *Service) Clear(ctx context.Context) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("favorites cleared", logger.Int("count", s.collection.Len()))
	return s.commitLocked(ctx, domain.Clear())
}

// commitLocked installs next and saves it. Must hold s.mu.
func (s *Service) commitLocked(ctx context.Context, next domain.Collection) Result {
	s.collection = next
	persisted := s.saveLocked(ctx)
	return Result{Collection: next, Persisted: persisted}
}

// saveLocked writes the current collection. Failures are logged and mark
// the service dirty. Must hold s.mu.
func (s *Service) saveLocked(ctx context.Context) bool {
	blob, err := domain.EncodeCollection(s.collection)
	if err == nil {
		err = s.persister.Save(ctx, blob)
	}
	if err != nil {
		s.dirty = true
		s.lastError = err
		s.logger.Warn("failed to save favorites",
			logger.String("store", s.persister.Name()),
			logger.Error(err))
		return false
	}

	s.dirty = false
	s.lastError = nil
	s.lastSave = s.now()
	return true
}

// Flush saves the current collection if a previous save failed.
// It reports whether the collection is now persisted.
func (s *Service) Flush(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return true
	}
	if !s.saveLocked(ctx) {
		return false
	}
	s.logger.Info("favorites saved after earlier failure",
		logger.String("store", s.persister.Name()))
	return true
}

// Status is a snapshot of the persistence state.
type Status struct {
	Store     string
	Count     int
	Dirty     bool
	LastSave  time.Time
	LastError error
}

// Status returns the current persistence state.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		Store:     s.persister.Name(),
		Count:     s.collection.Len(),
		Dirty:     s.dirty,
		LastSave:  s.lastSave,
		LastError: s.lastError,
	}
}

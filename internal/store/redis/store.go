package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/favtube/internal/favorites"
)

// Store persists the favorites blob in Redis under a single key.
// Entries never expire.
type Store struct {
	client     redis.UniversalClient
	storageKey string
	now        func() time.Time
}

// NewStore creates a new Redis store. storageKey namespaces the blob so
// several collections can share one database.
func NewStore(client redis.UniversalClient, storageKey string) *Store {
	return &Store{
		client:     client,
		storageKey: storageKey,
		now:        time.Now,
	}
}

// Name implements favorites.Persister
func (s *Store) Name() string { return "redis" }

// Load returns the stored blob or favorites.ErrBlobNotFound
func (s *Store) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, BlobKey(s.storageKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, favorites.ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}
	return data, nil
}

// Save writes the blob and its save time in one transaction
func (s *Store) Save(ctx context.Context, blob []byte) error {
	stamp := strconv.FormatInt(s.now().UnixMilli(), 10)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, BlobKey(s.storageKey), blob, 0)
		pipe.Set(ctx, UpdatedAtKey(s.storageKey), stamp, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}

// UpdatedAt returns the time of the last successful save, zero if none
func (s *Store) UpdatedAt(ctx context.Context) (time.Time, error) {
	v, err := s.client.Get(ctx, UpdatedAtKey(s.storageKey)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to get favorites save time: %w", err)
	}
	return time.UnixMilli(v), nil
}

// Ping checks the connection, used by the infra endpoint
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

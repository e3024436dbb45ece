package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/MrSnakeDoc/favtube/internal/favorites"
	"github.com/MrSnakeDoc/favtube/internal/utils"
)

// FilePerm is the mode of the data file.
const FilePerm = 0o600

// Store persists the favorites blob in a single file.
// Saves write a temp file next to the target and rename it over, so a
// crash never leaves a half-written blob behind.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a file store. The parent directory is created on the
// first save.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Name implements favorites.Persister
func (s *Store) Name() string { return "file" }

// Path returns the data file location.
func (s *Store) Path() string { return s.path }

// Load reads the data file or returns favorites.ErrBlobNotFound.
func (s *Store) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, favorites.ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to read favorites file: %w", err)
	}
	return data, nil
}

// Save atomically replaces the data file with blob.
func (s *Store) Save(ctx context.Context, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create favorites dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			utils.Close(tmp)
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(blob); err != nil {
		return fmt.Errorf("failed to write favorites: %w", err)
	}
	if err := tmp.Chmod(FilePerm); err != nil {
		return fmt.Errorf("failed to chmod favorites: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync favorites: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close favorites: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace favorites file: %w", err)
	}

	committed = true
	return nil
}

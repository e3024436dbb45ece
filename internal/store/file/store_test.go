package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/MrSnakeDoc/favtube/internal/favorites"
)

func TestStoreLoadMissing(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "favorites.json"))

	_, err := s.Load(context.Background())
	if !errors.Is(err, favorites.ErrBlobNotFound) {
		t.Errorf("Load() error = %v, want ErrBlobNotFound", err)
	}
}

func TestStoreSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "favorites.json")
	s := NewStore(path)
	ctx := context.Background()

	for _, blob := range []string{`[{"id":"aaaaaaaaaaa"}]`, `[]`} {
		if err := s.Save(ctx, []byte(blob)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := s.Load(ctx)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if string(got) != blob {
			t.Errorf("Load() = %s, want %s", got, blob)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != FilePerm {
		t.Errorf("file mode = %o, want %o", perm, FilePerm)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("dir holds %d entries, want only the data file (temp files left behind?)", len(entries))
	}
}

func TestStoreCanceledContext(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "favorites.json"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Save(ctx, []byte("[]")); !errors.Is(err, context.Canceled) {
		t.Errorf("Save() error = %v, want context.Canceled", err)
	}
	if _, err := s.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestStoreSaveIntoFileAsDirFails(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := NewStore(filepath.Join(blocker, "favorites.json"))
	if err := s.Save(context.Background(), []byte("[]")); err == nil {
		t.Error("Save() error = nil, want error when parent is a file")
	}
}

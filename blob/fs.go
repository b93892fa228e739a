package blob

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FSStore is a filesystem-backed core.BlobStore storing each blob as one file
// under a dedicated directory. Keys are reduced to their base name so a key
// can never escape the directory.
type FSStore struct {
	dir string
}

// NewFSStore constructs a blob store rooted at dir, creating it if needed.
func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &FSStore{dir: dir}, nil
}

// Put stores (or overwrites) the blob bytes for the given key.
func (s *FSStore) Put(key string, data []byte) error {
	if err := os.WriteFile(s.pathFor(key), data, 0o644); err != nil {
		return fmt.Errorf("write blob %s: %w", key, err)
	}
	return nil
}

// Get returns the stored blob bytes or ErrNotFound.
func (s *FSStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.pathFor(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", key, err)
	}
	return data, nil
}

// Delete removes the blob if present or returns ErrNotFound.
func (s *FSStore) Delete(key string) error {
	err := os.Remove(s.pathFor(key))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete blob %s: %w", key, err)
	}
	return nil
}

// ClearAll removes every blob file under the store directory.
func (s *FSStore) ClearAll() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("list blob dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			return fmt.Errorf("clear blob %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func (s *FSStore) pathFor(key string) string {
	return filepath.Join(s.dir, filepath.Base(key))
}

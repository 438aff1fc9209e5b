package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"git.home.luguber.info/inful/docsite/internal/manifest"
)

// FileStore keeps the artifact as a single JSON document.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

// NewFileStore creates a JSON store at path. Nothing is written until Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the artifact location.
func (fs *FileStore) Path() string { return fs.path }

// Save writes m to a temporary file next to the artifact and renames it into
// place, so readers never observe a partial file.
func (fs *FileStore) Save(ctx context.Context, m *manifest.Manifest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".manifest-*.json")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := manifest.Encode(tmp, m); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), fs.path); err != nil {
		return fmt.Errorf("replace artifact: %w", err)
	}
	return nil
}

// Load reads the artifact.
func (fs *FileStore) Load(ctx context.Context) (*manifest.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	// #nosec G304 - path comes from configuration
	f, err := os.Open(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound{Location: fs.path}
		}
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer func() { _ = f.Close() }()

	return manifest.Decode(f)
}

// Close releases resources.
func (fs *FileStore) Close() error {
	return nil
}

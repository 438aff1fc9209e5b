// Package storage persists manifest artifacts between the build phase and the
// serve phase.
package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/manifest"
)

// Store saves and loads one manifest artifact.
type Store interface {
	// Save replaces the stored artifact with m.
	Save(ctx context.Context, m *manifest.Manifest) error

	// Load restores the stored artifact verbatim.
	// Returns ErrNotFound if nothing has been saved yet.
	Load(ctx context.Context) (*manifest.Manifest, error)

	// Close releases any resources held by the store.
	Close() error
}

// ErrNotFound is returned when no artifact has been stored.
type ErrNotFound struct {
	Location string
}

func (e ErrNotFound) Error() string {
	return "manifest artifact not found: " + e.Location
}

// IsNotFound returns true if err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	var nf ErrNotFound
	return errors.As(err, &nf)
}

// IsSQLitePath reports whether path selects the SQLite store.
func IsSQLitePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// Open returns the store for path: SQLite for .db/.sqlite/.sqlite3 files,
// JSON otherwise.
func Open(path string) (Store, error) {
	if IsSQLitePath(path) {
		return NewSQLiteStore(path)
	}
	return NewFileStore(path), nil
}

// OpenExisting is Open for readers: a missing artifact yields ErrNotFound
// and nothing is created at path.
func OpenExisting(path string) (Store, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound{Location: path}
	}
	return Open(path)
}

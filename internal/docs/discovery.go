// Package docs discovers content documents below a content root.
package docs

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	derrors "git.home.luguber.info/inful/docsite/internal/docs/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/slug"
	"golang.org/x/text/unicode/norm"
)

// DocFile represents a discovered content document.
type DocFile struct {
	Path         string // Absolute (or root-joined) path on disk
	RelativePath string // Forward-slash path relative to the content root, NFC normalized
	Name         string // File name without extension
	Extension    string // Extension as found on disk, e.g. ".mdx"
	Content      []byte // File content (loaded on demand)
}

// Discovery enumerates content documents below a single content root.
type Discovery struct {
	root   string
	logger *slog.Logger
}

// NewDiscovery creates a discovery for root. A nil logger selects slog.Default().
func NewDiscovery(root string, logger *slog.Logger) *Discovery {
	if logger == nil {
		logger = slog.Default()
	}
	return &Discovery{root: root, logger: logger}
}

// DiscoverDocs walks the content root and returns every document with a
// recognized extension, in lexical walk order.
//
// A content root that does not exist yields no documents and no error: a site
// without content is valid. Hidden files and hidden directories are skipped.
func (d *Discovery) DiscoverDocs(ctx context.Context) ([]DocFile, error) {
	info, err := os.Stat(d.root)
	if os.IsNotExist(err) {
		d.logger.Warn("Content root not found; continuing with no documents", logfields.Root(d.root))
		return []DocFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrDocsDirWalkFailed, d.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", derrors.ErrContentRootNotDir, d.root)
	}

	files := make([]DocFile, 0)
	err = filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		name := entry.Name()
		if path != d.root && strings.HasPrefix(name, ".") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !slug.IsContentFile(name) {
			return nil
		}

		rel, err := filepath.Rel(d.root, path)
		if err != nil {
			return fmt.Errorf("%w: %w", derrors.ErrInvalidRelativePath, err)
		}
		rel = norm.NFC.String(filepath.ToSlash(rel))

		ext := filepath.Ext(name)
		files = append(files, DocFile{
			Path:         path,
			RelativePath: rel,
			Name:         strings.TrimSuffix(name, ext),
			Extension:    ext,
		})

		d.logger.Debug("Discovered document", logfields.File(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrDocsDirWalkFailed, d.root, err)
	}

	d.logger.Info("Content discovery complete", logfields.Root(d.root), logfields.Count(len(files)))
	return files, nil
}

// LoadContent loads the content of a document.
func (df *DocFile) LoadContent() error {
	if df.Content != nil {
		return nil // Already loaded
	}

	// #nosec G304 -- path comes from walking the configured content root.
	content, err := os.ReadFile(df.Path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", derrors.ErrFileReadFailed, df.Path, err)
	}

	df.Content = content
	return nil
}

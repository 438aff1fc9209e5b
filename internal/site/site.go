// Package site is the read-side facade that the rendering layer talks to. It
// wraps an immutable manifest with the resolver, tree and navigation builders
// and decides what a request path renders as.
package site

import (
	"strings"
	"sync"

	"git.home.luguber.info/inful/docsite/internal/dirtree"
	"git.home.luguber.info/inful/docsite/internal/manifest"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/nav"
	"git.home.luguber.info/inful/docsite/internal/resolve"
	"git.home.luguber.info/inful/docsite/internal/slug"
)

// Site answers document, tree and navigation queries over one manifest.
// It is safe for concurrent use.
type Site struct {
	manifest *manifest.Manifest
	basePath string
	root     nav.Crumb
	recorder metrics.Recorder

	navOnce sync.Once
	navTree []*nav.Node
}

// Option configures a Site.
type Option func(*Site)

// WithBasePath sets the URL namespace for generated links (default "/docs").
func WithBasePath(p string) Option {
	return func(s *Site) { s.basePath = strings.TrimSuffix(p, "/") }
}

// WithBreadcrumbRoot sets the first breadcrumb entry. An empty Href falls
// back to the base path.
func WithBreadcrumbRoot(root nav.Crumb) Option {
	return func(s *Site) { s.root = root }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Site) { s.recorder = r }
}

// New wraps m. A nil manifest is treated as empty.
func New(m *manifest.Manifest, opts ...Option) *Site {
	if m == nil {
		m = manifest.Empty()
	}
	s := &Site{
		manifest: m,
		basePath: nav.DefaultBasePath,
		root:     nav.Crumb{Label: nav.DefaultRootLabel},
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.root.Href == "" {
		s.root.Href = s.basePath
		if s.root.Href == "" {
			s.root.Href = "/"
		}
	}
	if s.root.Label == "" {
		s.root.Label = nav.DefaultRootLabel
	}
	return s
}

// Manifest returns the wrapped manifest.
func (s *Site) Manifest() *manifest.Manifest { return s.manifest }

// BasePath returns the URL namespace for generated links.
func (s *Site) BasePath() string { return s.basePath }

// Document resolves a request slug.
func (s *Site) Document(requestSlug string) (*manifest.Document, bool) {
	doc, ok := resolve.Resolve(s.manifest, requestSlug)
	if ok {
		s.recorder.IncResolve(metrics.ResultHit)
	} else {
		s.recorder.IncResolve(metrics.ResultMiss)
	}
	return doc, ok
}

// HasIndex reports whether the directory at requestSlug has an index document.
func (s *Site) HasIndex(requestSlug string) bool {
	return resolve.HasIndex(s.manifest, requestSlug)
}

// ListDirectory returns the slugs of documents directly inside requestSlug.
func (s *Site) ListDirectory(requestSlug string) []string {
	return resolve.ListDirectory(s.manifest, requestSlug)
}

// Tree returns the directory tree below baseSlug.
func (s *Site) Tree(baseSlug string) dirtree.Tree {
	return dirtree.Build(s.manifest, baseSlug)
}

// NavTree returns the navigation forest. It is computed on first use and
// shared afterwards; callers must not modify it.
func (s *Site) NavTree() []*nav.Node {
	s.navOnce.Do(func() {
		s.navTree = nav.BuildNavTree(s.manifest.Paths(), s.basePath)
	})
	return s.navTree
}

// Breadcrumbs returns the trail for the given path segments.
func (s *Site) Breadcrumbs(segments []string) []nav.Crumb {
	return nav.BuildBreadcrumbs(segments, s.root)
}

// BreadcrumbsFor returns the trail for a slash-separated request slug.
func (s *Site) BreadcrumbsFor(requestSlug string) []nav.Crumb {
	return s.Breadcrumbs(slug.Segments(strings.Trim(requestSlug, "/")))
}

// Href returns the link for a slug.
func (s *Site) Href(sl string) string {
	if sl == "" {
		return s.basePath + "/"
	}
	return s.basePath + "/" + sl
}

package commands

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/docsite/internal/config"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/manifest"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/nav"
	"git.home.luguber.info/inful/docsite/internal/site"
	"git.home.luguber.info/inful/docsite/internal/storage"
)

// ManifestSource selects where query commands get their manifest from.
type ManifestSource struct {
	Content  string `short:"r" help:"Build the manifest from this content root instead of loading the artifact" type:"path"`
	Manifest string `short:"m" help:"Manifest artifact path (overrides manifest.output)" type:"path"`
}

// load returns the manifest: built in-process when a content root is given,
// read from the artifact otherwise.
func (s ManifestSource) load(ctx context.Context, cfg *config.Config, rec metrics.Recorder) (*manifest.Manifest, error) {
	if s.Content != "" {
		return newBuilder(cfg, rec).Build(ctx, s.Content)
	}
	path := cfg.Manifest.Output
	if s.Manifest != "" {
		path = s.Manifest
	}
	return loadArtifact(ctx, path)
}

func loadArtifact(ctx context.Context, path string) (*manifest.Manifest, error) {
	store, err := storage.OpenExisting(path)
	if storage.IsNotFound(err) {
		return nil, ferrors.WrapError(err, ferrors.CategoryManifest, "manifest artifact not found (run docsite build first)").
			WithContext("path", path).
			UserAction().
			Build()
	}
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryManifest, "failed to open manifest store").
			WithContext("path", path).
			Build()
	}
	defer func() { _ = store.Close() }()

	m, err := store.Load(ctx)
	if storage.IsNotFound(err) {
		return nil, ferrors.WrapError(err, ferrors.CategoryManifest, "manifest artifact is empty (run docsite build first)").
			WithContext("path", path).
			UserAction().
			Build()
	}
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryManifest, "failed to load manifest artifact").
			WithContext("path", path).
			Build()
	}
	slog.Debug("Manifest loaded", logfields.Path(path), logfields.Count(m.Len()))
	return m, nil
}

func newBuilder(cfg *config.Config, rec metrics.Recorder) *manifest.Builder {
	return manifest.NewBuilder(
		manifest.WithCollisionPolicy(manifest.CollisionPolicy(cfg.Manifest.OnCollision)),
		manifest.WithRecorder(rec),
		manifest.WithLogger(slog.Default()),
	)
}

func newSite(cfg *config.Config, m *manifest.Manifest, rec metrics.Recorder) *site.Site {
	return site.New(m,
		site.WithBasePath(cfg.Site.BasePath),
		site.WithBreadcrumbRoot(nav.Crumb{Href: cfg.Site.BreadcrumbRoot.Href, Label: cfg.Site.BreadcrumbRoot.Label}),
		site.WithRecorder(rec),
	)
}

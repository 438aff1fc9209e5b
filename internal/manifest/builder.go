package manifest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsite/internal/docs"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/slug"
)

// CollisionPolicy decides what happens when two documents claim one alias key.
type CollisionPolicy string

const (
	// CollisionWarn keeps last-discovered-wins and logs a warning per collision.
	CollisionWarn CollisionPolicy = "warn"
	// CollisionError fails the build on the first collision.
	CollisionError CollisionPolicy = "error"
)

// Builder scans a content root and produces a Manifest.
type Builder struct {
	policy   CollisionPolicy
	recorder metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// Option configures a Builder.
type Option func(*Builder)

// WithCollisionPolicy sets the alias collision policy (default CollisionWarn).
func WithCollisionPolicy(p CollisionPolicy) Option {
	return func(b *Builder) { b.policy = p }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) { b.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// WithClock overrides the build timestamp source.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		policy:   CollisionWarn,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build discovers every content document below root and registers its alias
// keys. A missing root produces an empty manifest.
func (b *Builder) Build(ctx context.Context, root string) (*Manifest, error) {
	start := time.Now()
	m, err := b.build(ctx, root)
	b.recorder.ObserveBuildDuration(time.Since(start))
	if err != nil {
		b.recorder.IncBuildOutcome(metrics.ResultFailed)
		return nil, err
	}
	b.recorder.IncBuildOutcome(metrics.ResultSuccess)
	b.recorder.SetManifestSize(m.Len(), m.AliasCount())

	b.logger.Info("Manifest built",
		logfields.ManifestID(m.ID),
		logfields.Root(root),
		logfields.Count(m.Len()),
		slog.Int("alias_keys", m.AliasCount()),
		slog.Int("collisions", len(m.Collisions)),
		logfields.Duration(time.Since(start)))
	return m, nil
}

// FromPaths registers bare documents for rawPaths in the given order without
// reading the filesystem. Titles fall back to the final slug segment.
func (b *Builder) FromPaths(rawPaths []string) (*Manifest, error) {
	m := Empty()
	m.ID = b.newID()
	m.GeneratedAt = b.now().UTC()
	for _, p := range rawPaths {
		s := slug.Normalize(p)
		doc := &Document{RawPath: strings.TrimPrefix(p, "./"), Slug: s}
		if s != "" {
			doc.Title = path.Base(s)
		}
		if err := b.register(m, doc); err != nil {
			return nil, err
		}
	}
	m.Hash = computeHash(m)
	return m, nil
}

func (b *Builder) build(ctx context.Context, root string) (*Manifest, error) {
	stageStart := time.Now()
	files, err := docs.NewDiscovery(root, b.logger).DiscoverDocs(ctx)
	b.stageDone("discover", stageStart, len(files))
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "content discovery failed").
			WithContext("root", root).
			Build()
	}

	stageStart = time.Now()
	m := Empty()
	m.ID = b.newID()
	m.GeneratedAt = b.now().UTC()
	m.Root = root

	for i := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := files[i].LoadContent(); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read document").
				WithContext("file", files[i].RelativePath).
				Build()
		}
		if err := b.register(m, describe(&files[i], b.logger)); err != nil {
			return nil, err
		}
		files[i].Content = nil
	}
	m.Hash = computeHash(m)
	b.stageDone("index", stageStart, m.AliasCount())
	return m, nil
}

func (b *Builder) stageDone(stage string, start time.Time, n int) {
	d := time.Since(start)
	b.recorder.ObserveStageDuration(stage, d)
	b.logger.Debug("Build stage finished", logfields.Stage(stage), logfields.Count(n), logfields.Duration(d))
}

func (b *Builder) register(m *Manifest, doc *Document) error {
	if !m.add(doc) {
		return nil
	}
	if hasInnerIndexSegment(doc.Slug) {
		b.logger.Warn("Document below a directory named index is resolvable but left out of generated trees",
			logfields.File(doc.RawPath))
	}

	for _, key := range slug.AliasKeys(doc.RawPath) {
		c, collided := m.bind(key, doc)
		if !collided {
			continue
		}
		b.recorder.IncAliasCollision()
		if b.policy == CollisionError {
			return ferrors.WrapError(fmt.Errorf("%w: %q", ErrAliasCollision, key), ferrors.CategoryManifest, "alias collision").
				WithContext("key", c.Key).
				WithContext("previous", c.Previous).
				WithContext("winner", c.Winner).
				Build()
		}
		m.Collisions = append(m.Collisions, c)
		b.logger.Warn("Alias key claimed by more than one document; later document wins",
			logfields.AliasKey(c.Key),
			slog.String("previous", c.Previous),
			slog.String("winner", c.Winner))
	}
	return nil
}

// hasInnerIndexSegment reports whether any segment of a canonical slug is
// named index, which only happens for directories called index.
func hasInnerIndexSegment(s string) bool {
	return slices.ContainsFunc(slug.Segments(s), slug.IsIndexSegment)
}

// computeHash returns a deterministic digest over paths and fingerprints in
// discovery order.
func computeHash(m *Manifest) string {
	h := sha256.New()
	for _, p := range m.paths {
		_, _ = fmt.Fprintf(h, "%s|%s\n", p, m.docs[p].Fingerprint)
	}
	return hex.EncodeToString(h.Sum(nil))
}

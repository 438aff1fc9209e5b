package site

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/dirtree"
	"git.home.luguber.info/inful/docsite/internal/manifest"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/nav"
)

func newManifest(t *testing.T, paths ...string) *manifest.Manifest {
	t.Helper()
	b := manifest.NewBuilder(manifest.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	m, err := b.FromPaths(paths)
	require.NoError(t, err)
	return m
}

type pageRecorder struct {
	metrics.NoopRecorder
	mu      sync.Mutex
	views   map[string]int
	resolve map[metrics.ResultLabel]int
}

func newPageRecorder() *pageRecorder {
	return &pageRecorder{views: map[string]int{}, resolve: map[metrics.ResultLabel]int{}}
}

func (r *pageRecorder) IncPageView(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[kind]++
}

func (r *pageRecorder) IncResolve(res metrics.ResultLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolve[res]++
}

func TestPage(t *testing.T) {
	m := newManifest(t, "docs/index.md", "docs/setup.md", "docs/guides/start.mdx", "blog/post.md")
	rec := newPageRecorder()
	s := New(m, WithRecorder(rec))

	root := s.Page("")
	assert.Equal(t, PageListing, root.Kind)
	assert.Equal(t, RootListingTitle, root.Title)
	assert.Empty(t, root.Entries)
	assert.Equal(t, []string{"blog", "docs"}, root.Tree.Names())
	assert.Equal(t, []nav.Crumb{{Href: "/docs", Label: "Articles"}}, root.Breadcrumbs)

	docs := s.Page("docs")
	assert.Equal(t, PageDocument, docs.Kind)
	require.NotNil(t, docs.Document)
	assert.Equal(t, "docs/index.md", docs.Document.RawPath)
	assert.Equal(t, "docs", docs.Title)

	setup := s.Page("/docs/setup/")
	assert.Equal(t, PageDocument, setup.Kind)
	assert.Equal(t, "docs/setup", setup.Slug)
	assert.Equal(t, "docs/setup.md", setup.Document.RawPath)
	assert.Equal(t, []nav.Crumb{
		{Href: "/docs", Label: "Articles"},
		{Href: "/docs/docs", Label: "docs"},
		{Href: "/docs/docs/setup", Label: "setup"},
	}, setup.Breadcrumbs)

	guides := s.Page("docs/guides")
	assert.Equal(t, PageListing, guides.Kind)
	assert.Equal(t, "guides", guides.Title)
	assert.Equal(t, []Entry{{Slug: "docs/guides/start", Title: "start", Href: "/docs/docs/guides/start"}}, guides.Entries)
	assert.Equal(t, dirtree.Tree{"start": nil}, guides.Tree)

	missing := s.Page("nope")
	assert.Equal(t, PageNotFound, missing.Kind)
	assert.Nil(t, missing.Document)
	assert.Len(t, missing.Breadcrumbs, 2)

	assert.Equal(t, map[string]int{"listing": 2, "document": 2, "not_found": 1}, rec.views)
	assert.Equal(t, 2, rec.resolve[metrics.ResultHit])
	assert.Equal(t, 3, rec.resolve[metrics.ResultMiss])
}

func TestPage_IndexCollisionFollowsDocument(t *testing.T) {
	m := newManifest(t, "a/index.md", "a.md", "a/b.md")
	require.Len(t, m.Collisions, 1)
	assert.Equal(t, "a.md", m.Collisions[0].Winner)

	s := New(m)
	require.True(t, s.HasIndex("a"))

	doc, ok := s.Document("a")
	require.True(t, ok)
	assert.Equal(t, "a.md", doc.RawPath)

	p := s.Page("a")
	assert.Equal(t, PageDocument, p.Kind)
	require.NotNil(t, p.Document)
	assert.Equal(t, doc.RawPath, p.Document.RawPath)

	idx, ok := s.Document("a/index")
	require.True(t, ok)
	assert.Equal(t, "a/index.md", idx.RawPath)
}

func TestPage_RootIndex(t *testing.T) {
	s := New(newManifest(t, "index.mdx", "a.md"))

	p := s.Page("/")
	assert.Equal(t, PageDocument, p.Kind)
	assert.Equal(t, "index.mdx", p.Document.RawPath)
	assert.Equal(t, "", p.Slug)
}

func TestPage_EmptySite(t *testing.T) {
	s := New(nil)
	assert.Equal(t, PageNotFound, s.Page("").Kind)
	assert.Equal(t, dirtree.Tree{}, s.Tree(""))
	assert.Equal(t, []*nav.Node{}, s.NavTree())
}

func TestSiteOptions(t *testing.T) {
	m := newManifest(t, "a/b.md")

	s := New(m, WithBasePath("/kb/"))
	assert.Equal(t, "/kb", s.BasePath())
	assert.Equal(t, "/kb/a/b", s.Href("a/b"))
	assert.Equal(t, "/kb/", s.Href(""))
	assert.Equal(t, []nav.Crumb{{Href: "/kb", Label: "Articles"}, {Href: "/kb/a", Label: "a"}}, s.BreadcrumbsFor("a"))
	assert.Equal(t, "/kb/a/b", s.NavTree()[0].Children[0].Href)

	custom := New(m, WithBreadcrumbRoot(nav.Crumb{Href: "/", Label: "Home"}))
	assert.Equal(t, []nav.Crumb{{Href: "/", Label: "Home"}, {Href: "/a", Label: "a"}}, custom.Breadcrumbs([]string{"a"}))

	bare := New(m, WithBasePath(""))
	assert.Equal(t, nav.Crumb{Href: "/", Label: "Articles"}, bare.Breadcrumbs(nil)[0])
}

func TestNavTree_ComputedOnce(t *testing.T) {
	s := New(newManifest(t, "a.md", "b/c.md"))

	var wg sync.WaitGroup
	results := make([][]*nav.Node, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.NavTree()
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.Len(t, r, 2)
		assert.Same(t, results[0][0], r[0])
	}
}

func TestDirectoryQueries(t *testing.T) {
	s := New(newManifest(t, "docs/index.md", "docs/setup.md", "docs/guides/start.mdx"))

	assert.True(t, s.HasIndex("docs"))
	assert.False(t, s.HasIndex("docs/guides"))
	assert.Equal(t, []string{"docs/setup"}, s.ListDirectory("docs"))

	doc, ok := s.Document("docs/guides/start")
	require.True(t, ok)
	assert.Equal(t, "docs/guides/start.mdx", doc.RawPath)
	assert.Same(t, s.Manifest(), s.Manifest())
}

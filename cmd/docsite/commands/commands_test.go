package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/nav"
	"git.home.luguber.info/inful/docsite/internal/site"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var (
		cli         CLI
		out, errOut bytes.Buffer
	)
	cli.stderr = &errOut

	parser, err := kong.New(&cli,
		kong.Name("docsite"),
		kong.Vars{"version": "test"},
		kong.Writers(&out, &errOut),
		kong.Exit(func(code int) { t.Fatalf("unexpected exit %d: %s", code, errOut.String()) }),
	)
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	require.NoError(t, err)

	err = kctx.Run(&Global{Ctx: context.Background(), Out: &out, Err: &errOut}, &cli)
	return out.String(), err
}

func writeContent(t *testing.T, files map[string]string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "content")
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	}
	return root
}

func sampleContent(t *testing.T) string {
	return writeContent(t, map[string]string{
		"getting-started.md": "---\ntitle: Getting Started\n---\nHello\n",
		"guides/index.mdx":   "# Guides\n",
		"guides/install.md":  "# Install\n",
	})
}

func TestBuildThenResolve(t *testing.T) {
	content := sampleContent(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docsite.yaml")
	artifact := filepath.Join(dir, "manifest.json")

	out, err := run(t, "-c", cfgPath, "build", "-r", content, "-o", artifact)
	require.NoError(t, err)
	assert.Contains(t, out, "Manifest written to "+artifact)
	assert.Contains(t, out, "3 documents")
	assert.FileExists(t, artifact)

	out, err = run(t, "-c", cfgPath, "resolve", "-m", artifact, "guides/install")
	require.NoError(t, err)
	assert.Contains(t, out, "document\tguides/install.md\tguides/install")

	out, err = run(t, "-c", cfgPath, "resolve", "-m", artifact, "guides")
	require.NoError(t, err)
	assert.Contains(t, out, "document\tguides/index.mdx")

	out, err = run(t, "-c", cfgPath, "resolve", "-m", artifact, "--json")
	require.NoError(t, err)
	var page site.Page
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, site.PageListing, page.Kind)
	assert.Equal(t, site.RootListingTitle, page.Title)
}

func TestResolveNotFound(t *testing.T) {
	content := sampleContent(t)
	cfgPath := filepath.Join(t.TempDir(), "docsite.yaml")

	_, err := run(t, "-c", cfgPath, "resolve", "-r", content, "missing/page")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestResolveWithoutArtifact(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "-c", filepath.Join(dir, "docsite.yaml"), "resolve", "-m", filepath.Join(dir, "absent.json"), "x")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryManifest))

	db := filepath.Join(dir, "absent.db")
	_, err = run(t, "-c", filepath.Join(dir, "docsite.yaml"), "tree", "-m", db)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryManifest))
	assert.NoFileExists(t, db)
}

func TestBuildCollisionPolicy(t *testing.T) {
	content := writeContent(t, map[string]string{
		"a.md":       "# A\n",
		"a/index.md": "# A index\n",
	})
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docsite.yaml")

	out, err := run(t, "-c", cfgPath, "build", "-r", content, "-o", filepath.Join(dir, "m.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "1 collisions")

	_, err = run(t, "-c", cfgPath, "build", "-r", content, "-o", filepath.Join(dir, "m2.json"), "--on-collision", "error")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryManifest))
	assert.NoFileExists(t, filepath.Join(dir, "m2.json"))

	_, err = run(t, "-c", cfgPath, "build", "-r", content, "-o", filepath.Join(dir, "m3.json"), "--on-collision", "explode")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}

func TestTreeFromSQLiteArtifact(t *testing.T) {
	content := sampleContent(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docsite.yaml")
	artifact := filepath.Join(dir, "manifest.db")

	_, err := run(t, "-c", cfgPath, "build", "-r", content, "-o", artifact)
	require.NoError(t, err)

	out, err := run(t, "-c", cfgPath, "tree", "-m", artifact)
	require.NoError(t, err)
	assert.Equal(t, "getting-started\nguides/\n  install\n", out)

	out, err = run(t, "-c", cfgPath, "tree", "-m", artifact, "--json", "guides")
	require.NoError(t, err)
	assert.JSONEq(t, `{"install": true}`, out)
}

func TestNavAndBreadcrumbs(t *testing.T) {
	content := sampleContent(t)
	cfgPath := filepath.Join(t.TempDir(), "docsite.yaml")

	out, err := run(t, "-c", cfgPath, "nav", "-r", content, "--json")
	require.NoError(t, err)
	var forest []*nav.Node
	require.NoError(t, json.Unmarshal([]byte(out), &forest))
	require.Len(t, forest, 2)
	assert.Equal(t, "getting-started", forest[0].Label)
	assert.Equal(t, "/docs/getting-started", forest[0].Href)
	require.Len(t, forest[1].Children, 1)
	assert.Equal(t, "/docs/guides/install", forest[1].Children[0].Href)

	out, err = run(t, "-c", cfgPath, "breadcrumbs", "-r", content, "guides/install")
	require.NoError(t, err)
	assert.Equal(t, "Articles\t/docs\nguides\t/docs/guides\ninstall\t/docs/guides/install\n", out)
}

func TestConfigFileApplies(t *testing.T) {
	content := sampleContent(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docsite.yaml")
	cfg := "content:\n  root: " + content + "\nsite:\n  base_path: /handbook/\n  breadcrumb_root:\n    label: Home\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	out, err := run(t, "-c", cfgPath, "breadcrumbs", "-r", content, "guides")
	require.NoError(t, err)
	assert.Equal(t, "Home\t/handbook\nguides\t/handbook/guides\n", out)
}

func TestInvalidConfigFails(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "docsite.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  level: loud\n"), 0o600))

	_, err := run(t, "-c", cfgPath, "nav", "-r", t.TempDir())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docsite.yaml")

	_, err := run(t, "-c", cfgPath, "init")
	require.NoError(t, err)
	assert.FileExists(t, cfgPath)

	_, err = run(t, "-c", cfgPath, "init")
	require.Error(t, err)

	_, err = run(t, "-c", cfgPath, "init", "--force")
	require.NoError(t, err)
}

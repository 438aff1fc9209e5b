package dirtree

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"git.home.luguber.info/inful/docsite/internal/manifest"
)

func TestFromPaths(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		base  string
		want  Tree
	}{
		{
			name:  "empty",
			paths: nil,
			want:  Tree{},
		},
		{
			name:  "nested with index suppressed",
			paths: []string{"docs/index.md", "docs/setup.md", "docs/guides/start.mdx"},
			want:  Tree{"docs": Tree{"setup": nil, "guides": Tree{"start": nil}}},
		},
		{
			name:  "branch wins over earlier leaf",
			paths: []string{"a.md", "a/b.md"},
			want:  Tree{"a": Tree{"b": nil}},
		},
		{
			name:  "branch wins over later leaf",
			paths: []string{"a/b.md", "a.md"},
			want:  Tree{"a": Tree{"b": nil}},
		},
		{
			name:  "base slug scopes the tree",
			paths: []string{"docs/index.md", "docs/setup.md", "docs/guides/start.mdx", "blog/post.md"},
			base:  "docs",
			want:  Tree{"setup": nil, "guides": Tree{"start": nil}},
		},
		{
			name:  "base slug trailing slash",
			paths: []string{"docs/setup.md"},
			base:  "docs/",
			want:  Tree{"setup": nil},
		},
		{
			name:  "base slug is not a prefix match on names",
			paths: []string{"docsextra/a.md", "docs.md"},
			base:  "docs",
			want:  Tree{},
		},
		{
			name:  "root index and uppercase index dropped",
			paths: []string{"index.md", "guide/INDEX.mdx"},
			want:  Tree{"guide": Tree{}},
		},
		{
			name:  "directory named index skipped",
			paths: []string{"a/index/b.md", "a/c.md"},
			want:  Tree{"a": Tree{"c": nil}},
		},
		{
			name:  "leading dot slash",
			paths: []string{"./x.md"},
			want:  Tree{"x": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromPaths(tt.paths, tt.base))
		})
	}
}

func TestBuild_EmptyManifest(t *testing.T) {
	assert.Equal(t, Tree{}, Build(manifest.Empty(), ""))
}

func TestTreeJSON(t *testing.T) {
	tree := FromPaths([]string{"docs/index.md", "docs/setup.md", "docs/guides/start.mdx"}, "")

	data, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{"docs":{"setup":true,"guides":{"start":true}}}`, string(data))

	var back Tree
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, tree, back)

	data, err = json.Marshal(Tree{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestNames(t *testing.T) {
	tree := Tree{"b": nil, "a": Tree{}, "c": nil}
	assert.Equal(t, []string{"a", "b", "c"}, tree.Names())
	assert.True(t, tree["b"].IsLeaf())
	assert.False(t, tree["a"].IsLeaf())
}

func genPaths() *rapid.Generator[[]string] {
	seg := rapid.SampledFrom([]string{"a", "b", "c", "index"})
	return rapid.Custom(func(t *rapid.T) []string {
		segsList := rapid.SliceOfN(rapid.SliceOfN(seg, 1, 4), 0, 15).Draw(t, "segs")
		paths := make([]string, 0, len(segsList))
		for _, segs := range segsList {
			ext := rapid.SampledFrom([]string{".md", ".mdx"}).Draw(t, "ext")
			paths = append(paths, strings.Join(segs, "/")+ext)
		}
		return paths
	})
}

func TestFromPaths_OrderInvariant(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		paths := genPaths().Draw(rt, "paths")
		shuffled := rapid.Permutation(paths).Draw(rt, "shuffled")
		require.Equal(rt, FromPaths(paths, ""), FromPaths(shuffled, ""))
		require.Equal(rt, FromPaths(paths, "a"), FromPaths(shuffled, "a"))
	})
}

func TestFromPaths_NoIndexNodes(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tree := FromPaths(genPaths().Draw(rt, "paths"), "")
		var walk func(Tree)
		walk = func(n Tree) {
			for name, child := range n {
				require.NotEqual(rt, "index", strings.ToLower(name))
				walk(child)
			}
		}
		walk(tree)
	})
}

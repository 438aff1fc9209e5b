// Package dirtree synthesizes the directory hierarchy implied by a manifest's
// flat path list.
package dirtree

import (
	"encoding/json"
	"slices"
	"sort"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/manifest"
	"git.home.luguber.info/inful/docsite/internal/slug"
)

// Tree is a branch mapping child names to subtrees. A nil child is a leaf
// document; a non-nil child (possibly empty) is a directory.
//
// In JSON a leaf is rendered as true.
type Tree map[string]Tree

// IsLeaf reports whether t is a leaf marker.
func (t Tree) IsLeaf() bool { return t == nil }

// Names returns the child names in lexical order.
func (t Tree) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarshalJSON implements json.Marshaler.
func (t Tree) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("true"), nil
	}
	return json.Marshal(map[string]Tree(t))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Tree) UnmarshalJSON(data []byte) error {
	if string(data) == "true" {
		*t = nil
		return nil
	}
	var m map[string]Tree
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if m == nil {
		m = map[string]Tree{}
	}
	*t = Tree(m)
	return nil
}

// Build returns the tree of documents below baseSlug in m.
func Build(m *manifest.Manifest, baseSlug string) Tree {
	return FromPaths(m.Paths(), baseSlug)
}

// FromPaths builds the tree of documents below baseSlug from raw paths. An
// empty baseSlug covers the whole content root.
//
// Index documents are dropped since they stand for their directory. When a
// name is both a document and a directory (a.md next to a/b.md) the directory
// wins, whatever the input order. Paths that pass through a directory named
// index are left out.
func FromPaths(paths []string, baseSlug string) Tree {
	prefix := strings.Trim(baseSlug, "/")
	if prefix != "" {
		prefix += "/"
	}

	tree := Tree{}
	for _, p := range paths {
		explicit := slug.TrimExtension(strings.TrimPrefix(p, "./"))
		if !strings.HasPrefix(explicit, prefix) {
			continue
		}
		segs := strings.Split(explicit[len(prefix):], "/")
		if slices.Contains(segs, "") || slices.ContainsFunc(segs[:len(segs)-1], slug.IsIndexSegment) {
			continue
		}
		tree.insert(segs)
	}
	return tree
}

func (t Tree) insert(segs []string) {
	node := t
	for _, seg := range segs[:len(segs)-1] {
		child := node[seg]
		if child == nil {
			child = Tree{}
			node[seg] = child
		}
		node = child
	}

	last := segs[len(segs)-1]
	if slug.IsIndexSegment(last) {
		return
	}
	if _, exists := node[last]; !exists {
		node[last] = nil
	}
}

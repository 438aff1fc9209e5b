// Package resolve maps runtime request slugs onto manifest documents.
//
// All functions are pure reads over an immutable manifest and may be called
// concurrently.
package resolve

import (
	"strings"

	"git.home.luguber.info/inful/docsite/internal/manifest"
	"git.home.luguber.info/inful/docsite/internal/slug"
)

// Candidates returns the lookup keys tried for a request slug, in order:
// the bare slug, the slug with each extension, slug/index, and slug/index
// with each extension. A single trailing slash is ignored.
func Candidates(requestSlug string) []string {
	s := strings.TrimSuffix(requestSlug, "/")
	index := slug.Join(s, slug.IndexName)

	keys := make([]string, 0, 2+2*len(slug.Extensions))
	if s != "" {
		keys = append(keys, s)
		for _, ext := range slug.Extensions {
			keys = append(keys, s+ext)
		}
	}
	keys = append(keys, index)
	for _, ext := range slug.Extensions {
		keys = append(keys, index+ext)
	}
	return keys
}

// Resolve returns the document for requestSlug, probing Candidates in order.
// It reports false when nothing matches; callers then render a directory
// listing or a not-found page.
func Resolve(m *manifest.Manifest, requestSlug string) (*manifest.Document, bool) {
	for _, key := range Candidates(requestSlug) {
		if doc, ok := m.Lookup(key); ok {
			return doc, true
		}
	}
	return nil, false
}

// HasIndex reports whether the directory named by requestSlug has its own
// index document.
func HasIndex(m *manifest.Manifest, requestSlug string) bool {
	index := slug.Join(strings.TrimSuffix(requestSlug, "/"), slug.IndexName)
	if _, ok := m.Lookup(index); ok {
		return true
	}
	for _, ext := range slug.Extensions {
		if _, ok := m.Lookup(index + ext); ok {
			return true
		}
	}
	return false
}

// ListDirectory returns the slugs of documents located directly in the
// directory named by requestSlug, excluding its index document and anything
// in subdirectories. Order follows the manifest's path order; duplicates
// (a.md next to a.mdx) collapse to one entry.
func ListDirectory(m *manifest.Manifest, requestSlug string) []string {
	s := strings.TrimSuffix(requestSlug, "/")
	prefix := ""
	if s != "" {
		prefix = s + "/"
	}

	out := []string{}
	seen := map[string]struct{}{}
	for _, p := range m.Paths() {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := slug.TrimExtension(p[len(prefix):])
		if rest == "" || strings.Contains(rest, "/") || slug.IsIndexSegment(rest) {
			continue
		}
		entry := prefix + rest
		if _, dup := seen[entry]; dup {
			continue
		}
		seen[entry] = struct{}{}
		out = append(out, entry)
	}
	return out
}

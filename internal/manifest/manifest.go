// Package manifest holds the build-time table of content documents and the
// alias keys under which each document resolves.
//
// A Manifest is produced once (by Builder or by loading an Artifact) and is
// immutable afterwards; all accessors are safe for concurrent use.
package manifest

import (
	"slices"
	"sort"
	"time"
)

// Document is the manifest's handle for one content file. The renderable
// content itself stays with the rendering layer, which reads RawPath below the
// content root.
type Document struct {
	RawPath     string `json:"raw_path"`
	Slug        string `json:"slug"`
	Title       string `json:"title,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Size        int64  `json:"size"`
}

// Collision records an alias key that was claimed by two distinct documents.
// The later-discovered document (Winner) owns the key.
type Collision struct {
	Key      string `json:"key"`
	Previous string `json:"previous"`
	Winner   string `json:"winner"`
}

// Manifest is the ordered list of discovered paths plus the alias lookup table.
type Manifest struct {
	ID          string
	GeneratedAt time.Time
	Root        string
	Hash        string
	Collisions  []Collision

	paths  []string
	docs   map[string]*Document
	lookup map[string]*Document
}

// Empty returns a manifest with no documents.
func Empty() *Manifest {
	return &Manifest{
		paths:  []string{},
		docs:   map[string]*Document{},
		lookup: map[string]*Document{},
	}
}

// Paths returns the raw paths in discovery order.
func (m *Manifest) Paths() []string {
	return slices.Clone(m.paths)
}

// Len returns the number of documents.
func (m *Manifest) Len() int { return len(m.paths) }

// AliasCount returns the number of keys in the lookup table.
func (m *Manifest) AliasCount() int { return len(m.lookup) }

// Lookup returns the document registered under key.
func (m *Manifest) Lookup(key string) (*Document, bool) {
	d, ok := m.lookup[key]
	return d, ok
}

// Document returns the document discovered at rawPath.
func (m *Manifest) Document(rawPath string) (*Document, bool) {
	d, ok := m.docs[rawPath]
	return d, ok
}

// Documents returns all documents in discovery order.
func (m *Manifest) Documents() []*Document {
	out := make([]*Document, 0, len(m.paths))
	for _, p := range m.paths {
		out = append(out, m.docs[p])
	}
	return out
}

// Keys returns every alias key in lexical order.
func (m *Manifest) Keys() []string {
	keys := make([]string, 0, len(m.lookup))
	for k := range m.lookup {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// KeysFor returns the alias keys currently owned by the document at rawPath,
// in lexical order.
func (m *Manifest) KeysFor(rawPath string) []string {
	var keys []string
	for k, d := range m.lookup {
		if d.RawPath == rawPath {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// add registers doc at the end of the path list. It returns false when the
// path is already present.
func (m *Manifest) add(doc *Document) bool {
	if _, dup := m.docs[doc.RawPath]; dup {
		return false
	}
	m.paths = append(m.paths, doc.RawPath)
	m.docs[doc.RawPath] = doc
	return true
}

// bind points key at doc, replacing any previous owner. A replaced owner that
// is a different document is reported as a collision.
func (m *Manifest) bind(key string, doc *Document) (Collision, bool) {
	prev, taken := m.lookup[key]
	m.lookup[key] = doc
	if taken && prev.RawPath != doc.RawPath {
		return Collision{Key: key, Previous: prev.RawPath, Winner: doc.RawPath}, true
	}
	return Collision{}, false
}

// Package slug turns content-relative file paths into canonical document slugs
// and the alias keys under which a document is registered in the manifest.
//
// A slug never carries a content extension and never ends in an "index"
// segment: index documents stand for their containing directory.
package slug

import (
	"path"
	"strings"
)

// IndexName is the file stem that represents a directory's own document.
const IndexName = "index"

// Extensions lists the recognized content extensions in lookup order.
var Extensions = []string{".mdx", ".md"}

// IsContentFile reports whether name carries a recognized content extension.
func IsContentFile(name string) bool {
	_, ok := contentExt(name)
	return ok
}

// TrimExtension strips a trailing content extension (case-insensitive).
// Names without a recognized extension are returned unchanged.
func TrimExtension(p string) string {
	if ext, ok := contentExt(p); ok {
		return p[:len(p)-len(ext)]
	}
	return p
}

// Normalize converts a raw relative path into its canonical slug.
//
//	"./docs/setup.md"  -> "docs/setup"
//	"docs/index.mdx"   -> "docs"
//	"index.md"         -> ""
func Normalize(rawPath string) string {
	return trimIndex(TrimExtension(strings.TrimPrefix(rawPath, "./")))
}

// AliasKeys returns every lookup key that resolves to the document at rawPath:
// the raw path, the extension-less path, the slug and, for index documents,
// "<slug>/index". Empty keys are dropped and the result is de-duplicated,
// preserving that order.
func AliasKeys(rawPath string) []string {
	raw := strings.TrimPrefix(rawPath, "./")
	explicit := TrimExtension(raw)
	canonical := trimIndex(explicit)

	keys := []string{raw, explicit, canonical}
	if IsIndex(explicit) {
		keys = append(keys, Join(canonical, IndexName))
	}

	out := keys[:0]
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// IsIndex reports whether the extension-less path names an index document,
// either "index" itself or anything ending in "/index".
func IsIndex(explicit string) bool {
	return explicit != "" && isIndexSegment(path.Base(explicit))
}

// IsIndexSegment reports whether a single path segment is the index marker.
func IsIndexSegment(seg string) bool {
	return isIndexSegment(seg)
}

// Join appends name to a slug; the empty slug is the content root.
func Join(s, name string) string {
	if s == "" {
		return name
	}
	return s + "/" + name
}

// Segments splits a slug into its path segments. The empty slug has none.
func Segments(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "/")
}

func trimIndex(explicit string) string {
	if !IsIndex(explicit) {
		return explicit
	}
	return strings.TrimSuffix(explicit[:len(explicit)-len(IndexName)], "/")
}

func isIndexSegment(seg string) bool {
	return strings.EqualFold(seg, IndexName)
}

func contentExt(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, ext := range Extensions {
		if strings.HasSuffix(lower, ext) && len(name) > len(ext) {
			return name[len(name)-len(ext):], true
		}
	}
	return "", false
}

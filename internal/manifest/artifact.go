package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Artifact is the serializable form of a Manifest: the ordered path list, the
// documents keyed by raw path, and the alias lookup table mapping each key to
// a raw path. It is the only interface between the build and serve phases.
type Artifact struct {
	ID          string              `json:"id"`
	GeneratedAt time.Time           `json:"generated_at"`
	Root        string              `json:"root"`
	Hash        string              `json:"hash"`
	Paths       []string            `json:"paths"`
	Documents   map[string]Document `json:"documents"`
	Lookup      map[string]string   `json:"lookup"`
	Collisions  []Collision         `json:"collisions,omitempty"`
}

// Artifact returns the serializable form of m.
func (m *Manifest) Artifact() Artifact {
	a := Artifact{
		ID:          m.ID,
		GeneratedAt: m.GeneratedAt,
		Root:        m.Root,
		Hash:        m.Hash,
		Paths:       m.Paths(),
		Documents:   make(map[string]Document, len(m.docs)),
		Lookup:      make(map[string]string, len(m.lookup)),
		Collisions:  append([]Collision(nil), m.Collisions...),
	}
	for p, d := range m.docs {
		a.Documents[p] = *d
	}
	for k, d := range m.lookup {
		a.Lookup[k] = d.RawPath
	}
	return a
}

// FromArtifact restores a Manifest verbatim from its serialized form. The
// lookup table is taken as stored, not recomputed, so collision outcomes of
// the original build are preserved.
func FromArtifact(a Artifact) (*Manifest, error) {
	m := Empty()
	m.ID = a.ID
	m.GeneratedAt = a.GeneratedAt
	m.Root = a.Root
	m.Hash = a.Hash
	m.Collisions = append([]Collision(nil), a.Collisions...)

	for _, p := range a.Paths {
		d, ok := a.Documents[p]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPath, p)
		}
		d.RawPath = p
		if !m.add(&d) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePath, p)
		}
	}
	for key, raw := range a.Lookup {
		d, ok := m.docs[raw]
		if !ok {
			return nil, fmt.Errorf("%w: %q -> %q", ErrDanglingAlias, key, raw)
		}
		m.lookup[key] = d
	}
	return m, nil
}

// Encode writes m as indented JSON.
func Encode(w io.Writer, m *Manifest) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m.Artifact()); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return nil
}

// Decode reads a JSON artifact and restores the Manifest.
func Decode(r io.Reader) (*Manifest, error) {
	var a Artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return FromArtifact(a)
}

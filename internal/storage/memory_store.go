package storage

import (
	"context"
	"sync"

	"git.home.luguber.info/inful/docsite/internal/manifest"
)

// MemoryStore is an in-memory Store for tests and ephemeral serving. It keeps
// the serialized artifact, so Load returns an independent copy.
type MemoryStore struct {
	mu       sync.RWMutex
	artifact *manifest.Artifact
	calls    MemoryCalls
}

// MemoryCalls tracks method invocations for test verification.
type MemoryCalls struct {
	Save int
	Load int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save stores m.
func (s *MemoryStore) Save(_ context.Context, m *manifest.Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.Save++
	a := m.Artifact()
	s.artifact = &a
	return nil
}

// Load restores the stored artifact.
func (s *MemoryStore) Load(_ context.Context) (*manifest.Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.Load++
	if s.artifact == nil {
		return nil, ErrNotFound{Location: "memory"}
	}
	return manifest.FromArtifact(*s.artifact)
}

// Calls returns the invocation counters.
func (s *MemoryStore) Calls() MemoryCalls {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls
}

// Close releases resources.
func (s *MemoryStore) Close() error {
	return nil
}

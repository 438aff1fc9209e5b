package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/docsite/internal/manifest"
)

// SQLiteStore keeps the artifact in three tables: manifest metadata, the
// documents in discovery order, and the alias lookup.
type SQLiteStore struct {
	db       *sql.DB
	location string
	mu       sync.RWMutex
}

// NewSQLiteStore opens (or creates) a SQLite artifact store.
// Use ":memory:" for an in-memory database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// An in-memory database lives only as long as its connection.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, location: dbPath}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS manifest_meta (
		singleton INTEGER PRIMARY KEY CHECK (singleton = 1),
		id TEXT NOT NULL,
		generated_at TEXT NOT NULL,
		root TEXT NOT NULL,
		hash TEXT NOT NULL,
		collisions TEXT
	);
	CREATE TABLE IF NOT EXISTS documents (
		ordinal INTEGER PRIMARY KEY,
		raw_path TEXT NOT NULL UNIQUE,
		slug TEXT NOT NULL,
		title TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		size INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS aliases (
		key TEXT PRIMARY KEY,
		raw_path TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_aliases_raw_path ON aliases(raw_path);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save replaces the stored artifact with m in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, m *manifest.Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := m.Artifact()
	var collisionsJSON []byte
	if len(a.Collisions) > 0 {
		var err error
		collisionsJSON, err = json.Marshal(a.Collisions)
		if err != nil {
			return fmt.Errorf("marshal collisions: %w", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"manifest_meta", "documents", "aliases"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO manifest_meta (singleton, id, generated_at, root, hash, collisions) VALUES (1, ?, ?, ?, ?, ?)",
		a.ID, a.GeneratedAt.UTC().Format(time.RFC3339Nano), a.Root, a.Hash, collisionsJSON,
	); err != nil {
		return fmt.Errorf("insert metadata: %w", err)
	}

	for i, p := range a.Paths {
		d := a.Documents[p]
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO documents (ordinal, raw_path, slug, title, fingerprint, size) VALUES (?, ?, ?, ?, ?, ?)",
			i, p, d.Slug, d.Title, d.Fingerprint, d.Size,
		); err != nil {
			return fmt.Errorf("insert document %s: %w", p, err)
		}
	}

	for key, raw := range a.Lookup {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO aliases (key, raw_path) VALUES (?, ?)",
			key, raw,
		); err != nil {
			return fmt.Errorf("insert alias %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Load restores the stored artifact.
func (s *SQLiteStore) Load(ctx context.Context) (*manifest.Manifest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		a              manifest.Artifact
		generatedAt    string
		collisionsJSON []byte
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, generated_at, root, hash, collisions FROM manifest_meta WHERE singleton = 1",
	).Scan(&a.ID, &generatedAt, &a.Root, &a.Hash, &collisionsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound{Location: s.location}
	}
	if err != nil {
		return nil, fmt.Errorf("query metadata: %w", err)
	}
	if a.GeneratedAt, err = time.Parse(time.RFC3339Nano, generatedAt); err != nil {
		return nil, fmt.Errorf("parse generated_at: %w", err)
	}
	if len(collisionsJSON) > 0 {
		if err := json.Unmarshal(collisionsJSON, &a.Collisions); err != nil {
			return nil, fmt.Errorf("unmarshal collisions: %w", err)
		}
	}

	if err := s.loadDocuments(ctx, &a); err != nil {
		return nil, err
	}
	if err := s.loadAliases(ctx, &a); err != nil {
		return nil, err
	}
	return manifest.FromArtifact(a)
}

func (s *SQLiteStore) loadDocuments(ctx context.Context, a *manifest.Artifact) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT raw_path, slug, title, fingerprint, size FROM documents ORDER BY ordinal",
	)
	if err != nil {
		return fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	a.Paths = []string{}
	a.Documents = map[string]manifest.Document{}
	for rows.Next() {
		var d manifest.Document
		if err := rows.Scan(&d.RawPath, &d.Slug, &d.Title, &d.Fingerprint, &d.Size); err != nil {
			return fmt.Errorf("scan document: %w", err)
		}
		a.Paths = append(a.Paths, d.RawPath)
		a.Documents[d.RawPath] = d
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate documents: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadAliases(ctx context.Context, a *manifest.Artifact) error {
	rows, err := s.db.QueryContext(ctx, "SELECT key, raw_path FROM aliases")
	if err != nil {
		return fmt.Errorf("query aliases: %w", err)
	}
	defer rows.Close()

	a.Lookup = map[string]string{}
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return fmt.Errorf("scan alias: %w", err)
		}
		a.Lookup[key] = raw
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate aliases: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

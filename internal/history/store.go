// Package history persists one row per build run in a local SQLite
// database, so past outcomes can be listed without re-running anything.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded build run.
type Entry struct {
	ID            string
	Scheme        string
	Configuration string
	Started       time.Time
	Finished      time.Time
	Outcome       string
	ExitCode      int
	ArtifactPath  string
	Commit        string
}

// Store is a SQLite-backed build history.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open creates or opens the history database at dbPath. Use ":memory:"
// for an in-memory database, or a file path for persistent storage.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create history directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		scheme TEXT NOT NULL,
		configuration TEXT NOT NULL,
		started INTEGER NOT NULL,
		finished INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		exit_code INTEGER NOT NULL,
		artifact_path TEXT,
		commit_hash TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_builds_started ON builds(started);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends one build run.
func (s *Store) Record(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO builds (id, scheme, configuration, started, finished, outcome, exit_code, artifact_path, commit_hash) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		e.ID, e.Scheme, e.Configuration, e.Started.Unix(), e.Finished.Unix(), e.Outcome, e.ExitCode, e.ArtifactPath, e.Commit,
	)
	if err != nil {
		return fmt.Errorf("insert build: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, scheme, configuration, started, finished, outcome, exit_code, artifact_path, commit_hash FROM builds ORDER BY started DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var started, finished int64
		var artifact, commit sql.NullString
		if err := rows.Scan(&e.ID, &e.Scheme, &e.Configuration, &started, &finished, &e.Outcome, &e.ExitCode, &artifact, &commit); err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		e.Started = time.Unix(started, 0)
		e.Finished = time.Unix(finished, 0)
		e.ArtifactPath = artifact.String
		e.Commit = commit.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate builds: %w", err)
	}
	return entries, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

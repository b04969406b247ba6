// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest keeps a SQLite ledger of what each sync wrote. Every run
// gets a UUID; every artifact the walker writes is recorded against it.
// The ledger is informational: syncs never read it to decide what to fetch.
package manifest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/course-mirror/pkg/types"
)

// timeLayout has fixed-width fractional seconds so timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the manifest database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the manifest database at path and its schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating manifest directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			base_url TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS artifacts (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			course_id INTEGER NOT NULL,
			course_name TEXT NOT NULL,
			module TEXT,
			kind TEXT NOT NULL,
			remote_id TEXT NOT NULL,
			path TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_artifacts_run_id ON artifacts(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RunInfo describes one recorded sync.
type RunInfo struct {
	ID         string    `json:"id" yaml:"id"`
	BaseURL    string    `json:"base_url" yaml:"base_url"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
}

// Run records artifacts for one sync. It implements mirror.Recorder.
type Run struct {
	store *Store
	id    string
}

// BeginRun inserts a new run and returns its recorder.
func (s *Store) BeginRun(ctx context.Context, baseURL string) (*Run, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, base_url, started_at) VALUES (?, ?, ?)`,
		id, baseURL, time.Now().UTC().Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("starting run: %w", err)
	}
	return &Run{store: s, id: id}, nil
}

// ID returns the run's UUID.
func (r *Run) ID() string {
	return r.id
}

// Record stores one artifact.
func (r *Run) Record(a types.Artifact) error {
	_, err := r.store.db.Exec(
		`INSERT INTO artifacts (run_id, course_id, course_name, module, kind, remote_id, path)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.id, a.CourseID, a.CourseName, a.Module, string(a.Kind), a.RemoteID, a.Path)
	if err != nil {
		return fmt.Errorf("recording artifact: %w", err)
	}
	return nil
}

// Finish stamps the run's finish time.
func (r *Run) Finish(ctx context.Context) error {
	_, err := r.store.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ? WHERE id = ?`,
		time.Now().UTC().Format(timeLayout), r.id)
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	return nil
}

// LatestRun returns the most recently started run. ok is false when the
// manifest has no runs.
func (s *Store) LatestRun(ctx context.Context) (info RunInfo, ok bool, err error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, base_url, started_at, COALESCE(finished_at, '')
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT 1`)
	info, err = scanRun(row)
	if err == sql.ErrNoRows {
		return RunInfo{}, false, nil
	}
	if err != nil {
		return RunInfo{}, false, fmt.Errorf("reading latest run: %w", err)
	}
	return info, true, nil
}

// GetRun returns the run with the given id.
func (s *Store) GetRun(ctx context.Context, id string) (RunInfo, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, base_url, started_at, COALESCE(finished_at, '') FROM runs WHERE id = ?`, id)
	info, err := scanRun(row)
	if err == sql.ErrNoRows {
		return RunInfo{}, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return RunInfo{}, fmt.Errorf("reading run %s: %w", id, err)
	}
	return info, nil
}

func scanRun(row *sql.Row) (RunInfo, error) {
	var info RunInfo
	var started, finished string
	if err := row.Scan(&info.ID, &info.BaseURL, &started, &finished); err != nil {
		return RunInfo{}, err
	}
	if t, err := time.Parse(timeLayout, started); err == nil {
		info.StartedAt = t
	}
	if t, err := time.Parse(timeLayout, finished); err == nil {
		info.FinishedAt = t
	}
	return info, nil
}

// Artifacts returns the artifacts of a run in the order they were written.
func (s *Store) Artifacts(ctx context.Context, runID string) ([]types.Artifact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT course_id, course_name, COALESCE(module, ''), kind, remote_id, path
		 FROM artifacts WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying artifacts: %w", err)
	}
	defer rows.Close()

	var out []types.Artifact
	for rows.Next() {
		var a types.Artifact
		var kind string
		if err := rows.Scan(&a.CourseID, &a.CourseName, &a.Module, &kind, &a.RemoteID, &a.Path); err != nil {
			return nil, fmt.Errorf("scanning artifact: %w", err)
		}
		a.Kind = types.ArtifactKind(kind)
		out = append(out, a)
	}
	return out, rows.Err()
}

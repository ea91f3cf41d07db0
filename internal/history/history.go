// Package history stores a local log of past driver runs: run ID, source
// path, diagnostic count, and timestamp, queried by the `funxy history`
// CLI subcommand. It is an ambient convenience only — the elaborator
// itself is memory-only (§6, "Persisted state: none by design"); this
// store never feeds a result back into a later elaboration, so re-running
// history never re-elaborates or short-circuits a fresh run (no
// incremental reelaboration, per the spec's Non-goals).
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Hadron67/typechecker/internal/driver"
)

// Store is a pure-Go, cgo-free sqlite-backed run log.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) a run-log database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: opening %s: %w", path, err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	source_path TEXT NOT NULL,
	diag_count  INTEGER NOT NULL,
	ran_at      INTEGER NOT NULL
)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Record appends one run's summary to the log.
func (s *Store) Record(res *driver.Result) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, source_path, diag_count, ran_at) VALUES (?, ?, ?, ?)`,
		res.RunID.String(), res.SourcePath, len(res.Diagnostics), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("history: recording run %s: %w", res.RunID, err)
	}
	return nil
}

// Entry is one logged run, as read back from the store.
type Entry struct {
	RunID      string
	SourcePath string
	DiagCount  int
	RanAt      time.Time
}

// Recent returns the n most recently recorded runs, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT run_id, source_path, diag_count, ran_at FROM runs ORDER BY ran_at DESC, rowid DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("history: querying recent runs: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var ranAt int64
		if err := rows.Scan(&e.RunID, &e.SourcePath, &e.DiagCount, &ranAt); err != nil {
			return nil, fmt.Errorf("history: scanning row: %w", err)
		}
		e.RanAt = time.Unix(ranAt, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Show looks up one run by ID.
func (s *Store) Show(runID string) (*Entry, error) {
	row := s.db.QueryRow(
		`SELECT run_id, source_path, diag_count, ran_at FROM runs WHERE run_id = ?`, runID,
	)
	var e Entry
	var ranAt int64
	if err := row.Scan(&e.RunID, &e.SourcePath, &e.DiagCount, &ranAt); err != nil {
		return nil, fmt.Errorf("history: run %s not found: %w", runID, err)
	}
	e.RanAt = time.Unix(ranAt, 0)
	return &e, nil
}

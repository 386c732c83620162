// Package storage persists the high score and run history.
// The default store uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// HighScoreKey is the key the high score is stored under.
const HighScoreKey = "highScore"

// DefaultDBPath is where the CLI keeps its database.
const DefaultDBPath = "~/.trex/scores.db"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunEntry is one finished run.
type RunEntry struct {
	ID        int64
	Score     int // Raw score
	Ticks     int
	CreatedAt time.Time
}

// RunStats contains aggregated statistics over all runs.
type RunStats struct {
	Runs       int
	Best       int
	AvgScore   float64
	TotalTicks int64
	LastPlayed time.Time
}

// Open opens the database at dbPath, creating the file, its directory and
// the schema on first use. A leading ~ is expanded.
func Open(dbPath string) (*Store, error) {
	path, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One connection keeps the pragmas below in effect for every statement.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot migrate schema: %w", err)
	}

	return store, nil
}

// expandHome expands a leading ~ to the home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate brings the schema up to date.
// The high score is written on every tick it is beaten, so the journal is WAL.
func (s *Store) migrate() error {
	schema := `
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			score INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadHighScore returns the stored high score, or 0 when none was stored.
// A value that does not parse is reported as an error alongside 0.
func (s *Store) LoadHighScore() (int, error) {
	var raw string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", HighScoreKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	score, err := strconv.Atoi(raw)
	if err != nil || score < 0 {
		return 0, fmt.Errorf("storage: invalid high score %q", raw)
	}
	return score, nil
}

// SaveHighScore stores the high score unless a higher one is already stored,
// so sessions sharing the database never lower it.
func (s *Store) SaveHighScore(score int) error {
	if score < 0 {
		return fmt.Errorf("storage: negative high score %d", score)
	}
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value
		 WHERE CAST(excluded.value AS INTEGER) > CAST(kv.value AS INTEGER)`,
		HighScoreKey, strconv.Itoa(score),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save high score: %w", err)
	}
	return nil
}

// SaveRun records a finished run.
// The returned ID orders runs that tie on score.
func (s *Store) SaveRun(score, ticks int) (int64, error) {
	result, err := s.db.Exec("INSERT INTO runs (score, ticks) VALUES (?, ?)", score, ticks)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecordRun saves a run and drops the ID, for use as a run recorder.
func (s *Store) RecordRun(score, ticks int) error {
	_, err := s.SaveRun(score, ticks)
	return err
}

// TopRuns retrieves the best N runs, highest score first.
func (s *Store) TopRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, score, ticks, created_at
		 FROM runs
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Score, &e.Ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot read runs: %w", err)
	}
	return entries, nil
}

// Stats retrieves aggregated statistics over all runs.
func (s *Store) Stats() (*RunStats, error) {
	stats := &RunStats{}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(ticks), 0), MAX(created_at)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.Best, &stats.AvgScore, &stats.TotalTicks, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// ClearRuns deletes the run history. The high score is kept.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

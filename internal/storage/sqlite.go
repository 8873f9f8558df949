// Package storage provides SQLite-based persistence for scores and recorded runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/bridge-runner/internal/bridge"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	Preset    string
	Score     int
	Seed      uint32
	RunID     string // Empty when the run was not stored
	CreatedAt time.Time
}

// RunRecord is a stored move log together with its verification outcome.
type RunRecord struct {
	ID        string
	Seed      uint32
	Moves     []bridge.Move
	Claimed   int    // Score reported by the client
	Verified  int    // Score recomputed by the replay validator
	Verdict   string // Replay verdict, see replay.Verdict
	Preset    string
	CreatedAt time.Time
}

// RunData returns the replayable part of the record.
func (r RunRecord) RunData() bridge.RunData {
	return bridge.RunData{Seed: r.Seed, Moves: r.Moves}.Clone()
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			preset TEXT NOT NULL,
			score INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			run_id TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(preset, score DESC);

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			moves TEXT NOT NULL,
			claimed INTEGER NOT NULL,
			verified INTEGER NOT NULL,
			verdict TEXT NOT NULL,
			preset TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a new score. runID may be empty.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(preset string, score int, seed uint32, runID string) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (preset, score, seed, run_id) VALUES (?, ?, ?, NULLIF(?, ''))",
		preset, score, int64(seed), runID,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores retrieves the top N scores for a preset, highest first.
func (s *Store) TopScores(preset string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, preset, score, seed, run_id, created_at
		 FROM scores
		 WHERE preset = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		preset, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var seed int64
		var runID sql.NullString
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Preset, &e.Score, &seed, &runID, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Seed = uint32(seed)
		e.RunID = runID.String
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the highest score for a preset, or 0 if none exist.
func (s *Store) HighScore(preset string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM scores WHERE preset = ?", preset).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all scores for a preset. Stored runs are kept.
func (s *Store) ClearScores(preset string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE preset = ?", preset); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveRun stores a move log. A fresh UUID is assigned when rec.ID is empty.
// Returns the run ID.
func (s *Store) SaveRun(rec RunRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	} else if _, err := uuid.Parse(rec.ID); err != nil {
		return "", fmt.Errorf("storage: invalid run id %q: %w", rec.ID, err)
	}
	if rec.Moves == nil {
		rec.Moves = []bridge.Move{}
	}

	moves, err := json.Marshal(rec.Moves)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode moves: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO runs (id, seed, moves, claimed, verified, verdict, preset)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, int64(rec.Seed), string(moves), rec.Claimed, rec.Verified, rec.Verdict, rec.Preset,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return rec.ID, nil
}

const runColumns = `id, seed, moves, claimed, verified, verdict, preset, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (RunRecord, error) {
	var rec RunRecord
	var seed int64
	var moves string
	var createdAt any
	if err := sc.Scan(&rec.ID, &seed, &moves, &rec.Claimed, &rec.Verified, &rec.Verdict, &rec.Preset, &createdAt); err != nil {
		return rec, err
	}
	rec.Seed = uint32(seed)
	rec.CreatedAt = parseTime(createdAt)
	if err := json.Unmarshal([]byte(moves), &rec.Moves); err != nil {
		return rec, fmt.Errorf("storage: run %s has corrupt moves: %w", rec.ID, err)
	}
	return rec, nil
}

// RunByID retrieves a stored run. Returns nil, nil if it does not exist.
func (s *Store) RunByID(id string) (*RunRecord, error) {
	rec, err := scanRun(s.db.QueryRow("SELECT "+runColumns+" FROM runs WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &rec, nil
}

// RecentRuns retrieves the most recently stored runs.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query("SELECT "+runColumns+" FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}
		runs = append(runs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// GameStats contains aggregated statistics for a preset.
type GameStats struct {
	Preset       string
	GamesCount   int
	HighScore    int
	AvgScore     float64
	TotalScore   int64
	LastPlayed   time.Time
	RunsStored   int
	RunsRejected int // Stored runs whose verdict is not "ok"
}

// GetGameStats retrieves aggregated statistics for a preset.
func (s *Store) GetGameStats(preset string) (*GameStats, error) {
	stats := &GameStats{Preset: preset}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), MAX(created_at)
		 FROM scores WHERE preset = ?`,
		preset,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	err = s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN verdict != 'ok' THEN 1 ELSE 0 END), 0)
		 FROM runs WHERE preset = ?`,
		preset,
	).Scan(&stats.RunsStored, &stats.RunsRejected)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	return stats, nil
}

// parseTime handles both time.Time and the string form SQLite returns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Package storage provides SQLite-based persistence for contest results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-duel/internal/session"
)

// Store manages the SQLite database connection for result history.
type Store struct {
	db *sql.DB
}

// Result is one finished encounter.
type Result struct {
	ID         string // uuid, generated on save when empty
	Contest    string
	Player     string // "local" or the SSH user
	Difficulty float64
	Seed       int64
	Victory    bool
	DurationMs int64
	HPDelta    int
	GoldDelta  int
	CreatedAt  time.Time
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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS results (
			id TEXT PRIMARY KEY,
			contest TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT 'local',
			difficulty REAL NOT NULL,
			seed INTEGER NOT NULL,
			victory INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			hp_delta INTEGER NOT NULL DEFAULT 0,
			gold_delta INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_contest ON results(contest, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_results_player ON results(player);
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

// SaveResult records a finished encounter and returns its ID.
func (s *Store) SaveResult(r Result) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Player == "" {
		r.Player = "local"
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO results
		 (id, contest, player, difficulty, seed, victory, duration_ms, hp_delta, gold_delta, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Contest, r.Player, r.Difficulty, r.Seed, r.Victory,
		r.DurationMs, r.HPDelta, r.GoldDelta, r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save result: %w", err)
	}
	return r.ID, nil
}

// Sink returns a session.ResultSink that saves every outcome for player.
func (s *Store) Sink(player string) session.ResultSink {
	return session.SinkFunc(func(o session.Outcome) error {
		_, err := s.SaveResult(Result{
			Contest:    o.Contest,
			Player:     player,
			Difficulty: o.Difficulty,
			Seed:       o.Seed,
			Victory:    o.Victory,
			DurationMs: int64(o.DurationMs),
			HPDelta:    o.Consequences.HP,
			GoldDelta:  o.Consequences.Gold,
		})
		return err
	})
}

const selectResults = `SELECT id, contest, player, difficulty, seed, victory, duration_ms, hp_delta, gold_delta, created_at FROM results`

// RecentResults retrieves the most recent results, newest first.
// An empty contest matches every contest.
func (s *Store) RecentResults(contest string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		selectResults+`
		 WHERE ? = '' OR contest = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		contest, contest, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// ResultByID retrieves one result. A missing ID yields nil and no error.
func (s *Store) ResultByID(id string) (*Result, error) {
	r, err := scanResult(s.db.QueryRow(selectResults+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ClearResults deletes all results for the given contest.
func (s *Store) ClearResults(contest string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE contest = ?", contest)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// ContestStats contains aggregated statistics for a contest.
type ContestStats struct {
	Contest       string
	Plays         int
	Wins          int
	AvgDifficulty float64
	AvgDurationMs float64
	LastPlayed    time.Time
}

// WinRate returns the fraction of plays won, 0 when never played.
func (c ContestStats) WinRate() float64 {
	if c.Plays == 0 {
		return 0
	}
	return float64(c.Wins) / float64(c.Plays)
}

// GetContestStats retrieves aggregated statistics for a specific contest.
func (s *Store) GetContestStats(contest string) (*ContestStats, error) {
	stats := &ContestStats{Contest: contest}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(victory), 0), COALESCE(AVG(difficulty), 0),
		        COALESCE(AVG(duration_ms), 0), MAX(created_at)
		 FROM results WHERE contest = ?`,
		contest,
	).Scan(&stats.Plays, &stats.Wins, &stats.AvgDifficulty, &stats.AvgDurationMs, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get contest stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// GetAllContestStats retrieves statistics for every contest that has been played.
func (s *Store) GetAllContestStats() (map[string]*ContestStats, error) {
	rows, err := s.db.Query(
		`SELECT contest, COUNT(*), SUM(victory), AVG(difficulty), AVG(duration_ms), MAX(created_at)
		 FROM results
		 GROUP BY contest`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all contest stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ContestStats)
	for rows.Next() {
		var c ContestStats
		var lastPlayed any
		if err := rows.Scan(&c.Contest, &c.Plays, &c.Wins, &c.AvgDifficulty, &c.AvgDurationMs, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		c.LastPlayed = parseTime(lastPlayed)
		stats[c.Contest] = &c
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (Result, error) {
	var r Result
	var createdAt any
	err := row.Scan(&r.ID, &r.Contest, &r.Player, &r.Difficulty, &r.Seed, &r.Victory,
		&r.DurationMs, &r.HPDelta, &r.GoldDelta, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

const timeLayout = "2006-01-02 15:04:05.000"

// parseTime handles both time.Time and the string forms SQLite hands back.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

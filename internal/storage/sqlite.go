// Package storage persists high scores and finished runs in SQLite through
// the pure-Go modernc.org/sqlite driver, so binaries build without CGO.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const (
	defaultTopScores  = 10
	defaultRecentRuns = 20
	sqliteTimeLayout  = "2006-01-02 15:04:05"
)

// schema is applied on every Open; all statements are idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS scores (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id    TEXT    NOT NULL,
	score      INTEGER NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

CREATE TABLE IF NOT EXISTS runs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	level_id   TEXT    NOT NULL,
	score      INTEGER NOT NULL,
	lives_left INTEGER NOT NULL,
	ticks      INTEGER NOT NULL,
	cleared    INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
`

// Store is a handle to the scores database. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one saved score.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// Run is the outcome of one finished level attempt.
type Run struct {
	ID        int64
	LevelID   string
	Score     int
	LivesLeft int
	Ticks     uint64
	Cleared   bool
	CreatedAt time.Time
}

// GameStats aggregates the scores of one game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time // zero when nothing was played
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}

// Open opens the database at dbPath, creating it, its parent directories
// and the schema as needed. A leading ~ expands to the home directory.
func Open(dbPath string) (*Store, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
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
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// parseTime converts a DATETIME value, which the driver returns as
// time.Time for columns and as text for aggregates.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTimeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// insert runs an INSERT and returns the new row ID.
func (s *Store) insert(what, query string, args ...any) (int64, error) {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save %s: %w", what, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// queryAll runs query and converts every row with scan.
func queryAll[T any](db *sql.DB, scan func(*sql.Rows) (T, error), query string, args ...any) ([]T, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: query failed: %w", err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

func scanScore(rows *sql.Rows) (ScoreEntry, error) {
	var e ScoreEntry
	var createdAt any
	err := rows.Scan(&e.ID, &e.GameID, &e.Score, &createdAt)
	e.CreatedAt = parseTime(createdAt)
	return e, err
}

func scanRun(rows *sql.Rows) (Run, error) {
	var r Run
	var ticks int64
	var createdAt any
	err := rows.Scan(&r.ID, &r.LevelID, &r.Score, &r.LivesLeft, &ticks, &r.Cleared, &createdAt)
	r.Ticks = uint64(max(ticks, 0))
	r.CreatedAt = parseTime(createdAt)
	return r, err
}

// SaveScore records a score for gameID and returns its row ID.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	return s.insert("score", `INSERT INTO scores (game_id, score) VALUES (?, ?)`, gameID, score)
}

// TopScores returns the best limit scores of gameID, highest first.
// A non-positive limit means 10.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = defaultTopScores
	}
	return queryAll(s.db, scanScore,
		`SELECT id, game_id, score, created_at FROM scores
		 WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?`,
		gameID, limit)
}

// AllScores returns every score of gameID, highest first.
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	return queryAll(s.db, scanScore,
		`SELECT id, game_id, score, created_at FROM scores
		 WHERE game_id = ? ORDER BY score DESC, id ASC`,
		gameID)
}

// HighScore returns the best score of gameID, or 0 without scores.
func (s *Store) HighScore(gameID string) (int, error) {
	var best int
	err := s.db.QueryRow(`SELECT COALESCE(MAX(score), 0) FROM scores WHERE game_id = ?`, gameID).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return best, nil
}

// ClearScores deletes every score of gameID. Runs are kept.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec(`DELETE FROM scores WHERE game_id = ?`, gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GamesWithScores returns the IDs of every game that has a score, sorted.
func (s *Store) GamesWithScores() ([]string, error) {
	return queryAll(s.db, func(rows *sql.Rows) (string, error) {
		var id string
		err := rows.Scan(&id)
		return id, err
	}, `SELECT DISTINCT game_id FROM scores ORDER BY game_id`)
}

// SaveRun records a finished level attempt and returns its row ID.
func (s *Store) SaveRun(run Run) (int64, error) {
	return s.insert("run",
		`INSERT INTO runs (level_id, score, lives_left, ticks, cleared) VALUES (?, ?, ?, ?, ?)`,
		run.LevelID, run.Score, run.LivesLeft, int64(run.Ticks), run.Cleared) //#nosec G115 -- tick counts fit in int64
}

// RecentRuns returns up to limit runs of levelID, newest first. An empty
// levelID matches every level; a non-positive limit means 20.
func (s *Store) RecentRuns(levelID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultRecentRuns
	}
	return queryAll(s.db, scanRun,
		`SELECT id, level_id, score, lives_left, ticks, cleared, created_at FROM runs
		 WHERE ? = '' OR level_id = ? ORDER BY id DESC LIMIT ?`,
		levelID, levelID, limit)
}

// GetGameStats aggregates the scores of gameID. A game without scores
// yields zero stats, not an error.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), MAX(created_at)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

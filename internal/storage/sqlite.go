// Package storage provides SQLite-based persistence for play sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for session persistence.
type Store struct {
	db *sql.DB
}

// Session is one recorded play-through of a level.
type Session struct {
	ID        int64
	SessionID string // uuid assigned by the game
	LevelID   string
	Rules     string // preset or rule summary the level was played under
	Moves     int
	Completed int // tiles sent to the archive
	Outcome   string
	Journal   []string // move tokens in play order
	CreatedAt time.Time
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID      string
	Sessions     int
	Cleared      int
	BestMoves    int // fewest moves among cleared sessions, 0 if none
	AvgCompleted float64
	LastPlayed   time.Time
}

// OutcomeCleared is the outcome string stored for a won session.
const OutcomeCleared = "cleared"

const sqliteTimeLayout = "2006-01-02 15:04:05"

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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			level_id TEXT NOT NULL,
			rules TEXT NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			journal TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_level_id ON sessions(level_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_best ON sessions(level_id, outcome, moves);
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

// SaveSession records a finished or abandoned session.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(sess Session) (int64, error) {
	if sess.SessionID == "" || sess.LevelID == "" {
		return 0, errors.New("storage: session id and level id are required")
	}
	result, err := s.db.Exec(
		`INSERT INTO sessions (session_id, level_id, rules, moves, completed, outcome, journal)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.SessionID, sess.LevelID, sess.Rules, sess.Moves, sess.Completed, sess.Outcome,
		strings.Join(sess.Journal, " "),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const sessionColumns = `id, session_id, level_id, rules, moves, completed, outcome, journal, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var sess Session
	var journal string
	var createdAt any
	if err := row.Scan(&sess.ID, &sess.SessionID, &sess.LevelID, &sess.Rules,
		&sess.Moves, &sess.Completed, &sess.Outcome, &journal, &createdAt); err != nil {
		return Session{}, err
	}
	if journal != "" {
		sess.Journal = strings.Fields(journal)
	}
	sess.CreatedAt = parseTime(createdAt)
	return sess, nil
}

// parseTime handles both time.Time and string datetime values.
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

// RecentSessions retrieves the latest N sessions for the given level.
// Results are ordered newest first.
func (s *Store) RecentSessions(levelID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE level_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// BestSession returns the cleared session with the fewest moves, or nil
// if the level was never cleared.
func (s *Store) BestSession(levelID string) (*Session, error) {
	row := s.db.QueryRow(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE level_id = ? AND outcome = ?
		 ORDER BY moves ASC, id ASC
		 LIMIT 1`,
		levelID, OutcomeCleared,
	)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best session: %w", err)
	}
	return &sess, nil
}

// ClearSessions deletes all sessions for the given level.
func (s *Store) ClearSessions(levelID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

const statsQuery = `
	SELECT level_id,
	       COUNT(*),
	       COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
	       COALESCE(MIN(CASE WHEN outcome = ? THEN moves END), 0),
	       COALESCE(AVG(completed), 0),
	       MAX(created_at)
	FROM sessions`

func scanStats(row scanner) (*LevelStats, error) {
	var st LevelStats
	var lastPlayed any
	if err := row.Scan(&st.LevelID, &st.Sessions, &st.Cleared, &st.BestMoves, &st.AvgCompleted, &lastPlayed); err != nil {
		return nil, err
	}
	st.LastPlayed = parseTime(lastPlayed)
	return &st, nil
}

// LevelStats retrieves aggregated statistics for a specific level.
// A level with no sessions yields zero counts.
func (s *Store) LevelStats(levelID string) (*LevelStats, error) {
	row := s.db.QueryRow(statsQuery+` WHERE level_id = ? GROUP BY level_id`,
		OutcomeCleared, OutcomeCleared, levelID)
	st, err := scanStats(row)
	if errors.Is(err, sql.ErrNoRows) {
		return &LevelStats{LevelID: levelID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	return st, nil
}

// AllLevelStats retrieves statistics for all levels that have been played.
func (s *Store) AllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(statsQuery+` GROUP BY level_id`, OutcomeCleared, OutcomeCleared)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		st, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats[st.LevelID] = st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

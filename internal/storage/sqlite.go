// Package storage provides SQLite-based persistence for session history.
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
)

const timestampLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// Session is one finished game session.
type Session struct {
	ID           int64
	SessionID    string // uuid assigned on save when empty
	Variant      string
	Player       string // ssh user, or local user name
	Seed         int64
	PiecesLocked int
	RowsCleared  int
	Ticks        uint64
	Duration     time.Duration
	CreatedAt    time.Time
}

// VariantStats aggregates the history of one variant.
type VariantStats struct {
	Variant       string
	Sessions      int
	TotalPieces   int64
	TotalRows     int64
	TotalDuration time.Duration
	LastPlayed    time.Time
}

// ErrNotFound is returned when a requested session does not exist.
var ErrNotFound = errors.New("storage: session not found")

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
			variant TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			pieces_locked INTEGER NOT NULL DEFAULT 0,
			rows_cleared INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_variant ON sessions(variant, created_at DESC);
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

// SaveSession records a finished session and returns it with ID and
// SessionID filled in.
func (s *Store) SaveSession(sess Session) (Session, error) {
	if sess.SessionID == "" {
		sess.SessionID = uuid.NewString()
	} else if _, err := uuid.Parse(sess.SessionID); err != nil {
		return Session{}, fmt.Errorf("storage: invalid session id %q: %w", sess.SessionID, err)
	}

	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (session_id, variant, player, seed, pieces_locked, rows_cleared, ticks, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.SessionID,
		sess.Variant,
		sess.Player,
		sess.Seed,
		sess.PiecesLocked,
		sess.RowsCleared,
		int64(sess.Ticks),
		sess.Duration.Milliseconds(),
	)
	if err != nil {
		return Session{}, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return Session{}, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	sess.ID = id

	return sess, nil
}

const sessionColumns = `id, session_id, variant, player, seed, pieces_locked,
	rows_cleared, ticks, duration_ms, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var (
		sess       Session
		ticks      int64
		durationMs int64
		createdAt  any
	)
	err := row.Scan(
		&sess.ID,
		&sess.SessionID,
		&sess.Variant,
		&sess.Player,
		&sess.Seed,
		&sess.PiecesLocked,
		&sess.RowsCleared,
		&ticks,
		&durationMs,
		&createdAt,
	)
	if err != nil {
		return Session{}, err
	}
	sess.Ticks = uint64(ticks)
	sess.Duration = time.Duration(durationMs) * time.Millisecond
	sess.CreatedAt = parseTimestamp(createdAt)
	return sess, nil
}

// parseTimestamp handles both driver-decoded times and raw SQLite strings.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timestampLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// RecentSessions returns the most recent sessions, newest first.
// An empty variant returns sessions of every variant.
func (s *Store) RecentSessions(variant string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + sessionColumns + ` FROM sessions`
	args := []any{}
	if variant != "" {
		query += ` WHERE variant = ?`
		args = append(args, variant)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
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

// SessionByID retrieves a session by its uuid.
// Returns ErrNotFound if no such session exists.
func (s *Store) SessionByID(sessionID string) (Session, error) {
	row := s.db.QueryRow(
		`SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?`,
		sessionID,
	)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return sess, nil
}

// VariantStats retrieves aggregated statistics for every variant that has history.
func (s *Store) VariantStats() (map[string]VariantStats, error) {
	rows, err := s.db.Query(
		`SELECT variant, COUNT(*), SUM(pieces_locked), SUM(rows_cleared), SUM(duration_ms), MAX(created_at)
		 FROM sessions
		 GROUP BY variant`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get variant stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]VariantStats)
	for rows.Next() {
		var (
			vs         VariantStats
			durationMs int64
			lastPlayed any
		)
		if err := rows.Scan(&vs.Variant, &vs.Sessions, &vs.TotalPieces, &vs.TotalRows, &durationMs, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		vs.TotalDuration = time.Duration(durationMs) * time.Millisecond
		vs.LastPlayed = parseTimestamp(lastPlayed)
		stats[vs.Variant] = vs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearSessions deletes the history of the given variant.
func (s *Store) ClearSessions(variant string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE variant = ?", variant)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

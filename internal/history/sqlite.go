package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	// sqlite driver for the history database.
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the history database at path and runs any
// pending migrations. Use ":memory:" for an in-memory database.
func Open(path string) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("%s?_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the history database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record inserts one invocation record. A missing ID or start time is
// filled in.
func (s *SQLiteStore) Record(call *Call) error {
	if call.ID == "" {
		call.ID = uuid.New().String()
	}
	if call.StartedAt.IsZero() {
		call.StartedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO calls (id, source, procedure, params, rows_affected, status, error, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		call.ID, call.Source, call.Procedure, call.Params, call.RowsAffected,
		call.Status, call.Error, call.StartedAt.Format(time.RFC3339Nano), call.DurationMs)
	if err != nil {
		return fmt.Errorf("failed to record call: %w", err)
	}
	return nil
}

// Recent returns the most recent calls, newest first. A non-positive
// limit defaults to 20.
func (s *SQLiteStore) Recent(limit int) ([]*Call, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, source, procedure, params, rows_affected, status, error, started_at, duration_ms
		FROM calls
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var calls []*Call
	for rows.Next() {
		var c Call
		var startedAt string
		if err := rows.Scan(&c.ID, &c.Source, &c.Procedure, &c.Params, &c.RowsAffected,
			&c.Status, &c.Error, &startedAt, &c.DurationMs); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			c.StartedAt = t
		}
		calls = append(calls, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}
	return calls, nil
}

var _ Store = (*SQLiteStore)(nil)

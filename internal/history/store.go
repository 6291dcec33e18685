// Package history records stored-procedure invocations in a local
// SQLite database so past calls can be inspected from the CLI.
package history

import "time"

// Call statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Call is one recorded invocation.
type Call struct {
	ID           string
	Source       string
	Procedure    string
	Params       int
	RowsAffected int64
	Status       string
	Error        string
	StartedAt    time.Time
	DurationMs   int64
}

// Store persists invocation records.
type Store interface {
	// Record inserts one invocation record. A missing ID is generated.
	Record(call *Call) error

	// Recent returns the most recent calls, newest first.
	Recent(limit int) ([]*Call, error)

	// Close closes the store.
	Close() error
}

package models

import "time"

// Log is the DB-facing shape of a persisted log row. Details holds the
// JSON-encoded structured context, or nil when the event carried none.
type Log struct {
	ID        int64     `db:"id"`
	Level     string    `db:"level"`
	Message   string    `db:"message"`
	Details   []byte    `db:"details"`
	Timestamp time.Time `db:"timestamp"`
}

package domain

import "time"

// LogEntry is one row of the persisted audit trail. Entries are append-only;
// Details carries arbitrary structured context and may be nil.
type LogEntry struct {
	Level     string
	Message   string
	Details   map[string]any
	Timestamp time.Time
}

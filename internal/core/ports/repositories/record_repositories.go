package repositories

import (
	"context"
	"time"

	"github.com/fintrackr/finance_tracker_app/internal/core/domain"
)

// RecordReader defines read operations for record data.
type RecordReader interface {
	// ListRecords retrieves records with date in [from, to), optionally
	// narrowed to one account when accountID is non-nil.
	ListRecords(ctx context.Context, from, to time.Time, accountID *int64) ([]domain.Record, error)

	// FindRecordByID retrieves a specific record by its identifier.
	FindRecordByID(ctx context.Context, recordID domain.RecordID) (*domain.Record, error)
}

// RecordWriter defines write operations for record data.
type RecordWriter interface {
	// SaveRecord persists a new record and returns it with the
	// server-assigned id.
	SaveRecord(ctx context.Context, record domain.Record) (*domain.Record, error)

	// UpdateRecord applies a partial update and returns the updated row.
	UpdateRecord(ctx context.Context, recordID domain.RecordID, patch domain.RecordPatch) (*domain.Record, error)

	// DeleteRecord removes a record.
	DeleteRecord(ctx context.Context, recordID domain.RecordID) error
}

// RecordRepository combines all record-related repository operations.
type RecordRepository interface {
	RecordReader
	RecordWriter
}

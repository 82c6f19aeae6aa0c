package repositories

import (
	"context"

	"github.com/fintrackr/finance_tracker_app/internal/core/domain"
)

// LogRepository appends rows to the persisted audit trail. It is used only
// by the asynchronous log sink, never by request handlers directly.
type LogRepository interface {
	SaveLogEntry(ctx context.Context, entry domain.LogEntry) error
}

// RepositoryProvider bundles every repository the service layer needs.
type RepositoryProvider struct {
	AccountRepo AccountRepository
	RecordRepo  RecordRepository
	LogRepo     LogRepository
}

package pgsql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fintrackr/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/fintrackr/finance_tracker_app/internal/core/ports/repositories"
	"github.com/fintrackr/finance_tracker_app/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLogRepository struct {
	pool *pgxpool.Pool
}

func newPgxLogRepository(pool *pgxpool.Pool) portsrepo.LogRepository {
	return &PgxLogRepository{pool: pool}
}

var _ portsrepo.LogRepository = (*PgxLogRepository)(nil)

// SaveLogEntry appends one audit row. Callers treat failures as
// diagnostics, not request errors.
func (r *PgxLogRepository) SaveLogEntry(ctx context.Context, entry domain.LogEntry) error {
	row := models.Log{
		Level:     entry.Level,
		Message:   entry.Message,
		Timestamp: entry.Timestamp,
	}
	if entry.Details != nil {
		encoded, err := json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("failed to encode log details: %w", err)
		}
		row.Details = encoded
	}

	query := `
		INSERT INTO logs (level, message, details, timestamp)
		VALUES ($1, $2, $3, $4);
	`
	if _, err := r.pool.Exec(ctx, query, row.Level, row.Message, row.Details, row.Timestamp); err != nil {
		return fmt.Errorf("failed to save log entry: %w", err)
	}
	return nil
}

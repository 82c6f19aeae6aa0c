package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fintrackr/finance_tracker_app/internal/apperrors"
	"github.com/fintrackr/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/fintrackr/finance_tracker_app/internal/core/ports/repositories"
	"github.com/fintrackr/finance_tracker_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRecordRepository struct {
	pool *pgxpool.Pool
}

func newPgxRecordRepository(pool *pgxpool.Pool) portsrepo.RecordRepository {
	return &PgxRecordRepository{pool: pool}
}

var _ portsrepo.RecordRepository = (*PgxRecordRepository)(nil)

func toDomainRecord(m models.Record) domain.Record {
	return domain.Record{
		ID:        domain.RecordID(m.ID),
		Type:      domain.RecordType(m.Type),
		AccountID: m.AccountID,
		Amount:    m.Amount,
		Date:      m.Date,
	}
}

// mapRecordWriteError translates constraint violations into apperrors so
// handlers never see raw pgx errors.
func mapRecordWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign key violation: account does not exist
			return fmt.Errorf("%w: referenced account does not exist", apperrors.ErrValidation)
		case "23514": // check violation
			return fmt.Errorf("%w: record constraints violated", apperrors.ErrValidation)
		}
	}
	return err
}

// ListRecords retrieves records with date in [from, to), optionally narrowed
// to a single account.
func (r *PgxRecordRepository) ListRecords(ctx context.Context, from, to time.Time, accountID *int64) ([]domain.Record, error) {
	query := `
		SELECT id, type, account_id, amount, date
		FROM records
		WHERE date >= $1 AND date < $2
		  AND ($3::bigint IS NULL OR account_id = $3)
		ORDER BY id;
	`

	rows, err := r.pool.Query(ctx, query, from, to, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records in [%s, %s): %w", from, to, err)
	}
	defer rows.Close()

	records := []domain.Record{}
	for rows.Next() {
		var modelRec models.Record
		if err := rows.Scan(
			&modelRec.ID,
			&modelRec.Type,
			&modelRec.AccountID,
			&modelRec.Amount,
			&modelRec.Date,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		records = append(records, toDomainRecord(modelRec))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating record rows: %w", err)
	}
	return records, nil
}

// FindRecordByID retrieves a record by its ID.
func (r *PgxRecordRepository) FindRecordByID(ctx context.Context, recordID domain.RecordID) (*domain.Record, error) {
	query := `
		SELECT id, type, account_id, amount, date
		FROM records
		WHERE id = $1;
	`
	var modelRec models.Record
	err := r.pool.QueryRow(ctx, query, int64(recordID)).Scan(
		&modelRec.ID,
		&modelRec.Type,
		&modelRec.AccountID,
		&modelRec.Amount,
		&modelRec.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find record by ID %s: %w", recordID, err)
	}

	domainRec := toDomainRecord(modelRec)
	return &domainRec, nil
}

// SaveRecord inserts a new record and returns it with the server-assigned id.
func (r *PgxRecordRepository) SaveRecord(ctx context.Context, record domain.Record) (*domain.Record, error) {
	query := `
		INSERT INTO records (type, account_id, amount, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, type, account_id, amount, date;
	`
	var modelRec models.Record
	err := r.pool.QueryRow(ctx, query, string(record.Type), record.AccountID, record.Amount, record.Date).Scan(
		&modelRec.ID,
		&modelRec.Type,
		&modelRec.AccountID,
		&modelRec.Amount,
		&modelRec.Date,
	)
	if err != nil {
		if mapped := mapRecordWriteError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to save record: %w", err)
	}

	domainRec := toDomainRecord(modelRec)
	return &domainRec, nil
}

// UpdateRecord applies a partial update. Absent fields keep their stored
// value via COALESCE; zero rows returned means the record does not exist.
func (r *PgxRecordRepository) UpdateRecord(ctx context.Context, recordID domain.RecordID, patch domain.RecordPatch) (*domain.Record, error) {
	query := `
		UPDATE records
		SET type = COALESCE($2::text, type),
		    account_id = COALESCE($3::bigint, account_id),
		    amount = COALESCE($4::numeric, amount),
		    date = COALESCE($5::timestamptz, date)
		WHERE id = $1
		RETURNING id, type, account_id, amount, date;
	`
	var typeArg *string
	if patch.Type != nil {
		s := string(*patch.Type)
		typeArg = &s
	}

	var modelRec models.Record
	err := r.pool.QueryRow(ctx, query, int64(recordID), typeArg, patch.AccountID, patch.Amount, patch.Date).Scan(
		&modelRec.ID,
		&modelRec.Type,
		&modelRec.AccountID,
		&modelRec.Amount,
		&modelRec.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		if mapped := mapRecordWriteError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update record %s: %w", recordID, err)
	}

	domainRec := toDomainRecord(modelRec)
	return &domainRec, nil
}

// DeleteRecord removes a record.
func (r *PgxRecordRepository) DeleteRecord(ctx context.Context, recordID domain.RecordID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM records WHERE id = $1;`, int64(recordID))
	if err != nil {
		return fmt.Errorf("failed to delete record %s: %w", recordID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

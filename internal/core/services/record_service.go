package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrackr/finance_tracker_app/internal/apperrors"
	"github.com/fintrackr/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/fintrackr/finance_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/fintrackr/finance_tracker_app/internal/core/ports/services"
	"github.com/fintrackr/finance_tracker_app/internal/dto"
	"github.com/fintrackr/finance_tracker_app/internal/middleware"
	"github.com/fintrackr/finance_tracker_app/internal/validation"
)

type recordService struct {
	recordRepo portsrepo.RecordRepository
}

// NewRecordService builds the record service over its repository.
func NewRecordService(repo portsrepo.RecordRepository) portssvc.RecordSvcFacade {
	return &recordService{recordRepo: repo}
}

var _ portssvc.RecordSvcFacade = (*recordService)(nil)

// MonthWindow computes the half-open UTC interval covering one calendar
// month: [year-month-01T00:00:00Z, first instant of the next month).
func MonthWindow(year, month int) (from, to time.Time) {
	from = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to = from.AddDate(0, 1, 0)
	return from, to
}

// ListRecords retrieves records inside the requested month window.
func (s *recordService) ListRecords(ctx context.Context, params dto.ListRecordsParams) ([]domain.Record, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	from, to := MonthWindow(params.Year, params.Month)
	records, err := s.recordRepo.ListRecords(ctx, from, to, params.AccountID)
	if err != nil {
		logger.Error("Failed to list records from repository", slog.String("error", err.Error()),
			slog.Int("year", params.Year), slog.Int("month", params.Month))
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	logger.Debug("Records listed successfully", slog.Int("count", len(records)))
	return records, nil
}

// CreateRecord persists a new record from an already validated request.
func (s *recordService) CreateRecord(ctx context.Context, req dto.CreateRecordRequest) (*domain.Record, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	date, err := validation.ParseISO8601(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	record := domain.Record{
		Type:      req.Type,
		AccountID: req.AccountID,
		Amount:    *req.Amount,
		Date:      date,
	}

	created, err := s.recordRepo.SaveRecord(ctx, record)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to save record in repository", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Record created successfully", slog.String("record_id", created.ID.String()))
	return created, nil
}

// UpdateRecord applies a partial update. An empty update body is a
// validation error and performs no mutation. The existence pre-check keeps
// the original not-found semantics; a concurrent delete between check and
// update surfaces as not-found from the update itself.
func (s *recordService) UpdateRecord(ctx context.Context, recordID domain.RecordID, req dto.UpdateRecordRequest) (*domain.Record, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: at least one field must be provided for update", apperrors.ErrValidation)
	}

	if _, err := s.recordRepo.FindRecordByID(ctx, recordID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to check record existence", slog.String("error", err.Error()), slog.String("record_id", recordID.String()))
		}
		return nil, err
	}

	patch := domain.RecordPatch{
		Type:      req.Type,
		AccountID: req.AccountID,
		Amount:    req.Amount,
	}
	if req.Date != nil {
		date, err := validation.ParseISO8601(*req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		patch.Date = &date
	}

	updated, err := s.recordRepo.UpdateRecord(ctx, recordID, patch)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to update record in repository", slog.String("error", err.Error()), slog.String("record_id", recordID.String()))
		}
		return nil, err
	}

	logger.Info("Record updated successfully", slog.String("record_id", recordID.String()))
	return updated, nil
}

// DeleteRecord removes a record.
func (s *recordService) DeleteRecord(ctx context.Context, recordID domain.RecordID) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.recordRepo.DeleteRecord(ctx, recordID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete record in repository", slog.String("error", err.Error()), slog.String("record_id", recordID.String()))
		}
		return err
	}

	logger.Info("Record deleted successfully", slog.String("record_id", recordID.String()))
	return nil
}

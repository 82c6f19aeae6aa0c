package services

import (
	"context"

	"github.com/fintrackr/finance_tracker_app/internal/core/domain"
	"github.com/fintrackr/finance_tracker_app/internal/dto"
)

// RecordReaderSvc defines read operations for record data.
type RecordReaderSvc interface {
	// ListRecords retrieves records inside the calendar month window
	// described by params.
	ListRecords(ctx context.Context, params dto.ListRecordsParams) ([]domain.Record, error)
}

// RecordWriterSvc defines write operations for record data.
type RecordWriterSvc interface {
	// CreateRecord persists a new record.
	CreateRecord(ctx context.Context, req dto.CreateRecordRequest) (*domain.Record, error)

	// UpdateRecord applies a partial update to an existing record.
	UpdateRecord(ctx context.Context, recordID domain.RecordID, req dto.UpdateRecordRequest) (*domain.Record, error)

	// DeleteRecord removes a record.
	DeleteRecord(ctx context.Context, recordID domain.RecordID) error
}

// RecordSvcFacade combines all record-related service interfaces.
type RecordSvcFacade interface {
	RecordReaderSvc
	RecordWriterSvc
}

package dto

import (
	"github.com/fintrackr/finance_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRecordRequest defines the data needed to create a new record.
// Date stays a string through binding so the strict ISO-8601 rule can run
// before any parsing.
type CreateRecordRequest struct {
	Type      domain.RecordType `json:"type" validate:"required,oneof=INCOME EXPENSE"`
	AccountID int64             `json:"accountId" validate:"required,gt=0"`
	Amount    *decimal.Decimal  `json:"amount" validate:"required,gt=0"`
	Date      string            `json:"date" validate:"required,iso8601"`
}

// UpdateRecordRequest defines the partial-update payload for a record.
// Every field is optional but at least one must be present.
type UpdateRecordRequest struct {
	Type      *domain.RecordType `json:"type" validate:"omitempty,oneof=INCOME EXPENSE"`
	AccountID *int64             `json:"accountId" validate:"omitempty,gt=0"`
	Amount    *decimal.Decimal   `json:"amount" validate:"omitempty,gt=0"`
	Date      *string            `json:"date" validate:"omitempty,iso8601"`
}

// IsEmpty reports whether the update carries no fields at all.
func (r UpdateRecordRequest) IsEmpty() bool {
	return r.Type == nil && r.AccountID == nil && r.Amount == nil && r.Date == nil
}

// ListRecordsParams defines the query filter for listing records: a calendar
// month window, optionally narrowed to one account.
type ListRecordsParams struct {
	Year      int    `form:"year" validate:"required,min=1970"`
	Month     int    `form:"month" validate:"required,min=1,max=12"`
	AccountID *int64 `form:"accountId" validate:"omitempty,gt=0"`
}

// RecordResponse defines the data returned for a record. The id serializes
// as a JSON string via domain.RecordID.
type RecordResponse struct {
	ID        domain.RecordID   `json:"id"`
	Type      domain.RecordType `json:"type"`
	AccountID int64             `json:"accountId"`
	Amount    decimal.Decimal   `json:"amount"`
	Date      string            `json:"date"`
}

// ToRecordResponse converts a domain record to its DTO.
func ToRecordResponse(rec *domain.Record) RecordResponse {
	return RecordResponse{
		ID:        rec.ID,
		Type:      rec.Type,
		AccountID: rec.AccountID,
		Amount:    rec.Amount,
		Date:      rec.Date.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

// ToListRecordResponse converts a slice of domain records to DTOs.
func ToListRecordResponse(records []domain.Record) []RecordResponse {
	res := make([]RecordResponse, len(records))
	for i := range records {
		res[i] = ToRecordResponse(&records[i])
	}
	return res
}

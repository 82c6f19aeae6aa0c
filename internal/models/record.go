package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordType mirrors the CHECK constraint on records.type.
type RecordType string

const (
	Income  RecordType = "INCOME"
	Expense RecordType = "EXPENSE"
)

// Record is the DB-facing shape of a record row.
type Record struct {
	ID        int64           `db:"id"`
	Type      RecordType      `db:"type"`
	AccountID int64           `db:"account_id"`
	Amount    decimal.Decimal `db:"amount"`
	Date      time.Time       `db:"date"`
}

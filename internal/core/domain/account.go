package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a named balance bucket that owns zero or more records.
// This is the primary representation used by services.
type Account struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	DefaultBalance decimal.Decimal `json:"defaultBalance"`
}

// AccountWithTotals is an Account augmented with aggregate sums of its
// records, computed on read. Missing records count as zero, never null.
type AccountWithTotals struct {
	Account
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
}

// AccountPatch carries the fields of a partial account update. Nil means
// "leave unchanged".
type AccountPatch struct {
	Name           *string
	DefaultBalance *decimal.Decimal
}

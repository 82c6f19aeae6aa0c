package models

import (
	"github.com/shopspring/decimal"
)

// Account is the DB-facing shape of an account row.
type Account struct {
	ID             int64           `db:"id"`
	Name           string          `db:"name"`
	DefaultBalance decimal.Decimal `db:"default_balance"`
}

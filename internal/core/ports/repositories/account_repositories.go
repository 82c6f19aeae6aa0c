package repositories

import (
	"context"

	"github.com/fintrackr/finance_tracker_app/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// ListAccountsWithTotals retrieves every account together with its
	// aggregated income and expense totals, computed store-side in a
	// single query. Accounts without records report zero totals.
	ListAccountsWithTotals(ctx context.Context) ([]domain.AccountWithTotals, error)

	// FindAccountByID retrieves a specific account by its identifier.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account and returns it with the
	// server-assigned id.
	SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error)

	// UpdateAccount applies a partial update and returns the updated row.
	UpdateAccount(ctx context.Context, accountID int64, patch domain.AccountPatch) (*domain.Account, error)

	// DeleteAccount removes an account; its records go with it.
	DeleteAccount(ctx context.Context, accountID int64) error
}

// AccountRepository combines all account-related repository operations.
type AccountRepository interface {
	AccountReader
	AccountWriter
}

package dto

import (
	"github.com/fintrackr/finance_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// DefaultBalance is a pointer so an absent field is distinguishable from an
// explicit zero balance.
type CreateAccountRequest struct {
	Name           string           `json:"name" validate:"required"`
	DefaultBalance *decimal.Decimal `json:"defaultBalance" validate:"required,gte=0"`
}

// UpdateAccountRequest defines the partial-update payload for an account.
// Every field is optional but at least one must be present.
type UpdateAccountRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=1"`
	DefaultBalance *decimal.Decimal `json:"defaultBalance" validate:"omitempty,gte=0"`
}

// IsEmpty reports whether the update carries no fields at all.
func (r UpdateAccountRequest) IsEmpty() bool {
	return r.Name == nil && r.DefaultBalance == nil
}

// AccountResponse defines the data returned for an account. Totals are
// always present; a freshly created account reports them as zero.
type AccountResponse struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	DefaultBalance decimal.Decimal `json:"defaultBalance"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpense   decimal.Decimal `json:"totalExpense"`
}

// ToAccountResponse converts an aggregated domain account to its DTO.
func ToAccountResponse(acc *domain.AccountWithTotals) AccountResponse {
	return AccountResponse{
		ID:             acc.ID,
		Name:           acc.Name,
		DefaultBalance: acc.DefaultBalance,
		TotalIncome:    acc.TotalIncome,
		TotalExpense:   acc.TotalExpense,
	}
}

// AccountData is the bare account shape without totals, returned by
// partial updates where no aggregation runs.
type AccountData struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	DefaultBalance decimal.Decimal `json:"defaultBalance"`
}

// ToAccountData converts a domain account to its bare DTO.
func ToAccountData(acc *domain.Account) AccountData {
	return AccountData{
		ID:             acc.ID,
		Name:           acc.Name,
		DefaultBalance: acc.DefaultBalance,
	}
}

// ToListAccountResponse converts a slice of aggregated accounts to DTOs.
func ToListAccountResponse(accounts []domain.AccountWithTotals) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrackr/finance_tracker_app/internal/apperrors"
	"github.com/fintrackr/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/fintrackr/finance_tracker_app/internal/core/ports/repositories"
	"github.com/fintrackr/finance_tracker_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		ID:             m.ID,
		Name:           m.Name,
		DefaultBalance: m.DefaultBalance,
	}
}

// ListAccountsWithTotals aggregates income and expense sums per account in a
// single join+group-by, so accounts without records report zero totals
// instead of NULL.
func (r *PgxAccountRepository) ListAccountsWithTotals(ctx context.Context) ([]domain.AccountWithTotals, error) {
	query := `
		SELECT
			a.id, a.name, a.default_balance,
			COALESCE(SUM(CASE WHEN r.type = 'INCOME' THEN r.amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN r.type = 'EXPENSE' THEN r.amount ELSE 0 END), 0) AS total_expense
		FROM accounts a
		LEFT JOIN records r ON r.account_id = a.id
		GROUP BY a.id
		ORDER BY a.id;
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts with totals: %w", err)
	}
	defer rows.Close()

	accounts := []domain.AccountWithTotals{}
	for rows.Next() {
		var modelAcc models.Account
		var totalIncome, totalExpense decimal.Decimal
		if err := rows.Scan(
			&modelAcc.ID,
			&modelAcc.Name,
			&modelAcc.DefaultBalance,
			&totalIncome,
			&totalExpense,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account totals row: %w", err)
		}
		accounts = append(accounts, domain.AccountWithTotals{
			Account:      toDomainAccount(modelAcc),
			TotalIncome:  totalIncome,
			TotalExpense: totalExpense,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account totals rows: %w", err)
	}
	return accounts, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `
		SELECT id, name, default_balance
		FROM accounts
		WHERE id = $1;
	`
	var modelAcc models.Account
	err := r.pool.QueryRow(ctx, query, accountID).Scan(
		&modelAcc.ID,
		&modelAcc.Name,
		&modelAcc.DefaultBalance,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %d: %w", accountID, err)
	}

	domainAcc := toDomainAccount(modelAcc)
	return &domainAcc, nil
}

// SaveAccount inserts a new account and returns it with the server-assigned id.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (name, default_balance)
		VALUES ($1, $2)
		RETURNING id, name, default_balance;
	`
	var modelAcc models.Account
	err := r.pool.QueryRow(ctx, query, account.Name, account.DefaultBalance).Scan(
		&modelAcc.ID,
		&modelAcc.Name,
		&modelAcc.DefaultBalance,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23514" { // check violation
			return nil, fmt.Errorf("%w: account constraints violated", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to save account %q: %w", account.Name, err)
	}

	domainAcc := toDomainAccount(modelAcc)
	return &domainAcc, nil
}

// UpdateAccount applies a partial update. Absent fields keep their stored
// value via COALESCE; zero rows returned means the account does not exist.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, accountID int64, patch domain.AccountPatch) (*domain.Account, error) {
	query := `
		UPDATE accounts
		SET name = COALESCE($2::text, name),
		    default_balance = COALESCE($3::numeric, default_balance)
		WHERE id = $1
		RETURNING id, name, default_balance;
	`
	var modelAcc models.Account
	err := r.pool.QueryRow(ctx, query, accountID, patch.Name, patch.DefaultBalance).Scan(
		&modelAcc.ID,
		&modelAcc.Name,
		&modelAcc.DefaultBalance,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23514" {
			return nil, fmt.Errorf("%w: account constraints violated", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to update account %d: %w", accountID, err)
	}

	domainAcc := toDomainAccount(modelAcc)
	return &domainAcc, nil
}

// DeleteAccount removes an account. The records foreign key cascades, so
// associated records are deleted in the same store operation.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID int64) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %d: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

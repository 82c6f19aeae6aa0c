package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fintrackr/finance_tracker_app/internal/apperrors"
	"github.com/fintrackr/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/fintrackr/finance_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/fintrackr/finance_tracker_app/internal/core/ports/services"
	"github.com/fintrackr/finance_tracker_app/internal/dto"
	"github.com/fintrackr/finance_tracker_app/internal/middleware"
)

type accountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService builds the account service over its repository.
func NewAccountService(repo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// ListAccounts retrieves every account with aggregated totals.
func (s *accountService) ListAccounts(ctx context.Context) ([]domain.AccountWithTotals, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccountsWithTotals(ctx)
	if err != nil {
		logger.Error("Failed to list accounts from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	logger.Debug("Accounts listed successfully", slog.Int("count", len(accounts)))
	return accounts, nil
}

// CreateAccount persists a new account from an already validated request.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account := domain.Account{
		Name:           req.Name,
		DefaultBalance: *req.DefaultBalance,
	}

	created, err := s.accountRepo.SaveAccount(ctx, account)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to save account in repository", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Account created successfully", slog.Int64("account_id", created.ID))
	return created, nil
}

// UpdateAccount applies a partial update. An empty update body is a
// validation error and performs no mutation.
func (s *accountService) UpdateAccount(ctx context.Context, accountID int64, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: at least one field must be provided for update", apperrors.ErrValidation)
	}

	patch := domain.AccountPatch{
		Name:           req.Name,
		DefaultBalance: req.DefaultBalance,
	}

	updated, err := s.accountRepo.UpdateAccount(ctx, accountID, patch)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to update account in repository", slog.String("error", err.Error()), slog.Int64("account_id", accountID))
		}
		return nil, err
	}

	logger.Info("Account updated successfully", slog.Int64("account_id", accountID))
	return updated, nil
}

// DeleteAccount removes an account; associated records cascade in the store.
func (s *accountService) DeleteAccount(ctx context.Context, accountID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete account in repository", slog.String("error", err.Error()), slog.Int64("account_id", accountID))
		}
		return err
	}

	logger.Info("Account deleted successfully", slog.Int64("account_id", accountID))
	return nil
}

package services_test

import (
	"context"
	"testing"

	"github.com/fintrackr/finance_tracker_app/internal/apperrors"
	"github.com/fintrackr/finance_tracker_app/internal/core/domain"
	"github.com/fintrackr/finance_tracker_app/internal/core/services"
	portssvc "github.com/fintrackr/finance_tracker_app/internal/core/ports/services"
	"github.com/fintrackr/finance_tracker_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAccountRepository is a mock type for the AccountRepository interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) ListAccountsWithTotals(ctx context.Context) ([]domain.AccountWithTotals, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountWithTotals), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, accountID int64, patch domain.AccountPatch) (*domain.Account, error) {
	args := m.Called(ctx, accountID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID int64) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

func (suite *AccountServiceTestSuite) TestListAccounts_Success() {
	ctx := context.Background()
	expected := []domain.AccountWithTotals{
		{
			Account:      domain.Account{ID: 1, Name: "Checking", DefaultBalance: decimal.RequireFromString("100")},
			TotalIncome:  decimal.RequireFromString("50"),
			TotalExpense: decimal.Zero,
		},
	}

	suite.mockRepo.On("ListAccountsWithTotals", ctx).Return(expected, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx)

	suite.Require().NoError(err)
	suite.Equal(expected, accounts)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("ListAccountsWithTotals", ctx).Return(nil, assert.AnError).Once()

	accounts, err := suite.service.ListAccounts(ctx)

	suite.Require().Error(err)
	suite.Nil(accounts)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	balance := decimal.RequireFromString("100.50")
	req := dto.CreateAccountRequest{Name: "Savings", DefaultBalance: &balance}
	saved := &domain.Account{ID: 3, Name: "Savings", DefaultBalance: balance}

	suite.mockRepo.On("SaveAccount", ctx, domain.Account{Name: "Savings", DefaultBalance: balance}).Return(saved, nil).Once()

	created, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(int64(3), created.ID)
	suite.Equal("Savings", created.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_EmptyBodyRejected() {
	ctx := context.Background()

	updated, err := suite.service.UpdateAccount(ctx, 1, dto.UpdateAccountRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(updated)
	// No mutation may happen for an empty update.
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_Success() {
	ctx := context.Background()
	name := "Renamed"
	req := dto.UpdateAccountRequest{Name: &name}
	updated := &domain.Account{ID: 1, Name: "Renamed", DefaultBalance: decimal.Zero}

	suite.mockRepo.On("UpdateAccount", ctx, int64(1), domain.AccountPatch{Name: &name}).Return(updated, nil).Once()

	got, err := suite.service.UpdateAccount(ctx, 1, req)

	suite.Require().NoError(err)
	suite.Equal("Renamed", got.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NotFound() {
	ctx := context.Background()
	name := "Renamed"

	suite.mockRepo.On("UpdateAccount", ctx, int64(99), mock.AnythingOfType("domain.AccountPatch")).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateAccount(ctx, 99, dto.UpdateAccountRequest{Name: &name})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Success() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteAccount", ctx, int64(1)).Return(nil).Once()

	suite.Require().NoError(suite.service.DeleteAccount(ctx, 1))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteAccount", ctx, int64(99)).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteAccount(ctx, 99)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

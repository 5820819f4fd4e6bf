package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jomonylw/flow-balance-sub006/internal/apperrors"
	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	portssvc "github.com/jomonylw/flow-balance-sub006/internal/core/ports/services"
	"github.com/jomonylw/flow-balance-sub006/internal/core/services"
	"github.com/jomonylw/flow-balance-sub006/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockCurrencyRepo)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Name:         "Checking",
		AccountType:  "ASSET",
		CurrencyCode: "USD",
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").
		Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == req.Name && a.AccountType == domain.Asset && a.CurrencyCode == "USD" && a.IsActive
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal(domain.Asset, account.AccountType)
	suite.Equal(creatorUserID, account.UserID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownCurrencyRejected() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:         "Checking",
		AccountType:  "ASSET",
		CurrencyCode: "XXX",
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "XXX").
		Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, userID, accountID).
		Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, userID, accountID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccounts_NilBecomesEmptySlice() {
	ctx := context.Background()
	userID := uuid.NewString()
	var none []domain.Account

	suite.mockAccountRepo.On("ListAccountsByUser", ctx, userID).Return(none, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, userID)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jomonylw/flow-balance-sub006/internal/apperrors"
	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	portssvc "github.com/jomonylw/flow-balance-sub006/internal/core/ports/services"
	"github.com/jomonylw/flow-balance-sub006/internal/core/services"
	"github.com/jomonylw/flow-balance-sub006/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	ledger          *fakeLedgerRepo
	service         portssvc.TransactionSvc

	userID string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.ledger = &fakeLedgerRepo{}
	balance := services.NewBalanceService(suite.mockAccountRepo, suite.ledger)
	suite.service = services.NewTransactionService(suite.mockAccountRepo, suite.ledger, balance)

	suite.userID = uuid.NewString()
}

func (suite *TransactionServiceTestSuite) newAccount(accountType domain.AccountType, currencyCode string) *domain.Account {
	account := &domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       suite.userID,
		Name:         "Txn Account",
		AccountType:  accountType,
		CurrencyCode: currencyCode,
		IsActive:     true,
	}
	suite.mockAccountRepo.On("FindAccountByID", context.Background(), suite.userID, account.AccountID).
		Return(account, nil)
	return account
}

func (suite *TransactionServiceTestSuite) seedTxn(accountID string, txnType domain.TransactionType, amount float64, currencyCode string, date time.Time) {
	suite.ledger.txns = append(suite.ledger.txns, domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        suite.userID,
		AccountID:     accountID,
		Type:          txnType,
		Amount:        decimal.NewFromFloat(amount),
		CurrencyCode:  currencyCode,
		Date:          date,
		AuditFields:   domain.AuditFields{CreatedAt: time.Now()},
	})
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_CheckpointComputesPriorBalanceAndDelta() {
	account := suite.newAccount(domain.Asset, "USD")
	suite.seedTxn(account.AccountID, domain.TxnBalance, 1000, "USD", day(2024, 1, 1))
	suite.seedTxn(account.AccountID, domain.TxnIncome, 200, "USD", day(2024, 1, 10))

	req := dto.CreateTransactionRequest{
		AccountID:    account.AccountID,
		Type:         "BALANCE",
		Amount:       decimal.NewFromInt(1300),
		CurrencyCode: "USD",
		Date:         day(2024, 1, 20),
	}

	txn, err := suite.service.CreateTransaction(context.Background(), req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Require().NotNil(txn.PriorBalance)
	suite.Require().NotNil(txn.Delta)
	suite.True(txn.PriorBalance.Equal(decimal.NewFromInt(1200)), "prior %s", txn.PriorBalance)
	suite.True(txn.Delta.Equal(decimal.NewFromInt(100)), "delta %s", txn.Delta)

	// The entry reached the ledger with the structured fields attached.
	suite.Require().Len(suite.ledger.txns, 3)
	stored := suite.ledger.txns[2]
	suite.Require().NotNil(stored.PriorBalance)
	suite.True(stored.PriorBalance.Equal(decimal.NewFromInt(1200)))
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_CheckpointNegativeDelta() {
	account := suite.newAccount(domain.Asset, "USD")
	suite.seedTxn(account.AccountID, domain.TxnBalance, 1000, "USD", day(2024, 1, 1))

	req := dto.CreateTransactionRequest{
		AccountID:    account.AccountID,
		Type:         "BALANCE",
		Amount:       decimal.NewFromInt(700),
		CurrencyCode: "USD",
		Date:         day(2024, 1, 20),
	}

	txn, err := suite.service.CreateTransaction(context.Background(), req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn.Delta)
	suite.True(txn.Delta.Equal(decimal.NewFromInt(-300)), "delta %s", txn.Delta)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_FirstCheckpointHasNoPriorState() {
	account := suite.newAccount(domain.Asset, "USD")

	req := dto.CreateTransactionRequest{
		AccountID:    account.AccountID,
		Type:         "BALANCE",
		Amount:       decimal.NewFromInt(1000),
		CurrencyCode: "USD",
		Date:         day(2024, 1, 1),
	}

	txn, err := suite.service.CreateTransaction(context.Background(), req, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(txn.PriorBalance)
	suite.Nil(txn.Delta)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NegativeAmountRejected() {
	account := suite.newAccount(domain.Asset, "USD")

	req := dto.CreateTransactionRequest{
		AccountID:    account.AccountID,
		Type:         "INCOME",
		Amount:       decimal.NewFromInt(-5),
		CurrencyCode: "USD",
		Date:         day(2024, 1, 1),
	}

	txn, err := suite.service.CreateTransaction(context.Background(), req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Empty(suite.ledger.txns)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_CheckpointOnFlowAccountRejected() {
	account := suite.newAccount(domain.Expense, "USD")

	req := dto.CreateTransactionRequest{
		AccountID:    account.AccountID,
		Type:         "BALANCE",
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "USD",
		Date:         day(2024, 1, 1),
	}

	txn, err := suite.service.CreateTransaction(context.Background(), req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_DateTruncatedToDay() {
	account := suite.newAccount(domain.Income, "USD")

	req := dto.CreateTransactionRequest{
		AccountID:    account.AccountID,
		Type:         "INCOME",
		Amount:       decimal.NewFromInt(50),
		CurrencyCode: "USD",
		Date:         time.Date(2024, 1, 10, 17, 45, 12, 0, time.UTC),
	}

	txn, err := suite.service.CreateTransaction(context.Background(), req, suite.userID)

	suite.Require().NoError(err)
	suite.True(txn.Date.Equal(day(2024, 1, 10)))
}

func (suite *TransactionServiceTestSuite) TestListTransactions_EmptyLedgerReturnsEmptySlice() {
	account := suite.newAccount(domain.Asset, "USD")

	txns, err := suite.service.ListTransactions(context.Background(), suite.userID, account.AccountID, day(2024, 1, 1), day(2024, 12, 31))

	suite.Require().NoError(err)
	suite.NotNil(txns)
	suite.Empty(txns)
}

func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BalanceServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	ledger          *fakeLedgerRepo
	service         portssvc.BalanceSvc

	userID string
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.ledger = &fakeLedgerRepo{}
	suite.service = services.NewBalanceService(suite.mockAccountRepo, suite.ledger)

	suite.userID = uuid.NewString()
}

func (suite *BalanceServiceTestSuite) newAccount(accountType domain.AccountType, currencyCode string) *domain.Account {
	account := &domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       suite.userID,
		Name:         "Test Account",
		AccountType:  accountType,
		CurrencyCode: currencyCode,
		IsActive:     true,
	}
	suite.mockAccountRepo.On("FindAccountByID", context.Background(), suite.userID, account.AccountID).
		Return(account, nil)
	return account
}

func (suite *BalanceServiceTestSuite) addTxn(accountID string, txnType domain.TransactionType, amount float64, currencyCode string, date time.Time) {
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

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (suite *BalanceServiceTestSuite) TestBalanceAsOf_CheckpointOnly() {
	account := suite.newAccount(domain.Asset, "USD")
	suite.addTxn(account.AccountID, domain.TxnBalance, 1000, "USD", day(2024, 1, 1))

	balance, err := suite.service.BalanceAsOf(context.Background(), suite.userID, account.AccountID, "USD", day(2024, 1, 1))

	suite.Require().NoError(err)
	suite.Require().NotNil(balance)
	suite.True(balance.Equal(decimal.NewFromInt(1000)))
}

func (suite *BalanceServiceTestSuite) TestBalanceAsOf_CheckpointPlusDeltas() {
	account := suite.newAccount(domain.Asset, "USD")
	suite.addTxn(account.AccountID, domain.TxnBalance, 1000, "USD", day(2024, 1, 1))
	suite.addTxn(account.AccountID, domain.TxnIncome, 200, "USD", day(2024, 1, 10))
	suite.addTxn(account.AccountID, domain.TxnExpense, 50, "USD", day(2024, 1, 15))

	balance, err := suite.service.BalanceAsOf(context.Background(), suite.userID, account.AccountID, "USD", day(2024, 1, 20))

	suite.Require().NoError(err)
	suite.Require().NotNil(balance)
	suite.True(balance.Equal(decimal.NewFromInt(1150)), "got %s", balance)
}

func (suite *BalanceServiceTestSuite) TestBalanceAsOf_CheckpointDayDeltasAlreadyReflected() {
	account := suite.newAccount(domain.Asset, "USD")
	suite.addTxn(account.AccountID, domain.TxnBalance, 1000, "USD", day(2024, 1, 1))
	// Same-day delta: the checkpoint amount already includes it.
	suite.addTxn(account.AccountID, domain.TxnIncome, 500, "USD", day(2024, 1, 1))

	balance, err := suite.service.BalanceAsOf(context.Background(), suite.userID, account.AccountID, "USD", day(2024, 1, 5))

	suite.Require().NoError(err)
	suite.Require().NotNil(balance)
	suite.True(balance.Equal(decimal.NewFromInt(1000)), "got %s", balance)
}

func (suite *BalanceServiceTestSuite) TestBalanceAsOf_NoCheckpointMeansNoData() {
	account := suite.newAccount(domain.Asset, "USD")
	suite.addTxn(account.AccountID, domain.TxnIncome, 200, "USD", day(2024, 1, 10))

	balance, err := suite.service.BalanceAsOf(context.Background(), suite.userID, account.AccountID, "USD", day(2024, 1, 20))

	suite.Require().NoError(err)
	suite.Nil(balance, "deltas without a checkpoint must not produce a balance")
}

func (suite *BalanceServiceTestSuite) TestBalanceAsOf_LaterCheckpointReanchors() {
	account := suite.newAccount(domain.Asset, "USD")
	suite.addTxn(account.AccountID, domain.TxnBalance, 1000, "USD", day(2024, 1, 1))
	suite.addTxn(account.AccountID, domain.TxnIncome, 500, "USD", day(2024, 1, 5))
	suite.addTxn(account.AccountID, domain.TxnBalance, 2000, "USD", day(2024, 1, 10))
	suite.addTxn(account.AccountID, domain.TxnExpense, 100, "USD", day(2024, 1, 15))

	balance, err := suite.service.BalanceAsOf(context.Background(), suite.userID, account.AccountID, "USD", day(2024, 1, 20))

	suite.Require().NoError(err)
	suite.Require().NotNil(balance)
	suite.True(balance.Equal(decimal.NewFromInt(1900)), "got %s", balance)
}

func (suite *BalanceServiceTestSuite) TestBalanceAsOf_OtherCurrencyEntriesIgnored() {
	account := suite.newAccount(domain.Asset, "USD")
	suite.addTxn(account.AccountID, domain.TxnBalance, 1000, "USD", day(2024, 1, 1))
	suite.addTxn(account.AccountID, domain.TxnIncome, 300, "EUR", day(2024, 1, 10))

	balance, err := suite.service.BalanceAsOf(context.Background(), suite.userID, account.AccountID, "USD", day(2024, 1, 20))

	suite.Require().NoError(err)
	suite.Require().NotNil(balance)
	suite.True(balance.Equal(decimal.NewFromInt(1000)))
}

func (suite *BalanceServiceTestSuite) TestBalanceAsOf_LiabilityUsesSameRule() {
	account := suite.newAccount(domain.Liability, "USD")
	suite.addTxn(account.AccountID, domain.TxnBalance, 5000, "USD", day(2024, 1, 1))
	suite.addTxn(account.AccountID, domain.TxnIncome, 100, "USD", day(2024, 1, 10))
	suite.addTxn(account.AccountID, domain.TxnExpense, 400, "USD", day(2024, 1, 12))

	balance, err := suite.service.BalanceAsOf(context.Background(), suite.userID, account.AccountID, "USD", day(2024, 1, 20))

	suite.Require().NoError(err)
	suite.Require().NotNil(balance)
	// INCOME adds and EXPENSE subtracts for liabilities exactly as for assets.
	suite.True(balance.Equal(decimal.NewFromInt(4700)), "got %s", balance)
}

func (suite *BalanceServiceTestSuite) TestBalanceAsOf_FlowAccountRejected() {
	account := suite.newAccount(domain.Income, "USD")

	balance, err := suite.service.BalanceAsOf(context.Background(), suite.userID, account.AccountID, "USD", day(2024, 1, 20))

	suite.Require().Error(err)
	suite.Nil(balance)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BalanceServiceTestSuite) TestBalancesAsOf_PerCurrency() {
	account := suite.newAccount(domain.Asset, "USD")
	suite.addTxn(account.AccountID, domain.TxnBalance, 1000, "USD", day(2024, 1, 1))
	suite.addTxn(account.AccountID, domain.TxnBalance, 800, "EUR", day(2024, 1, 2))
	suite.addTxn(account.AccountID, domain.TxnIncome, 50, "EUR", day(2024, 1, 10))
	// JPY has deltas but no checkpoint and must be omitted.
	suite.addTxn(account.AccountID, domain.TxnIncome, 9000, "JPY", day(2024, 1, 3))

	balances, err := suite.service.BalancesAsOf(context.Background(), suite.userID, account.AccountID, day(2024, 1, 20))

	suite.Require().NoError(err)
	suite.Len(balances, 2)
	suite.True(balances["USD"].Equal(decimal.NewFromInt(1000)))
	suite.True(balances["EUR"].Equal(decimal.NewFromInt(850)))
	suite.NotContains(balances, "JPY")
}

func (suite *BalanceServiceTestSuite) TestSumInPeriod_IncomeAccount() {
	account := suite.newAccount(domain.Income, "USD")
	suite.addTxn(account.AccountID, domain.TxnIncome, 100, "USD", day(2024, 2, 1))
	suite.addTxn(account.AccountID, domain.TxnIncome, 250, "USD", day(2024, 2, 15))
	// Outside the period.
	suite.addTxn(account.AccountID, domain.TxnIncome, 999, "USD", day(2024, 3, 1))
	// Wrong type for an income account.
	suite.addTxn(account.AccountID, domain.TxnExpense, 40, "USD", day(2024, 2, 10))

	total, err := suite.service.SumInPeriod(context.Background(), suite.userID, account.AccountID, day(2024, 2, 1), day(2024, 2, 29))

	suite.Require().NoError(err)
	suite.True(total.Equal(decimal.NewFromInt(350)), "got %s", total)
}

func (suite *BalanceServiceTestSuite) TestSumInPeriod_BoundsInclusive() {
	account := suite.newAccount(domain.Expense, "USD")
	suite.addTxn(account.AccountID, domain.TxnExpense, 10, "USD", day(2024, 2, 1))
	suite.addTxn(account.AccountID, domain.TxnExpense, 20, "USD", day(2024, 2, 29))

	total, err := suite.service.SumInPeriod(context.Background(), suite.userID, account.AccountID, day(2024, 2, 1), day(2024, 2, 29))

	suite.Require().NoError(err)
	suite.True(total.Equal(decimal.NewFromInt(30)))
}

func (suite *BalanceServiceTestSuite) TestSumInPeriod_StockAccountRejected() {
	account := suite.newAccount(domain.Asset, "USD")

	_, err := suite.service.SumInPeriod(context.Background(), suite.userID, account.AccountID, day(2024, 2, 1), day(2024, 2, 29))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BalanceServiceTestSuite) TestCumulativeSums_PrefixSums() {
	account := suite.newAccount(domain.Income, "USD")
	suite.addTxn(account.AccountID, domain.TxnIncome, 100, "USD", day(2024, 1, 10))
	suite.addTxn(account.AccountID, domain.TxnIncome, 200, "USD", day(2024, 2, 10))
	suite.addTxn(account.AccountID, domain.TxnIncome, 300, "USD", day(2024, 3, 10))

	intervals := []domain.Interval{
		{Start: day(2024, 1, 1), End: day(2024, 1, 31)},
		{Start: day(2024, 2, 1), End: day(2024, 2, 29)},
		{Start: day(2024, 3, 1), End: day(2024, 3, 31)},
	}

	sums, err := suite.service.CumulativeSums(context.Background(), suite.userID, account.AccountID, intervals)

	suite.Require().NoError(err)
	suite.Require().Len(sums, 3)
	suite.True(sums[0].Equal(decimal.NewFromInt(100)))
	suite.True(sums[1].Equal(decimal.NewFromInt(300)))
	suite.True(sums[2].Equal(decimal.NewFromInt(600)))
}

func TestBalanceService(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}

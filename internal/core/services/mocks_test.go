package services_test

import (
	"context"
	"sort"
	"time"

	"github.com/jomonylw/flow-balance-sub006/internal/apperrors"
	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock CurrencyRepository ---

type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListUserCurrencyCodes(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Mock ExchangeRateRepository ---

type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindLatestRateBefore(ctx context.Context, userID, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, userID, fromCurrencyCode, toCurrencyCode, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListPrimaryRates(ctx context.Context, userID string) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListAutoRates(ctx context.Context, userID string) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListUserIDsWithPrimaryRates(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) SaveExchangeRates(ctx context.Context, rates []domain.ExchangeRate) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) DeleteExchangeRate(ctx context.Context, userID, exchangeRateID string) error {
	args := m.Called(ctx, userID, exchangeRateID)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) ReplaceAutoRates(ctx context.Context, userID string, rates []domain.ExchangeRate) error {
	args := m.Called(ctx, userID, rates)
	return args.Error(0)
}

// --- Mock CurrencyReaderSvc ---

type MockCurrencyReaderSvc struct {
	mock.Mock
}

func (m *MockCurrencyReaderSvc) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyReaderSvc) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock RateDerivationSvc ---

type MockRateDerivationSvc struct {
	mock.Mock
}

func (m *MockRateDerivationSvc) DeriveRates(ctx context.Context, userID string, effectiveDate time.Time) (domain.DerivationResult, error) {
	args := m.Called(ctx, userID, effectiveDate)
	return args.Get(0).(domain.DerivationResult), args.Error(1)
}

func (m *MockRateDerivationSvc) DeriveForAllUsers(ctx context.Context, effectiveDate time.Time) error {
	args := m.Called(ctx, effectiveDate)
	return args.Error(0)
}

// --- Fake LedgerRepository ---

// fakeLedgerRepo is an in-memory ledger honoring the repository contract:
// range queries are inclusive and ordered by date then creation time, and the
// checkpoint lookup returns the latest BALANCE row on or before the date.
// Stateful reconstruction tests read much better against it than against
// per-call mock expectations.
type fakeLedgerRepo struct {
	txns []domain.Transaction
}

func (f *fakeLedgerRepo) ListTransactionsInRange(ctx context.Context, accountID string, start, end time.Time) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, txn := range f.txns {
		if txn.AccountID != accountID {
			continue
		}
		if txn.Date.Before(start) || txn.Date.After(end) {
			continue
		}
		out = append(out, txn)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeLedgerRepo) FindLatestCheckpointBefore(ctx context.Context, accountID, currencyCode string, asOf time.Time) (*domain.Transaction, error) {
	var latest *domain.Transaction
	for i := range f.txns {
		txn := f.txns[i]
		if txn.AccountID != accountID || txn.CurrencyCode != currencyCode {
			continue
		}
		if !txn.IsCheckpoint() || txn.Date.After(asOf) {
			continue
		}
		if latest == nil || txn.Date.After(latest.Date) ||
			(txn.Date.Equal(latest.Date) && txn.CreatedAt.After(latest.CreatedAt)) {
			cp := txn
			latest = &cp
		}
	}
	if latest == nil {
		return nil, apperrors.ErrNotFound
	}
	return latest, nil
}

func (f *fakeLedgerRepo) FindEarliestTransactionDate(ctx context.Context, accountID string) (time.Time, error) {
	var earliest time.Time
	found := false
	for _, txn := range f.txns {
		if txn.AccountID != accountID {
			continue
		}
		if !found || txn.Date.Before(earliest) {
			earliest = txn.Date
			found = true
		}
	}
	if !found {
		return time.Time{}, apperrors.ErrNotFound
	}
	return earliest, nil
}

func (f *fakeLedgerRepo) ListTransactionCurrencies(ctx context.Context, accountID string) ([]string, error) {
	seen := make(map[string]bool)
	var codes []string
	for _, txn := range f.txns {
		if txn.AccountID != accountID || seen[txn.CurrencyCode] {
			continue
		}
		seen[txn.CurrencyCode] = true
		codes = append(codes, txn.CurrencyCode)
	}
	return codes, nil
}

func (f *fakeLedgerRepo) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	f.txns = append(f.txns, txn)
	return nil
}

package repositories

import (
	"context"
	"time"

	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindLatestRateBefore retrieves the most recent rate row for the exact
	// (from, to) pair with an effective date on or before asOf.
	FindLatestRateBefore(ctx context.Context, userID, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error)

	// ListPrimaryRates retrieves all USER and API rates for a user, any date.
	ListPrimaryRates(ctx context.Context, userID string) ([]domain.ExchangeRate, error)

	// ListAutoRates retrieves all AUTO rates for a user.
	ListAutoRates(ctx context.Context, userID string) ([]domain.ExchangeRate, error)

	// ListUserIDsWithPrimaryRates retrieves the distinct users that have at
	// least one primary rate stored.
	ListUserIDsWithPrimaryRates(ctx context.Context) ([]string, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate persists a rate, upserting on the
	// (userID, from, to, effectiveDate) uniqueness constraint.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// SaveExchangeRates persists a batch of rates in one transaction with the
	// same upsert semantics. Either every rate lands or none does.
	SaveExchangeRates(ctx context.Context, rates []domain.ExchangeRate) error

	// DeleteExchangeRate removes a single primary rate owned by the user.
	DeleteExchangeRate(ctx context.Context, userID, exchangeRateID string) error

	// ReplaceAutoRates atomically deletes every AUTO rate for the user and
	// inserts the given replacement set. Readers must never observe the
	// store between the delete and the insert.
	ReplaceAutoRates(ctx context.Context, userID string, rates []domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}

package services

import (
	"context"
	"time"

	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	"github.com/jomonylw/flow-balance-sub006/internal/dto"
)

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// ListRates retrieves all rates stored for a user, primary and derived.
	ListRates(ctx context.Context, userID string) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriterSvc defines write operations for primary exchange rates.
// Every successful mutation triggers a fresh derivation pass for the user.
type ExchangeRateWriterSvc interface {
	// CreateExchangeRate persists a new USER rate.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)

	// IngestAPIRates bulk-upserts API-sourced rates for a user.
	IngestAPIRates(ctx context.Context, req dto.IngestAPIRatesRequest, userID string) (*dto.IngestAPIRatesResponse, error)

	// DeleteExchangeRate removes a primary rate owned by the user.
	DeleteExchangeRate(ctx context.Context, userID, exchangeRateID string) error
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}

// RateDerivationSvc computes the derived AUTO rate set for a user.
type RateDerivationSvc interface {
	// DeriveRates rebuilds the user's AUTO rates for the effective date from
	// the full primary rate set. The previous AUTO set is replaced
	// atomically; per-pair failures accumulate in the result.
	DeriveRates(ctx context.Context, userID string, effectiveDate time.Time) (domain.DerivationResult, error)

	// DeriveForAllUsers runs DeriveRates for every user holding primary
	// rates. Used by the scheduled sweep.
	DeriveForAllUsers(ctx context.Context, effectiveDate time.Time) error
}

package dto

import (
	"time"

	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for creating a new primary (USER) exchange rate.
type CreateExchangeRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,currencycode"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,currencycode"`
	Rate             decimal.Decimal `json:"rate" binding:"required"`
	EffectiveDate    time.Time       `json:"effectiveDate" binding:"required"`
}

// APIRateItem is one rate in a bulk API ingestion payload.
type APIRateItem struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,currencycode"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,currencycode"`
	Rate             decimal.Decimal `json:"rate" binding:"required"`
	EffectiveDate    time.Time       `json:"effectiveDate" binding:"required"`
}

// IngestAPIRatesRequest defines the structure for bulk-upserting API-sourced rates.
type IngestAPIRatesRequest struct {
	Rates []APIRateItem `json:"rates" binding:"required,min=1,dive"`
}

// IngestAPIRatesResponse reports how many rates were stored and the outcome
// of the derivation pass that followed.
type IngestAPIRatesResponse struct {
	IngestedCount int                     `json:"ingestedCount"`
	Derivation    domain.DerivationResult `json:"derivation"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	EffectiveDate    time.Time       `json:"effectiveDate"`
	Type             string          `json:"type"`
	SourceRateID     string          `json:"sourceRateID,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:   rate.ExchangeRateID,
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
		EffectiveDate:    rate.EffectiveDate,
		Type:             string(rate.Type),
		SourceRateID:     rate.SourceRateID,
		Notes:            rate.Notes,
		CreatedAt:        rate.CreatedAt,
		LastUpdatedAt:    rate.LastUpdatedAt,
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to a slice of ExchangeRateResponse DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}

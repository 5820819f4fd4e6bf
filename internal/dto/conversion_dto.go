package dto

import (
	"time"

	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertRequest defines the structure for converting a single amount.
type ConvertRequest struct {
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,currencycode"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,currencycode"`
	AsOf             *time.Time      `json:"asOf,omitempty"` // Defaults to today
}

// ConvertBatchItem is one amount in a batch conversion payload.
type ConvertBatchItem struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,currencycode"`
}

// ConvertBatchRequest defines the structure for converting several amounts
// into one target currency.
type ConvertBatchRequest struct {
	Items              []ConvertBatchItem `json:"items" binding:"required,min=1,dive"`
	TargetCurrencyCode string             `json:"targetCurrencyCode" binding:"required,currencycode"`
	AsOf               *time.Time         `json:"asOf,omitempty"` // Defaults to today
}

// ConversionResponse defines the structure for API responses containing one conversion outcome.
type ConversionResponse struct {
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	ConvertedAmount  decimal.Decimal `json:"convertedAmount"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	Success          bool            `json:"success"`
}

// ToConversionResponse converts a domain.ConversionResult to ConversionResponse DTO
func ToConversionResponse(result domain.ConversionResult) ConversionResponse {
	return ConversionResponse{
		OriginalAmount:   result.OriginalAmount,
		ConvertedAmount:  result.ConvertedAmount,
		FromCurrencyCode: result.FromCurrencyCode,
		ToCurrencyCode:   result.ToCurrencyCode,
		Rate:             result.Rate,
		Success:          result.Success,
	}
}

// ToListConversionResponse converts a slice of results, preserving order.
func ToListConversionResponse(results []domain.ConversionResult) []ConversionResponse {
	responses := make([]ConversionResponse, len(results))
	for i, result := range results {
		responses[i] = ToConversionResponse(result)
	}
	return responses
}

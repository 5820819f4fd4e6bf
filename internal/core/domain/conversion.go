package domain

import (
	"github.com/shopspring/decimal"
)

// AmountCurrency pairs an amount with the currency it is denominated in.
type AmountCurrency struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

// ConversionResult is the outcome of converting a single amount.
// When Success is false, ConvertedAmount carries the unconverted input amount
// so callers can still render a best-effort value; they must treat it as
// unreliable for any currency pair other than identity.
type ConversionResult struct {
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	ConvertedAmount  decimal.Decimal `json:"convertedAmount"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	Success          bool            `json:"success"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateType distinguishes primary rates (entered by a user or ingested from an
// external API) from derived rates computed by the derivation engine.
type RateType string

const (
	RateTypeUser RateType = "USER"
	RateTypeAPI  RateType = "API"
	RateTypeAuto RateType = "AUTO"
)

// IsPrimary reports whether the rate is authoritative input rather than a
// derived row. Primary rates are never overwritten by derivation.
func (t RateType) IsPrimary() bool {
	return t == RateTypeUser || t == RateTypeAPI
}

// ExchangeRate stores the conversion rate between two currencies for a
// specific user and effective date. At most one row may exist per
// (userID, fromCurrencyCode, toCurrencyCode, effectiveDate).
//
// AUTO rows are a disposable cache: they are deleted and regenerated in bulk
// whenever any primary rate for the user changes.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"` // Primary Key (UUID)
	UserID           string          `json:"userID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"` // FK -> Currency.currencyCode
	ToCurrencyCode   string          `json:"toCurrencyCode"`   // FK -> Currency.currencyCode
	Rate             decimal.Decimal `json:"rate"`             // Always > 0
	EffectiveDate    time.Time       `json:"effectiveDate"`    // Truncated to day granularity
	Type             RateType        `json:"type"`
	SourceRateID     string          `json:"sourceRateID,omitempty"` // For AUTO rows, the primary row it was derived from
	Notes            string          `json:"notes,omitempty"`
	AuditFields
}

// DerivationResult summarises one derivation pass for a user.
// Per-pair failures are accumulated rather than aborting the pass.
type DerivationResult struct {
	GeneratedCount int      `json:"generatedCount"`
	Errors         []string `json:"errors"`
}

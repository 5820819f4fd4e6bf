package services

import (
	"context"
	"time"

	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConversionSvc resolves amount conversions against the stored rate table.
// Missing rates are reported through the result's Success flag, never as an
// error: absence of a derivable path is a valid business state. Rate store
// failures are a different matter and do come back as errors.
type ConversionSvc interface {
	// Convert converts a single amount as of the given date using the latest
	// stored rate (direct, or inverted reverse rate). A non-nil error means
	// the rate store could not be read, not that no rate exists.
	Convert(ctx context.Context, userID string, amount decimal.Decimal, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (domain.ConversionResult, error)

	// ConvertMultiple converts a batch into the target currency. Output
	// order and length always mirror the input; each element carries its own
	// Success flag.
	ConvertMultiple(ctx context.Context, userID string, items []domain.AmountCurrency, targetCurrencyCode string, asOf time.Time) []domain.ConversionResult
}

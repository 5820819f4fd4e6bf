package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores one rate row, unique on
// (user_id, from_currency_code, to_currency_code, effective_date).
type ExchangeRate struct {
	ExchangeRateID   string          `db:"exchange_rate_id"` // Primary Key (UUID)
	UserID           string          `db:"user_id"`
	FromCurrencyCode string          `db:"from_currency_code"` // FK -> currencies
	ToCurrencyCode   string          `db:"to_currency_code"`   // FK -> currencies
	Rate             decimal.Decimal `db:"rate"`
	EffectiveDate    time.Time       `db:"effective_date"`
	RateType         string          `db:"rate_type"`      // USER | API | AUTO
	SourceRateID     *string         `db:"source_rate_id"` // Nullable, AUTO rows only
	Notes            *string         `db:"notes"`          // Nullable
	AuditFields
}

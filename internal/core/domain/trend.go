package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrendRange selects the time window of a trend series.
type TrendRange string

const (
	RangeLastMonth TrendRange = "lastMonth"
	RangeLastYear  TrendRange = "lastYear"
	RangeAll       TrendRange = "all"
)

// Granularity selects the bucket width of a trend series.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityMonthly Granularity = "monthly"
)

// Interval is one contiguous bucket of a trend window. Start and End are
// inclusive day-granularity bounds.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// TrendPoint is one chart-ready bucket of a trend series.
// OriginalAmount is kept even when conversion to the display currency fails;
// HasConversionError marks the point as unreliable rather than dropping it.
type TrendPoint struct {
	Date                 time.Time       `json:"date"`
	OriginalAmount       decimal.Decimal `json:"originalAmount"`
	OriginalCurrencyCode string          `json:"originalCurrencyCode"`
	ConvertedAmount      decimal.Decimal `json:"convertedAmount"`
	TransactionCount     int             `json:"transactionCount"`
	HasConversionError   bool            `json:"hasConversionError"`
}

package services

import (
	"context"
	"time"

	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceSvc reconstructs stock account balances and aggregates flow account
// totals from the ledger.
type BalanceSvc interface {
	// BalanceAsOf reconstructs a stock account's balance in the given
	// transaction currency at an arbitrary date. Returns nil (not zero) when
	// no checkpoint exists on or before the date.
	BalanceAsOf(ctx context.Context, userID, accountID, currencyCode string, asOf time.Time) (*decimal.Decimal, error)

	// BalancesAsOf reconstructs the balance per transaction currency for
	// accounts that historically recorded entries in more than one currency.
	BalancesAsOf(ctx context.Context, userID, accountID string, asOf time.Time) (map[string]decimal.Decimal, error)

	// SumInPeriod totals a flow account's contributions with
	// start <= date <= end.
	SumInPeriod(ctx context.Context, userID, accountID string, start, end time.Time) (decimal.Decimal, error)

	// CumulativeSums returns running totals of a flow account over
	// successive intervals (prefix sums across the ordered buckets).
	CumulativeSums(ctx context.Context, userID, accountID string, intervals []domain.Interval) ([]decimal.Decimal, error)
}

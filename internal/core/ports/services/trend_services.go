package services

import (
	"context"

	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
)

// TrendSvc produces chart-ready series for an account over a time window.
type TrendSvc interface {
	// BuildSeries buckets the resolved window at the requested granularity
	// and evaluates each bucket: point-in-time balances for stock accounts,
	// period sums for flow accounts, converted into the display currency.
	BuildSeries(ctx context.Context, userID, accountID string, rng domain.TrendRange, granularity domain.Granularity, displayCurrencyCode string) ([]domain.TrendPoint, error)
}

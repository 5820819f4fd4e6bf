package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jomonylw/flow-balance-sub006/internal/apperrors"
	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	portsrepo "github.com/jomonylw/flow-balance-sub006/internal/core/ports/repositories"
	portssvc "github.com/jomonylw/flow-balance-sub006/internal/core/ports/services"
	"github.com/jomonylw/flow-balance-sub006/internal/utils/dateutil"
	"github.com/shopspring/decimal"
)

// trendService buckets a time window and evaluates each bucket into a
// chart-ready point: reconstructed balances for stock accounts, period sums
// for flow accounts, converted into the requested display currency.
//
// Stock buckets are evaluated with a single chronological ledger scan that
// carries the running balance forward across buckets, re-anchoring whenever a
// checkpoint falls inside one. The result is identical to reconstructing
// every bucket independently; the equivalence is covered by tests.
type trendService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	ledgerRepo  portsrepo.LedgerReader
	conversion  portssvc.ConversionSvc
	now         func() time.Time
}

// TrendServiceOption is a functional option for configuring the trend service
type TrendServiceOption func(*trendService)

// WithTrendClock overrides the clock used to resolve relative ranges.
func WithTrendClock(now func() time.Time) TrendServiceOption {
	return func(s *trendService) {
		s.now = now
	}
}

// NewTrendService creates a new trend service with the provided options
func NewTrendService(accountRepo portsrepo.AccountReader, ledgerRepo portsrepo.LedgerReader, conversion portssvc.ConversionSvc, options ...TrendServiceOption) portssvc.TrendSvc {
	svc := &trendService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		conversion:  conversion,
		now:         time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.TrendSvc = (*trendService)(nil)

// BuildSeries produces one point per bucket of the resolved window.
func (s *trendService) BuildSeries(ctx context.Context, userID, accountID string, rng domain.TrendRange, granularity domain.Granularity, displayCurrencyCode string) ([]domain.TrendPoint, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	start, end, empty, err := s.resolveRange(ctx, account.AccountID, rng)
	if err != nil {
		return nil, err
	}
	if empty {
		return []domain.TrendPoint{}, nil
	}

	intervals := buildIntervals(start, end, granularity)
	if len(intervals) == 0 {
		return []domain.TrendPoint{}, nil
	}

	// One scan covers the whole series; for stock accounts it must reach
	// back to the earliest entry so a checkpoint before the window anchors
	// the first buckets.
	scanStart := intervals[0].Start
	if account.AccountType.IsStock() {
		earliest, err := s.ledgerRepo.FindEarliestTransactionDate(ctx, account.AccountID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to find earliest transaction: %w", err)
		}
		if err == nil && earliest.Before(scanStart) {
			scanStart = earliest
		}
	}

	txns, err := s.ledgerRepo.ListTransactionsInRange(ctx, account.AccountID, scanStart, intervals[len(intervals)-1].End)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	var amounts []decimal.Decimal
	var counts []int
	if account.AccountType.IsStock() {
		amounts, counts = stockSeries(account, txns, intervals)
	} else {
		amounts, counts = flowSeries(account, txns, intervals)
	}

	points := make([]domain.TrendPoint, len(intervals))
	for i, interval := range intervals {
		converted, err := s.conversion.Convert(ctx, userID, amounts[i], account.CurrencyCode, displayCurrencyCode, interval.End)
		if err != nil {
			return nil, fmt.Errorf("failed to convert trend point: %w", err)
		}
		points[i] = domain.TrendPoint{
			Date:                 interval.End,
			OriginalAmount:       amounts[i],
			OriginalCurrencyCode: account.CurrencyCode,
			ConvertedAmount:      converted.ConvertedAmount,
			TransactionCount:     counts[i],
			HasConversionError:   !converted.Success,
		}
	}
	return points, nil
}

// resolveRange turns a symbolic range into concrete day bounds. The empty
// flag is set for an "all" range over an account with no transactions.
func (s *trendService) resolveRange(ctx context.Context, accountID string, rng domain.TrendRange) (start, end time.Time, empty bool, err error) {
	end = dateutil.TruncateToDay(s.now())

	switch rng {
	case domain.RangeLastMonth:
		return end.AddDate(0, -1, 0), end, false, nil
	case domain.RangeLastYear:
		return end.AddDate(-1, 0, 0), end, false, nil
	case domain.RangeAll:
		earliest, findErr := s.ledgerRepo.FindEarliestTransactionDate(ctx, accountID)
		if findErr != nil {
			if errors.Is(findErr, apperrors.ErrNotFound) {
				return time.Time{}, time.Time{}, true, nil
			}
			return time.Time{}, time.Time{}, false, fmt.Errorf("failed to find earliest transaction: %w", findErr)
		}
		return dateutil.TruncateToDay(earliest), end, false, nil
	default:
		return time.Time{}, time.Time{}, false, fmt.Errorf("%w: unknown trend range %q", apperrors.ErrValidation, rng)
	}
}

func buildIntervals(start, end time.Time, granularity domain.Granularity) []domain.Interval {
	if granularity == domain.GranularityMonthly {
		return dateutil.MonthlyIntervals(start, end)
	}
	return dateutil.DailyIntervals(start, end)
}

// stockSeries walks the ledger once, carrying the running balance across
// bucket ends. A checkpoint re-anchors the balance; deltas dated on the
// anchor day are already part of the checkpoint amount and are skipped.
// Buckets before the first checkpoint have no data and report zero.
func stockSeries(account *domain.Account, txns []domain.Transaction, intervals []domain.Interval) ([]decimal.Decimal, []int) {
	amounts := make([]decimal.Decimal, len(intervals))
	counts := make([]int, len(intervals))

	var running *decimal.Decimal
	var anchorDate time.Time
	idx := 0

	for i, interval := range intervals {
		for idx < len(txns) && !txns[idx].Date.After(interval.End) {
			txn := txns[idx]
			idx++
			if txn.CurrencyCode != account.CurrencyCode {
				continue
			}
			if !txn.Date.Before(interval.Start) {
				counts[i]++
			}
			if txn.IsCheckpoint() {
				amount := txn.Amount
				running = &amount
				anchorDate = txn.Date
				continue
			}
			if running != nil && txn.Date.After(anchorDate) {
				next := applyDelta(*running, txn)
				running = &next
			}
		}

		if running != nil {
			amounts[i] = *running
		}
	}
	return amounts, counts
}

// flowSeries sums each bucket's contributions of the account's accumulation
// type, mirroring the flow aggregator's period sum per bucket.
func flowSeries(account *domain.Account, txns []domain.Transaction, intervals []domain.Interval) ([]decimal.Decimal, []int) {
	amounts := make([]decimal.Decimal, len(intervals))
	counts := make([]int, len(intervals))

	wanted := flowTransactionType(account.AccountType)
	idx := 0

	for i, interval := range intervals {
		sum := decimal.Zero
		for idx < len(txns) && !txns[idx].Date.After(interval.End) {
			txn := txns[idx]
			idx++
			if txn.Type != wanted || txn.Date.Before(interval.Start) {
				continue
			}
			sum = sum.Add(txn.Amount)
			counts[i]++
		}
		amounts[i] = sum
	}
	return amounts, counts
}

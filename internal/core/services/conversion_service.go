package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jomonylw/flow-balance-sub006/internal/apperrors"
	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	portsrepo "github.com/jomonylw/flow-balance-sub006/internal/core/ports/repositories"
	portssvc "github.com/jomonylw/flow-balance-sub006/internal/core/ports/services"
	"github.com/jomonylw/flow-balance-sub006/internal/utils/dateutil"
	"github.com/shopspring/decimal"
)

// conversionService resolves amount conversions against the stored rate
// table, derived rows included. A missing path is a result flag, not an
// error: the caller decides how to present an unconvertible value.
type conversionService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateReader
}

// NewConversionService creates a new conversion service.
func NewConversionService(rateRepo portsrepo.ExchangeRateReader) portssvc.ConversionSvc {
	return &conversionService{rateRepo: rateRepo}
}

var _ portssvc.ConversionSvc = (*conversionService)(nil)

// Convert converts a single amount as of the given date. Identity pairs
// always succeed with rate 1; otherwise the latest stored (from, to) row on
// or before asOf applies, then the inverted (to, from) row. When no rate is
// derivable the converted amount falls back to the input amount with
// Success=false; a rate store failure comes back as an error instead, so the
// caller can tell an outage apart from missing data.
func (s *conversionService) Convert(ctx context.Context, userID string, amount decimal.Decimal, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (domain.ConversionResult, error) {
	from := strings.ToUpper(fromCurrencyCode)
	to := strings.ToUpper(toCurrencyCode)

	result := domain.ConversionResult{
		OriginalAmount:   amount,
		ConvertedAmount:  amount,
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
	}

	if from == to {
		result.Rate = decimal.NewFromInt(1)
		result.Success = true
		return result, nil
	}

	rate, ok, err := s.lookupRate(ctx, userID, from, to, asOf)
	if err != nil {
		return result, fmt.Errorf("failed to look up rate %s→%s: %w", from, to, err)
	}
	if !ok {
		return result, nil
	}

	result.Rate = rate
	result.ConvertedAmount = amount.Mul(rate)
	result.Success = true
	return result, nil
}

// ConvertMultiple converts a batch into one target currency. Lookups are
// grouped per distinct source currency; output order and length always
// mirror the input.
func (s *conversionService) ConvertMultiple(ctx context.Context, userID string, items []domain.AmountCurrency, targetCurrencyCode string, asOf time.Time) []domain.ConversionResult {
	target := strings.ToUpper(targetCurrencyCode)

	type cachedRate struct {
		rate decimal.Decimal
		ok   bool
	}
	cache := make(map[string]cachedRate)

	results := make([]domain.ConversionResult, len(items))
	for i, item := range items {
		from := strings.ToUpper(item.CurrencyCode)

		if from == target {
			results[i] = domain.ConversionResult{
				OriginalAmount:   item.Amount,
				ConvertedAmount:  item.Amount,
				FromCurrencyCode: from,
				ToCurrencyCode:   target,
				Rate:             decimal.NewFromInt(1),
				Success:          true,
			}
			continue
		}

		cached, hit := cache[from]
		if !hit {
			rate, ok, err := s.lookupRate(ctx, userID, from, target, asOf)
			if err != nil {
				// Batch results render element by element, so a store failure
				// degrades to an unconverted element rather than aborting the
				// whole batch.
				s.LogError(ctx, err, "Rate lookup failed in batch conversion",
					slog.String("user_id", userID),
					slog.String("from", from),
					slog.String("to", target))
				ok = false
			}
			cached = cachedRate{rate: rate, ok: ok}
			cache[from] = cached
		}

		result := domain.ConversionResult{
			OriginalAmount:   item.Amount,
			ConvertedAmount:  item.Amount,
			FromCurrencyCode: from,
			ToCurrencyCode:   target,
		}
		if cached.ok {
			result.Rate = cached.rate
			result.ConvertedAmount = item.Amount.Mul(cached.rate)
			result.Success = true
		}
		results[i] = result
	}
	return results
}

// lookupRate resolves the effective rate for a pair: direct row first, then
// the inverted reverse row. A missing row on both legs is reported through
// the ok flag; any other repository failure is returned as an error.
func (s *conversionService) lookupRate(ctx context.Context, userID, from, to string, asOf time.Time) (decimal.Decimal, bool, error) {
	asOf = dateutil.TruncateToDay(asOf)

	direct, err := s.rateRepo.FindLatestRateBefore(ctx, userID, from, to, asOf)
	if err == nil {
		return direct.Rate, true, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Decimal{}, false, err
	}

	reverse, err := s.rateRepo.FindLatestRateBefore(ctx, userID, to, from, asOf)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Decimal{}, false, err
		}
		return decimal.Decimal{}, false, nil
	}
	if reverse.Rate.IsZero() {
		return decimal.Decimal{}, false, nil
	}
	return decimal.NewFromInt(1).Div(reverse.Rate), true, nil
}

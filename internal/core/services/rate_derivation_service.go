package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	portsrepo "github.com/jomonylw/flow-balance-sub006/internal/core/ports/repositories"
	portssvc "github.com/jomonylw/flow-balance-sub006/internal/core/ports/services"
	"github.com/jomonylw/flow-balance-sub006/internal/utils/dateutil"
	"github.com/shopspring/decimal"
)

// rateDerivationService rebuilds the derived (AUTO) rate table for a user
// from the primary USER/API rates. Derivation is a full rebuild: the previous
// AUTO set is replaced atomically, never patched.
type rateDerivationService struct {
	BaseService
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
}

// NewRateDerivationService creates a new rate derivation service.
func NewRateDerivationService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyRepo portsrepo.CurrencyReader) portssvc.RateDerivationSvc {
	return &rateDerivationService{
		rateRepo:     rateRepo,
		currencyRepo: currencyRepo,
	}
}

var _ portssvc.RateDerivationSvc = (*rateDerivationService)(nil)

// pairKey identifies one directed currency edge.
type pairKey struct {
	from string
	to   string
}

// rateEdge is one entry of the in-memory conversion graph.
type rateEdge struct {
	rate         decimal.Decimal
	sourceRateID string
	notes        string
	derived      bool
}

// DeriveRates computes the complete derived rate set for the user and the
// given effective date.
//
// The graph is seeded from every primary rate (latest effective date wins per
// pair), completed with reverse edges (1/r), then closed transitively until a
// fixed point: for each missing ordered pair the service tries, in order,
// two-hop composition, inversion of the opposite edge, and common-base
// division. Two-hop multiplication is preferred over base division because the
// two are numerically distinct under decimal rounding; candidate mid and base
// currencies are visited in code order so the chosen path is deterministic.
//
// Pairs with no path through the graph are left undefined. Per-pair failures
// (a corrupted zero rate, for instance) accumulate in the result instead of
// aborting the pass.
func (s *rateDerivationService) DeriveRates(ctx context.Context, userID string, effectiveDate time.Time) (domain.DerivationResult, error) {
	result := domain.DerivationResult{Errors: []string{}}
	effectiveDate = dateutil.TruncateToDay(effectiveDate)

	primaries, err := s.rateRepo.ListPrimaryRates(ctx, userID)
	if err != nil {
		return result, fmt.Errorf("failed to load primary rates for derivation: %w", err)
	}

	codes, err := s.currencyRepo.ListUserCurrencyCodes(ctx, userID)
	if err != nil {
		return result, fmt.Errorf("failed to load active currencies for derivation: %w", err)
	}

	edges := s.seedPrimaryEdges(primaries, &result)
	currencies := activeCurrencies(codes, edges)

	s.addReverseEdges(edges, &result)
	s.closeTransitively(edges, currencies, &result)

	autoRates := s.collectAutoRates(userID, effectiveDate, edges)

	if err := s.rateRepo.ReplaceAutoRates(ctx, userID, autoRates); err != nil {
		// The previous AUTO set survives a failed replace; the caller can
		// retry derivation later.
		return result, fmt.Errorf("failed to store derived rates: %w", err)
	}

	result.GeneratedCount = len(autoRates)
	s.LogInfo(ctx, "Derived rates regenerated",
		slog.String("user_id", userID),
		slog.String("effective_date", effectiveDate.Format("2006-01-02")),
		slog.Int("generated", result.GeneratedCount),
		slog.Int("pair_errors", len(result.Errors)))
	return result, nil
}

// DeriveForAllUsers re-runs derivation for every user holding primary rates.
func (s *rateDerivationService) DeriveForAllUsers(ctx context.Context, effectiveDate time.Time) error {
	userIDs, err := s.rateRepo.ListUserIDsWithPrimaryRates(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users for derivation sweep: %w", err)
	}

	for _, userID := range userIDs {
		if _, err := s.DeriveRates(ctx, userID, effectiveDate); err != nil {
			// One user's failed pass must not starve the rest of the sweep.
			s.LogError(ctx, err, "Derivation sweep failed for user", slog.String("user_id", userID))
		}
	}
	return nil
}

// seedPrimaryEdges builds the initial edge map from primary rates, keeping
// the latest effective date per pair. Non-positive rates are rejected into
// the error list so a corrupted row cannot poison derived pairs.
func (s *rateDerivationService) seedPrimaryEdges(primaries []domain.ExchangeRate, result *domain.DerivationResult) map[pairKey]rateEdge {
	latest := make(map[pairKey]domain.ExchangeRate, len(primaries))
	for _, rate := range primaries {
		if !rate.Rate.IsPositive() {
			result.Errors = append(result.Errors, fmt.Sprintf("primary rate %s→%s has non-positive value %s, skipped",
				rate.FromCurrencyCode, rate.ToCurrencyCode, rate.Rate))
			continue
		}
		key := pairKey{from: rate.FromCurrencyCode, to: rate.ToCurrencyCode}
		if current, ok := latest[key]; !ok || rate.EffectiveDate.After(current.EffectiveDate) {
			latest[key] = rate
		}
	}

	edges := make(map[pairKey]rateEdge, len(latest)*2)
	for key, rate := range latest {
		edges[key] = rateEdge{
			rate:         rate.Rate,
			sourceRateID: rate.ExchangeRateID,
		}
	}
	return edges
}

// addReverseEdges fills every missing B→A with 1/r of the primary A→B.
// Primary edges are never overwritten.
func (s *rateDerivationService) addReverseEdges(edges map[pairKey]rateEdge, result *domain.DerivationResult) {
	for _, key := range sortedKeys(edges) {
		edge := edges[key]
		if edge.derived {
			continue
		}
		reverse := pairKey{from: key.to, to: key.from}
		if _, exists := edges[reverse]; exists {
			continue
		}
		if edge.rate.IsZero() {
			result.Errors = append(result.Errors, fmt.Sprintf("cannot invert zero rate %s→%s", key.from, key.to))
			continue
		}
		edges[reverse] = rateEdge{
			rate:         decimal.NewFromInt(1).Div(edge.rate),
			sourceRateID: edge.sourceRateID,
			notes:        fmt.Sprintf("reverse of %s→%s", key.from, key.to),
			derived:      true,
		}
	}
}

// closeTransitively fills the remaining gaps by iterating over missing pairs
// until a full sweep adds no new edge. Each missing pair tries, in order:
// two-hop composition, inversion of the opposite edge, common-base division.
func (s *rateDerivationService) closeTransitively(edges map[pairKey]rateEdge, currencies []string, result *domain.DerivationResult) {
	failed := make(map[pairKey]bool)

	for {
		added := 0
		for _, from := range currencies {
			for _, to := range currencies {
				if from == to {
					continue
				}
				key := pairKey{from: from, to: to}
				if _, exists := edges[key]; exists {
					continue
				}
				if failed[key] {
					continue
				}

				edge, err := s.deriveEdge(edges, currencies, key)
				if err != nil {
					result.Errors = append(result.Errors, err.Error())
					failed[key] = true
					continue
				}
				if edge == nil {
					continue
				}
				edges[key] = *edge
				added++
			}
		}
		if added == 0 {
			break
		}
	}
}

// deriveEdge attempts to compute one missing edge. A nil edge with nil error
// means the pair is currently unreachable, which is not an error.
func (s *rateDerivationService) deriveEdge(edges map[pairKey]rateEdge, currencies []string, key pairKey) (*rateEdge, error) {
	// Two-hop composition: from→mid and mid→to.
	for _, mid := range currencies {
		if mid == key.from || mid == key.to {
			continue
		}
		first, okFirst := edges[pairKey{from: key.from, to: mid}]
		second, okSecond := edges[pairKey{from: mid, to: key.to}]
		if !okFirst || !okSecond {
			continue
		}
		return &rateEdge{
			rate:         first.rate.Mul(second.rate),
			sourceRateID: first.sourceRateID,
			notes:        fmt.Sprintf("via %s", mid),
			derived:      true,
		}, nil
	}

	// Inversion of an already-known opposite edge.
	if opposite, ok := edges[pairKey{from: key.to, to: key.from}]; ok {
		if opposite.rate.IsZero() {
			return nil, fmt.Errorf("cannot invert zero rate %s→%s", key.to, key.from)
		}
		return &rateEdge{
			rate:         decimal.NewFromInt(1).Div(opposite.rate),
			sourceRateID: opposite.sourceRateID,
			notes:        fmt.Sprintf("reverse of %s→%s", key.to, key.from),
			derived:      true,
		}, nil
	}

	// Common-base division: from→base divided by to→base.
	for _, base := range currencies {
		if base == key.from || base == key.to {
			continue
		}
		numerator, okNum := edges[pairKey{from: key.from, to: base}]
		denominator, okDen := edges[pairKey{from: key.to, to: base}]
		if !okNum || !okDen {
			continue
		}
		if denominator.rate.IsZero() {
			return nil, fmt.Errorf("cannot derive %s→%s: zero rate %s→%s", key.from, key.to, key.to, base)
		}
		return &rateEdge{
			rate:         numerator.rate.Div(denominator.rate),
			sourceRateID: numerator.sourceRateID,
			notes:        fmt.Sprintf("base %s division", base),
			derived:      true,
		}, nil
	}

	return nil, nil
}

// collectAutoRates turns every derived edge into an AUTO row for the
// effective date, ordered deterministically by currency pair.
func (s *rateDerivationService) collectAutoRates(userID string, effectiveDate time.Time, edges map[pairKey]rateEdge) []domain.ExchangeRate {
	now := time.Now()
	rates := make([]domain.ExchangeRate, 0, len(edges))
	for _, key := range sortedKeys(edges) {
		edge := edges[key]
		if !edge.derived {
			continue
		}
		rates = append(rates, domain.ExchangeRate{
			ExchangeRateID:   uuid.NewString(),
			UserID:           userID,
			FromCurrencyCode: key.from,
			ToCurrencyCode:   key.to,
			Rate:             edge.rate,
			EffectiveDate:    effectiveDate,
			Type:             domain.RateTypeAuto,
			SourceRateID:     edge.sourceRateID,
			Notes:            edge.notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}
	return rates
}

// activeCurrencies merges the user's active currency codes with every code
// appearing in a primary rate, sorted for deterministic iteration order.
func activeCurrencies(codes []string, edges map[pairKey]rateEdge) []string {
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		seen[code] = true
	}
	for key := range edges {
		seen[key.from] = true
		seen[key.to] = true
	}

	currencies := make([]string, 0, len(seen))
	for code := range seen {
		currencies = append(currencies, code)
	}
	sort.Strings(currencies)
	return currencies
}

func sortedKeys(edges map[pairKey]rateEdge) []pairKey {
	keys := make([]pairKey, 0, len(edges))
	for key := range edges {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].from != keys[j].from {
			return keys[i].from < keys[j].from
		}
		return keys[i].to < keys[j].to
	})
	return keys
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jomonylw/flow-balance-sub006/internal/apperrors"
	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	portsrepo "github.com/jomonylw/flow-balance-sub006/internal/core/ports/repositories"
	portssvc "github.com/jomonylw/flow-balance-sub006/internal/core/ports/services"
	"github.com/jomonylw/flow-balance-sub006/internal/dto"
	"github.com/jomonylw/flow-balance-sub006/internal/utils/dateutil"
	"github.com/shopspring/decimal"
)

// exchangeRateService manages primary (USER/API) rates. Every successful
// mutation triggers a full derivation pass so the AUTO cache never lags the
// primary set.
type exchangeRateService struct {
	BaseService
	rateRepo        portsrepo.ExchangeRateRepositoryFacade
	currencyService portssvc.CurrencyReaderSvc
	derivation      portssvc.RateDerivationSvc
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyService portssvc.CurrencyReaderSvc, derivation portssvc.RateDerivationSvc) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{
		rateRepo:        rateRepo,
		currencyService: currencyService,
		derivation:      derivation,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// CreateExchangeRate handles the creation of a new USER rate.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	if err := s.validateRatePair(ctx, req.FromCurrencyCode, req.ToCurrencyCode, req.Rate); err != nil {
		return nil, err
	}

	now := time.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		UserID:           creatorUserID,
		FromCurrencyCode: strings.ToUpper(req.FromCurrencyCode),
		ToCurrencyCode:   strings.ToUpper(req.ToCurrencyCode),
		Rate:             req.Rate,
		EffectiveDate:    dateutil.TruncateToDay(req.EffectiveDate),
		Type:             domain.RateTypeUser,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}

	s.triggerDerivation(ctx, creatorUserID, rate.EffectiveDate)
	return &rate, nil
}

// IngestAPIRates bulk-upserts API-sourced rates, then runs one derivation
// pass for the latest effective date in the batch. The whole batch is
// validated before anything is persisted, and the saves go through one
// repository transaction: a bad item never leaves a partial ingest behind.
func (s *exchangeRateService) IngestAPIRates(ctx context.Context, req dto.IngestAPIRatesRequest, userID string) (*dto.IngestAPIRatesResponse, error) {
	var latestDate time.Time

	for _, item := range req.Rates {
		if err := s.validateRatePair(ctx, item.FromCurrencyCode, item.ToCurrencyCode, item.Rate); err != nil {
			return nil, err
		}
		effectiveDate := dateutil.TruncateToDay(item.EffectiveDate)
		if effectiveDate.After(latestDate) {
			latestDate = effectiveDate
		}
	}

	now := time.Now()
	rates := make([]domain.ExchangeRate, 0, len(req.Rates))
	for _, item := range req.Rates {
		rates = append(rates, domain.ExchangeRate{
			ExchangeRateID:   uuid.NewString(),
			UserID:           userID,
			FromCurrencyCode: strings.ToUpper(item.FromCurrencyCode),
			ToCurrencyCode:   strings.ToUpper(item.ToCurrencyCode),
			Rate:             item.Rate,
			EffectiveDate:    dateutil.TruncateToDay(item.EffectiveDate),
			Type:             domain.RateTypeAPI,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}

	if err := s.rateRepo.SaveExchangeRates(ctx, rates); err != nil {
		return nil, fmt.Errorf("failed to ingest API rates: %w", err)
	}

	derivation, err := s.derivation.DeriveRates(ctx, userID, latestDate)
	if err != nil {
		// Ingested primaries are already persisted; the derivation pass can
		// be retried without losing them.
		s.LogError(ctx, err, "Derivation after API ingestion failed", slog.String("user_id", userID))
	}

	return &dto.IngestAPIRatesResponse{
		IngestedCount: len(req.Rates),
		Derivation:    derivation,
	}, nil
}

// DeleteExchangeRate removes a primary rate and regenerates the AUTO set.
func (s *exchangeRateService) DeleteExchangeRate(ctx context.Context, userID, exchangeRateID string) error {
	if err := s.rateRepo.DeleteExchangeRate(ctx, userID, exchangeRateID); err != nil {
		return fmt.Errorf("failed to delete exchange rate in service: %w", err)
	}

	s.triggerDerivation(ctx, userID, time.Now())
	return nil
}

// ListRates retrieves all rates stored for a user, primary and derived.
func (s *exchangeRateService) ListRates(ctx context.Context, userID string) ([]domain.ExchangeRate, error) {
	primaries, err := s.rateRepo.ListPrimaryRates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list primary rates in service: %w", err)
	}
	autos, err := s.rateRepo.ListAutoRates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list derived rates in service: %w", err)
	}
	return append(primaries, autos...), nil
}

func (s *exchangeRateService) validateRatePair(ctx context.Context, fromCode, toCode string, rate decimal.Decimal) error {
	if rate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if strings.EqualFold(fromCode, toCode) {
		return fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}

	if _, err := s.currencyService.GetCurrencyByCode(ctx, fromCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: 'from' currency code '%s' not found", apperrors.ErrValidation, fromCode)
		}
		return fmt.Errorf("failed to validate 'from' currency '%s': %w", fromCode, err)
	}
	if _, err := s.currencyService.GetCurrencyByCode(ctx, toCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: 'to' currency code '%s' not found", apperrors.ErrValidation, toCode)
		}
		return fmt.Errorf("failed to validate 'to' currency '%s': %w", toCode, err)
	}
	return nil
}

// triggerDerivation regenerates the AUTO cache after a primary mutation. A
// failed pass is logged, not surfaced: the primary write already succeeded
// and the stale AUTO set remains intact until the next successful pass.
func (s *exchangeRateService) triggerDerivation(ctx context.Context, userID string, effectiveDate time.Time) {
	if _, err := s.derivation.DeriveRates(ctx, userID, effectiveDate); err != nil {
		s.LogError(ctx, err, "Rate derivation after primary change failed", slog.String("user_id", userID))
	}
}

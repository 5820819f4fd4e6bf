package pgsql

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jomonylw/flow-balance-sub006/internal/apperrors"
	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	"github.com/jomonylw/flow-balance-sub006/internal/models"
	"github.com/jomonylw/flow-balance-sub006/internal/utils/mapping"
)

const exchangeRateColumns = `
	exchange_rate_id, user_id, from_currency_code, to_currency_code, rate,
	effective_date, rate_type, source_rate_id, notes,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxExchangeRateRepository implements the exchange rate repository using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveExchangeRate inserts a rate, updating in place when a row already
// exists for the (user, pair, effective date) uniqueness constraint.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	fromCurrency := strings.ToUpper(rate.FromCurrencyCode)
	toCurrency := strings.ToUpper(rate.ToCurrencyCode)

	if fromCurrency == toCurrency {
		return apperrors.NewValidationError("from and to currencies cannot be the same")
	}

	model := mapping.ToModelExchangeRate(rate)
	model.FromCurrencyCode = fromCurrency
	model.ToCurrencyCode = toCurrency

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO exchange_rates (`+exchangeRateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id, from_currency_code, to_currency_code, effective_date)
		DO UPDATE SET rate = EXCLUDED.rate, rate_type = EXCLUDED.rate_type,
			source_rate_id = EXCLUDED.source_rate_id, notes = EXCLUDED.notes,
			last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by`,
		model.ExchangeRateID, model.UserID, model.FromCurrencyCode, model.ToCurrencyCode,
		model.Rate, model.EffectiveDate, model.RateType, model.SourceRateID, model.Notes,
		model.CreatedAt, model.CreatedBy, model.LastUpdatedAt, model.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save exchange rate", err)
	}
	return nil
}

// SaveExchangeRates upserts a batch of rates inside one transaction so a
// failure partway through leaves no rows behind.
func (r *PgxExchangeRateRepository) SaveExchangeRates(ctx context.Context, rates []domain.ExchangeRate) error {
	if len(rates) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, rate := range rates {
		model := mapping.ToModelExchangeRate(rate)
		model.FromCurrencyCode = strings.ToUpper(model.FromCurrencyCode)
		model.ToCurrencyCode = strings.ToUpper(model.ToCurrencyCode)
		batch.Queue(`
			INSERT INTO exchange_rates (`+exchangeRateColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT (user_id, from_currency_code, to_currency_code, effective_date)
			DO UPDATE SET rate = EXCLUDED.rate, rate_type = EXCLUDED.rate_type,
				source_rate_id = EXCLUDED.source_rate_id, notes = EXCLUDED.notes,
				last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by`,
			model.ExchangeRateID, model.UserID, model.FromCurrencyCode, model.ToCurrencyCode,
			model.Rate, model.EffectiveDate, model.RateType, model.SourceRateID, model.Notes,
			model.CreatedAt, model.CreatedBy, model.LastUpdatedAt, model.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		_ = r.Rollback(ctx, tx)
		return apperrors.NewAppError(500, "failed to save exchange rates", err)
	}

	return r.Commit(ctx, tx)
}

// FindLatestRateBefore retrieves the most recent rate row for the exact pair
// with an effective date on or before asOf.
func (r *PgxExchangeRateRepository) FindLatestRateBefore(ctx context.Context, userID, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+exchangeRateColumns+`
		FROM exchange_rates
		WHERE user_id = $1 AND from_currency_code = $2 AND to_currency_code = $3
			AND effective_date <= $4
		ORDER BY effective_date DESC
		LIMIT 1`,
		userID, strings.ToUpper(fromCurrencyCode), strings.ToUpper(toCurrencyCode), asOf,
	)

	model, err := scanExchangeRate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find exchange rate", err)
	}

	rate := mapping.ToDomainExchangeRate(*model)
	return &rate, nil
}

// ListPrimaryRates retrieves all USER and API rates for a user.
func (r *PgxExchangeRateRepository) ListPrimaryRates(ctx context.Context, userID string) ([]domain.ExchangeRate, error) {
	return r.listRatesByType(ctx, userID, []string{string(domain.RateTypeUser), string(domain.RateTypeAPI)})
}

// ListAutoRates retrieves all AUTO rates for a user.
func (r *PgxExchangeRateRepository) ListAutoRates(ctx context.Context, userID string) ([]domain.ExchangeRate, error) {
	return r.listRatesByType(ctx, userID, []string{string(domain.RateTypeAuto)})
}

func (r *PgxExchangeRateRepository) listRatesByType(ctx context.Context, userID string, rateTypes []string) ([]domain.ExchangeRate, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+exchangeRateColumns+`
		FROM exchange_rates
		WHERE user_id = $1 AND rate_type = ANY($2)
		ORDER BY from_currency_code, to_currency_code, effective_date`,
		userID, rateTypes,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list exchange rates", err)
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		model, err := scanExchangeRate(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan exchange rate row", err)
		}
		rates = append(rates, mapping.ToDomainExchangeRate(*model))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate exchange rate rows", err)
	}
	return rates, nil
}

// ListUserIDsWithPrimaryRates retrieves the distinct users holding at least
// one primary rate.
func (r *PgxExchangeRateRepository) ListUserIDsWithPrimaryRates(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT DISTINCT user_id
		FROM exchange_rates
		WHERE rate_type IN ('USER', 'API')
		ORDER BY user_id`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list users with primary rates", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user id", err)
		}
		userIDs = append(userIDs, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate user ids", err)
	}
	return userIDs, nil
}

// DeleteExchangeRate removes a single primary rate owned by the user.
func (r *PgxExchangeRateRepository) DeleteExchangeRate(ctx context.Context, userID, exchangeRateID string) error {
	tag, err := r.Pool.Exec(ctx, `
		DELETE FROM exchange_rates
		WHERE user_id = $1 AND exchange_rate_id = $2 AND rate_type IN ('USER', 'API')`,
		userID, exchangeRateID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete exchange rate", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ReplaceAutoRates swaps the user's whole AUTO set inside one transaction so
// concurrent readers never observe the table between the delete and the
// insert.
func (r *PgxExchangeRateRepository) ReplaceAutoRates(ctx context.Context, userID string, rates []domain.ExchangeRate) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM exchange_rates
		WHERE user_id = $1 AND rate_type = 'AUTO'`,
		userID,
	); err != nil {
		_ = r.Rollback(ctx, tx)
		return apperrors.NewAppError(500, "failed to delete derived rates", err)
	}

	if len(rates) > 0 {
		batch := &pgx.Batch{}
		for _, rate := range rates {
			model := mapping.ToModelExchangeRate(rate)
			batch.Queue(`
				INSERT INTO exchange_rates (`+exchangeRateColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
				model.ExchangeRateID, model.UserID, model.FromCurrencyCode, model.ToCurrencyCode,
				model.Rate, model.EffectiveDate, model.RateType, model.SourceRateID, model.Notes,
				model.CreatedAt, model.CreatedBy, model.LastUpdatedAt, model.LastUpdatedBy,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			_ = r.Rollback(ctx, tx)
			return apperrors.NewAppError(500, "failed to insert derived rates", err)
		}
	}

	return r.Commit(ctx, tx)
}

// scanExchangeRate scans one row laid out as exchangeRateColumns.
func scanExchangeRate(row pgx.Row) (*models.ExchangeRate, error) {
	var model models.ExchangeRate
	err := row.Scan(
		&model.ExchangeRateID, &model.UserID, &model.FromCurrencyCode, &model.ToCurrencyCode,
		&model.Rate, &model.EffectiveDate, &model.RateType, &model.SourceRateID, &model.Notes,
		&model.CreatedAt, &model.CreatedBy, &model.LastUpdatedAt, &model.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &model, nil
}

package pgsql

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jomonylw/flow-balance-sub006/internal/apperrors"
	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	"github.com/jomonylw/flow-balance-sub006/internal/models"
	"github.com/jomonylw/flow-balance-sub006/internal/utils/mapping"
)

// PgxCurrencyRepository implements the currency repository using pgxpool.
type PgxCurrencyRepository struct {
	BaseRepository
}

func newPgxCurrencyRepository(db *pgxpool.Pool) *PgxCurrencyRepository {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveCurrency inserts a new currency.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	model := mapping.ToModelCurrency(currency)
	model.CurrencyCode = strings.ToUpper(model.CurrencyCode)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO currencies (
			currency_code, symbol, name, decimal_places,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		model.CurrencyCode, model.Symbol, model.Name, model.DecimalPlaces,
		model.CreatedAt, model.CreatedBy, model.LastUpdatedAt, model.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save currency", err)
	}
	return nil
}

// FindCurrencyByCode retrieves a currency by its code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	var model models.Currency
	err := r.Pool.QueryRow(ctx, `
		SELECT currency_code, symbol, name, decimal_places,
			created_at, created_by, last_updated_at, last_updated_by
		FROM currencies
		WHERE currency_code = $1`,
		strings.ToUpper(currencyCode),
	).Scan(
		&model.CurrencyCode, &model.Symbol, &model.Name, &model.DecimalPlaces,
		&model.CreatedAt, &model.CreatedBy, &model.LastUpdatedAt, &model.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find currency", err)
	}

	currency := mapping.ToDomainCurrency(model)
	return &currency, nil
}

// ListCurrencies retrieves all currencies ordered by code.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT currency_code, symbol, name, decimal_places,
			created_at, created_by, last_updated_at, last_updated_by
		FROM currencies
		ORDER BY currency_code`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list currencies", err)
	}
	defer rows.Close()

	var currencies []domain.Currency
	for rows.Next() {
		var model models.Currency
		if err := rows.Scan(
			&model.CurrencyCode, &model.Symbol, &model.Name, &model.DecimalPlaces,
			&model.CreatedAt, &model.CreatedBy, &model.LastUpdatedAt, &model.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan currency row", err)
		}
		currencies = append(currencies, mapping.ToDomainCurrency(model))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate currency rows", err)
	}
	return currencies, nil
}

// ListUserCurrencyCodes retrieves the distinct codes referenced by the
// user's accounts or primary rates.
func (r *PgxCurrencyRepository) ListUserCurrencyCodes(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT currency_code FROM accounts WHERE user_id = $1
		UNION
		SELECT from_currency_code FROM exchange_rates WHERE user_id = $1 AND rate_type IN ('USER', 'API')
		UNION
		SELECT to_currency_code FROM exchange_rates WHERE user_id = $1 AND rate_type IN ('USER', 'API')
		ORDER BY 1`,
		userID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list user currency codes", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan currency code", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate currency codes", err)
	}
	return codes, nil
}

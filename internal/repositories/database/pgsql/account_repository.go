package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jomonylw/flow-balance-sub006/internal/apperrors"
	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	"github.com/jomonylw/flow-balance-sub006/internal/models"
	"github.com/jomonylw/flow-balance-sub006/internal/utils/mapping"
)

const accountColumns = `
	account_id, user_id, name, account_type, currency_code, description, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxAccountRepository implements the account repository using pgxpool.
type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(db *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	model := mapping.ToModelAccount(account)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		model.AccountID, model.UserID, model.Name, model.AccountType, model.CurrencyCode,
		model.Description, model.IsActive,
		model.CreatedAt, model.CreatedBy, model.LastUpdatedAt, model.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save account", err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID, scoped to the user.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	var model models.Account
	err := r.Pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE user_id = $1 AND account_id = $2`,
		userID, accountID,
	).Scan(
		&model.AccountID, &model.UserID, &model.Name, &model.AccountType, &model.CurrencyCode,
		&model.Description, &model.IsActive,
		&model.CreatedAt, &model.CreatedBy, &model.LastUpdatedAt, &model.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account", err)
	}

	account := mapping.ToDomainAccount(model)
	return &account, nil
}

// ListAccountsByUser retrieves all accounts belonging to a user.
func (r *PgxAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE user_id = $1
		ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var model models.Account
		if err := rows.Scan(
			&model.AccountID, &model.UserID, &model.Name, &model.AccountType, &model.CurrencyCode,
			&model.Description, &model.IsActive,
			&model.CreatedAt, &model.CreatedBy, &model.LastUpdatedAt, &model.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(model))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate account rows", err)
	}
	return accounts, nil
}

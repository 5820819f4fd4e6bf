package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jomonylw/flow-balance-sub006/internal/apperrors"
	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	"github.com/jomonylw/flow-balance-sub006/internal/models"
	"github.com/jomonylw/flow-balance-sub006/internal/utils/mapping"
)

const transactionColumns = `
	transaction_id, user_id, account_id, txn_type, amount, currency_code, txn_date,
	notes, prior_balance, delta,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxLedgerRepository implements the ledger repository using pgxpool.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(db *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveTransaction inserts a new ledger entry.
func (r *PgxLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	model := mapping.ToModelTransaction(txn)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		model.TransactionID, model.UserID, model.AccountID, model.TxnType, model.Amount,
		model.CurrencyCode, model.TxnDate, model.Notes, model.PriorBalance, model.Delta,
		model.CreatedAt, model.CreatedBy, model.LastUpdatedAt, model.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save transaction", err)
	}
	return nil
}

// ListTransactionsInRange retrieves an account's entries with
// start <= txn_date <= end, ordered chronologically.
func (r *PgxLedgerRepository) ListTransactionsInRange(ctx context.Context, accountID string, start, end time.Time) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE account_id = $1 AND txn_date >= $2 AND txn_date <= $3
		ORDER BY txn_date, created_at`,
		accountID, start, end,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list transactions", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		model, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(*model))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate transaction rows", err)
	}
	return txns, nil
}

// FindLatestCheckpointBefore retrieves the most recent BALANCE entry in the
// given currency dated on or before asOf.
func (r *PgxLedgerRepository) FindLatestCheckpointBefore(ctx context.Context, accountID, currencyCode string, asOf time.Time) (*domain.Transaction, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE account_id = $1 AND currency_code = $2 AND txn_type = 'BALANCE'
			AND txn_date <= $3
		ORDER BY txn_date DESC, created_at DESC
		LIMIT 1`,
		accountID, currencyCode, asOf,
	)

	model, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find balance checkpoint", err)
	}

	txn := mapping.ToDomainTransaction(*model)
	return &txn, nil
}

// FindEarliestTransactionDate retrieves the date of the account's first entry.
func (r *PgxLedgerRepository) FindEarliestTransactionDate(ctx context.Context, accountID string) (time.Time, error) {
	var earliest time.Time
	err := r.Pool.QueryRow(ctx, `
		SELECT MIN(txn_date)
		FROM transactions
		WHERE account_id = $1
		HAVING MIN(txn_date) IS NOT NULL`,
		accountID,
	).Scan(&earliest)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, apperrors.ErrNotFound
		}
		return time.Time{}, apperrors.NewAppError(500, "failed to find earliest transaction date", err)
	}
	return earliest, nil
}

// ListTransactionCurrencies retrieves the distinct currency codes the account
// has recorded entries in.
func (r *PgxLedgerRepository) ListTransactionCurrencies(ctx context.Context, accountID string) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT DISTINCT currency_code
		FROM transactions
		WHERE account_id = $1
		ORDER BY currency_code`,
		accountID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list transaction currencies", err)
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

// scanTransaction scans one row laid out as transactionColumns.
func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var model models.Transaction
	err := row.Scan(
		&model.TransactionID, &model.UserID, &model.AccountID, &model.TxnType, &model.Amount,
		&model.CurrencyCode, &model.TxnDate, &model.Notes, &model.PriorBalance, &model.Delta,
		&model.CreatedAt, &model.CreatedBy, &model.LastUpdatedAt, &model.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &model, nil
}

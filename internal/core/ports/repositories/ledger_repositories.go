package repositories

import (
	"context"
	"time"

	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
)

// LedgerReader defines read operations over an account's transactions.
// The engine is a read-only consumer of the ledger.
type LedgerReader interface {
	// ListTransactionsInRange retrieves transactions for an account with
	// start <= date <= end, ordered by date ascending then creation time.
	ListTransactionsInRange(ctx context.Context, accountID string, start, end time.Time) ([]domain.Transaction, error)

	// FindLatestCheckpointBefore retrieves the most recent BALANCE
	// transaction in the given currency dated on or before asOf.
	// Returns apperrors.ErrNotFound when the account has no checkpoint yet.
	FindLatestCheckpointBefore(ctx context.Context, accountID, currencyCode string, asOf time.Time) (*domain.Transaction, error)

	// FindEarliestTransactionDate retrieves the date of the account's first
	// transaction, or apperrors.ErrNotFound for an empty ledger.
	FindEarliestTransactionDate(ctx context.Context, accountID string) (time.Time, error)

	// ListTransactionCurrencies retrieves the distinct currency codes the
	// account has recorded entries in.
	ListTransactionCurrencies(ctx context.Context, accountID string) ([]string, error)
}

// LedgerWriter defines write operations for ledger entries. Only the
// transaction recording service uses it; the engine itself never writes.
type LedgerWriter interface {
	// SaveTransaction persists a new ledger entry.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

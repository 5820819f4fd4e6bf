package services

import (
	"context"
	"time"

	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	"github.com/jomonylw/flow-balance-sub006/internal/dto"
)

// TransactionSvc records and lists ledger entries. The write path computes
// the structured checkpoint delta; the engine reads the ledger through
// repositories and never mutates it.
type TransactionSvc interface {
	// CreateTransaction persists a new ledger entry. For BALANCE checkpoints
	// on stock accounts it computes PriorBalance and Delta at write time.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// ListTransactions retrieves an account's entries in a date range,
	// ordered by date ascending.
	ListTransactions(ctx context.Context, userID, accountID string, start, end time.Time) ([]domain.Transaction, error)
}

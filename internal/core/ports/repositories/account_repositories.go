package repositories

import (
	"context"

	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account by its ID, scoped to the user.
	FindAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error)

	// ListAccountsByUser retrieves all accounts belonging to a user.
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

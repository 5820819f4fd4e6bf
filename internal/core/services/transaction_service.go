package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jomonylw/flow-balance-sub006/internal/apperrors"
	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	portsrepo "github.com/jomonylw/flow-balance-sub006/internal/core/ports/repositories"
	portssvc "github.com/jomonylw/flow-balance-sub006/internal/core/ports/services"
	"github.com/jomonylw/flow-balance-sub006/internal/dto"
	"github.com/jomonylw/flow-balance-sub006/internal/utils/dateutil"
)

// transactionService records ledger entries. It is the only writer of the
// ledger; the balance and trend services consume it read-only.
type transactionService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	balance     portssvc.BalanceSvc
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(accountRepo portsrepo.AccountReader, ledgerRepo portsrepo.LedgerRepositoryFacade, balance portssvc.BalanceSvc) portssvc.TransactionSvc {
	return &transactionService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		balance:     balance,
	}
}

var _ portssvc.TransactionSvc = (*transactionService)(nil)

// CreateTransaction persists a new ledger entry. BALANCE checkpoints on
// stock accounts get their prior balance and signed delta computed here,
// once, from the ledger as it stands; they are stored as structured fields
// rather than encoded into the notes text.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: transaction amount cannot be negative", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, creatorUserID, req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account for transaction: %w", err)
	}

	txnType := domain.TransactionType(req.Type)
	if txnType == domain.TxnBalance && !account.AccountType.IsStock() {
		return nil, fmt.Errorf("%w: balance checkpoints only apply to stock accounts", apperrors.ErrValidation)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        creatorUserID,
		AccountID:     account.AccountID,
		Type:          txnType,
		Amount:        req.Amount,
		CurrencyCode:  req.CurrencyCode,
		Date:          dateutil.TruncateToDay(req.Date),
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if txnType == domain.TxnBalance {
		if err := s.attachCheckpointDelta(ctx, creatorUserID, &txn); err != nil {
			return nil, err
		}
	}

	if err := s.ledgerRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction in service: %w", err)
	}

	return &txn, nil
}

// ListTransactions retrieves an account's entries in a date range.
func (s *transactionService) ListTransactions(ctx context.Context, userID, accountID string, start, end time.Time) ([]domain.Transaction, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, userID, accountID); err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	txns, err := s.ledgerRepo.ListTransactionsInRange(ctx, accountID, dateutil.TruncateToDay(start), dateutil.TruncateToDay(end))
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions in service: %w", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// attachCheckpointDelta reconstructs the balance just before the checkpoint
// and stores the signed difference. A first checkpoint has no prior state
// and leaves both fields unset.
func (s *transactionService) attachCheckpointDelta(ctx context.Context, userID string, txn *domain.Transaction) error {
	prior, err := s.balance.BalanceAsOf(ctx, userID, txn.AccountID, txn.CurrencyCode, txn.Date)
	if err != nil {
		return fmt.Errorf("failed to reconstruct prior balance for checkpoint: %w", err)
	}
	if prior == nil {
		return nil
	}

	delta := txn.Amount.Sub(*prior)
	txn.PriorBalance = prior
	txn.Delta = &delta
	return nil
}

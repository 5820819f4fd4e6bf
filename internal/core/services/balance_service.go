package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jomonylw/flow-balance-sub006/internal/apperrors"
	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	portsrepo "github.com/jomonylw/flow-balance-sub006/internal/core/ports/repositories"
	portssvc "github.com/jomonylw/flow-balance-sub006/internal/core/ports/services"
	"github.com/jomonylw/flow-balance-sub006/internal/utils/dateutil"
	"github.com/shopspring/decimal"
)

// balanceService reconstructs stock balances from checkpoint-and-delta
// ledger entries and aggregates flow account totals. It reads the ledger and
// never writes it.
type balanceService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	ledgerRepo  portsrepo.LedgerReader
}

// NewBalanceService creates a new balance service.
func NewBalanceService(accountRepo portsrepo.AccountReader, ledgerRepo portsrepo.LedgerReader) portssvc.BalanceSvc {
	return &balanceService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.BalanceSvc = (*balanceService)(nil)

// BalanceAsOf reconstructs a stock account's balance in one transaction
// currency: the latest BALANCE checkpoint on or before asOf anchors the
// running balance, then every non-BALANCE entry dated strictly after the
// checkpoint and on or before asOf applies as a delta. INCOME adds, EXPENSE
// subtracts, for liabilities exactly as for assets.
//
// A nil result means no checkpoint exists yet. That is a valid business
// state, not an error, and it is distinct from a zero balance.
func (s *balanceService) BalanceAsOf(ctx context.Context, userID, accountID, currencyCode string, asOf time.Time) (*decimal.Decimal, error) {
	account, err := s.getStockAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	return s.reconstructBalance(ctx, account.AccountID, currencyCode, asOf)
}

// BalancesAsOf reconstructs the balance for every currency the account has
// recorded entries in. Currencies without a checkpoint are omitted.
func (s *balanceService) BalancesAsOf(ctx context.Context, userID, accountID string, asOf time.Time) (map[string]decimal.Decimal, error) {
	account, err := s.getStockAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	currencies, err := s.ledgerRepo.ListTransactionCurrencies(ctx, account.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction currencies: %w", err)
	}

	balances := make(map[string]decimal.Decimal, len(currencies))
	for _, currency := range currencies {
		balance, err := s.reconstructBalance(ctx, account.AccountID, currency, asOf)
		if err != nil {
			return nil, err
		}
		if balance != nil {
			balances[currency] = *balance
		}
	}
	return balances, nil
}

// SumInPeriod totals a flow account's contributions with start <= date <= end.
// INCOME accounts sum INCOME entries, EXPENSE accounts sum EXPENSE entries;
// checkpoints never occur on flow accounts and are ignored if present.
func (s *balanceService) SumInPeriod(ctx context.Context, userID, accountID string, start, end time.Time) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find account: %w", err)
	}
	if !account.AccountType.IsFlow() {
		return decimal.Zero, fmt.Errorf("%w: account %s is not a flow account", apperrors.ErrValidation, accountID)
	}

	txns, err := s.ledgerRepo.ListTransactionsInRange(ctx, accountID, dateutil.TruncateToDay(start), dateutil.TruncateToDay(end))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list transactions: %w", err)
	}

	wanted := flowTransactionType(account.AccountType)
	sum := decimal.Zero
	for _, txn := range txns {
		if txn.Type == wanted {
			sum = sum.Add(txn.Amount)
		}
	}
	return sum, nil
}

// CumulativeSums returns running totals over successive intervals: each
// element is the prefix sum of every interval up to and including it.
func (s *balanceService) CumulativeSums(ctx context.Context, userID, accountID string, intervals []domain.Interval) ([]decimal.Decimal, error) {
	sums := make([]decimal.Decimal, 0, len(intervals))
	running := decimal.Zero
	for _, interval := range intervals {
		periodSum, err := s.SumInPeriod(ctx, userID, accountID, interval.Start, interval.End)
		if err != nil {
			return nil, err
		}
		running = running.Add(periodSum)
		sums = append(sums, running)
	}
	return sums, nil
}

func (s *balanceService) getStockAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if !account.AccountType.IsStock() {
		return nil, fmt.Errorf("%w: account %s is not a stock account", apperrors.ErrValidation, accountID)
	}
	return account, nil
}

func (s *balanceService) reconstructBalance(ctx context.Context, accountID, currencyCode string, asOf time.Time) (*decimal.Decimal, error) {
	asOf = dateutil.TruncateToDay(asOf)

	checkpoint, err := s.ledgerRepo.FindLatestCheckpointBefore(ctx, accountID, currencyCode, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find balance checkpoint: %w", err)
	}

	running := checkpoint.Amount

	txns, err := s.ledgerRepo.ListTransactionsInRange(ctx, accountID, checkpoint.Date, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions after checkpoint: %w", err)
	}

	for _, txn := range txns {
		if txn.IsCheckpoint() || txn.CurrencyCode != currencyCode {
			continue
		}
		// Deltas on the checkpoint date itself are already reflected in the
		// checkpoint amount.
		if !txn.Date.After(checkpoint.Date) {
			continue
		}
		running = applyDelta(running, txn)
	}
	return &running, nil
}

// applyDelta applies one non-checkpoint entry to a running stock balance.
func applyDelta(running decimal.Decimal, txn domain.Transaction) decimal.Decimal {
	switch txn.Type {
	case domain.TxnIncome:
		return running.Add(txn.Amount)
	case domain.TxnExpense:
		return running.Sub(txn.Amount)
	default:
		return running
	}
}

// flowTransactionType maps a flow account type to the transaction type it
// accumulates.
func flowTransactionType(accountType domain.AccountType) domain.TransactionType {
	if accountType == domain.Income {
		return domain.TxnIncome
	}
	return domain.TxnExpense
}

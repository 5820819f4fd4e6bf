package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates how a ledger entry affects an account.
type TransactionType string

const (
	// TxnIncome and TxnExpense are deltas on flow accounts and signed
	// adjustments on stock accounts.
	TxnIncome  TransactionType = "INCOME"
	TxnExpense TransactionType = "EXPENSE"
	// TxnBalance is a checkpoint: for stock accounts its amount is the
	// absolute balance at that date, not a delta.
	TxnBalance TransactionType = "BALANCE"
)

// Transaction represents a single ledger entry for an account.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`
	AccountID     string          `json:"accountID"` // FK -> Account.accountID
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"` // Always >= 0
	CurrencyCode  string          `json:"currencyCode"`
	Date          time.Time       `json:"date"`
	Notes         string          `json:"notes,omitempty"`

	// PriorBalance and Delta are populated on BALANCE checkpoints at write
	// time: the reconstructed balance just before the checkpoint and the
	// signed difference to the checkpoint amount. They are structured data,
	// never re-parsed from the notes text.
	PriorBalance *decimal.Decimal `json:"priorBalance,omitempty"`
	Delta        *decimal.Decimal `json:"delta,omitempty"`

	AuditFields
}

// IsCheckpoint reports whether the transaction anchors balance reconstruction.
func (t Transaction) IsCheckpoint() bool {
	return t.Type == TxnBalance
}

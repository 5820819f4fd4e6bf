package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents one ledger entry row. BALANCE rows carry the
// structured checkpoint fields prior_balance and delta.
type Transaction struct {
	TransactionID string           `db:"transaction_id"` // Primary Key (UUID)
	UserID        string           `db:"user_id"`
	AccountID     string           `db:"account_id"` // FK -> accounts
	TxnType       string           `db:"txn_type"`   // INCOME | EXPENSE | BALANCE
	Amount        decimal.Decimal  `db:"amount"`
	CurrencyCode  string           `db:"currency_code"`
	TxnDate       time.Time        `db:"txn_date"`
	Notes         *string          `db:"notes"`         // Nullable
	PriorBalance  *decimal.Decimal `db:"prior_balance"` // Nullable, BALANCE rows only
	Delta         *decimal.Decimal `db:"delta"`         // Nullable, BALANCE rows only
	AuditFields
}

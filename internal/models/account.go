package models

// Account represents a financial account row.
type Account struct {
	AccountID    string `db:"account_id"` // Primary Key (UUID)
	UserID       string `db:"user_id"`
	Name         string `db:"name"`
	AccountType  string `db:"account_type"` // ASSET | LIABILITY | INCOME | EXPENSE
	CurrencyCode string `db:"currency_code"`
	Description  string `db:"description"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}

package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// IsStock reports whether the account's meaningful state is a balance at a
// point in time (assets and liabilities).
func (t AccountType) IsStock() bool {
	return t == Asset || t == Liability
}

// IsFlow reports whether the account's meaningful state is accumulation over
// a period (income and expenses).
func (t AccountType) IsFlow() bool {
	return t == Income || t == Expense
}

// Account represents a financial account within the ledger.
// The settlement currency is immutable once any transaction exists.
type Account struct {
	AccountID    string      `json:"accountID"` // Primary Key (UUID)
	UserID       string      `json:"userID"`
	Name         string      `json:"name"`
	AccountType  AccountType `json:"accountType"`
	CurrencyCode string      `json:"currencyCode"`
	Description  string      `json:"description"`
	IsActive     bool        `json:"isActive"`
	AuditFields
}

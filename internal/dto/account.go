package dto

import (
	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the structure for creating a new account.
type CreateAccountRequest struct {
	Name         string `json:"name" binding:"required"`
	AccountType  string `json:"accountType" binding:"required,oneof=ASSET LIABILITY INCOME EXPENSE"`
	CurrencyCode string `json:"currencyCode" binding:"required,currencycode"`
	Description  string `json:"description"`
}

// AccountResponse defines the structure for API responses containing account details.
type AccountResponse struct {
	AccountID    string `json:"accountID"`
	Name         string `json:"name"`
	AccountType  string `json:"accountType"`
	CurrencyCode string `json:"currencyCode"`
	Description  string `json:"description"`
	IsActive     bool   `json:"isActive"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    account.AccountID,
		Name:         account.Name,
		AccountType:  string(account.AccountType),
		CurrencyCode: account.CurrencyCode,
		Description:  account.Description,
		IsActive:     account.IsActive,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}

// BalanceResponse reports a stock account's reconstructed balances per
// transaction currency. Balances is empty when the account has no checkpoint
// on or before the requested date.
type BalanceResponse struct {
	AccountID string                     `json:"accountID"`
	AsOf      string                     `json:"asOf"`
	Balances  map[string]decimal.Decimal `json:"balances"`
	HasData   bool                       `json:"hasData"`
}

// PeriodTotalResponse reports a flow account's accumulation over a period.
type PeriodTotalResponse struct {
	AccountID string          `json:"accountID"`
	FromDate  string          `json:"fromDate"`
	ToDate    string          `json:"toDate"`
	Total     decimal.Decimal `json:"total"`
}

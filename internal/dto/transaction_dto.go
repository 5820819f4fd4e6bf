package dto

import (
	"time"

	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the structure for recording a ledger entry.
type CreateTransactionRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Type         string          `json:"type" binding:"required,oneof=INCOME EXPENSE BALANCE"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,currencycode"`
	Date         time.Time       `json:"date" binding:"required"`
	Notes        string          `json:"notes"`
}

// TransactionResponse defines the structure for API responses containing transaction details.
type TransactionResponse struct {
	TransactionID string           `json:"transactionID"`
	AccountID     string           `json:"accountID"`
	Type          string           `json:"type"`
	Amount        decimal.Decimal  `json:"amount"`
	CurrencyCode  string           `json:"currencyCode"`
	Date          time.Time        `json:"date"`
	Notes         string           `json:"notes,omitempty"`
	PriorBalance  *decimal.Decimal `json:"priorBalance,omitempty"`
	Delta         *decimal.Decimal `json:"delta,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		Type:          string(txn.Type),
		Amount:        txn.Amount,
		CurrencyCode:  txn.CurrencyCode,
		Date:          txn.Date,
		Notes:         txn.Notes,
		PriorBalance:  txn.PriorBalance,
		Delta:         txn.Delta,
		CreatedAt:     txn.CreatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to a slice of TransactionResponse DTOs.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

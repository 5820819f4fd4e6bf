package mapping

import (
	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	"github.com/jomonylw/flow-balance-sub006/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID: d.TransactionID,
		UserID:        d.UserID,
		AccountID:     d.AccountID,
		TxnType:       string(d.Type),
		Amount:        d.Amount,
		CurrencyCode:  d.CurrencyCode,
		TxnDate:       d.Date,
		PriorBalance:  d.PriorBalance,
		Delta:         d.Delta,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if d.Notes != "" {
		m.Notes = &d.Notes
	}
	return m
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		AccountID:     m.AccountID,
		Type:          domain.TransactionType(m.TxnType),
		Amount:        m.Amount,
		CurrencyCode:  m.CurrencyCode,
		Date:          m.TxnDate,
		PriorBalance:  m.PriorBalance,
		Delta:         m.Delta,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.Notes != nil {
		d.Notes = *m.Notes
	}
	return d
}

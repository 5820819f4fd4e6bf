package mapping

import (
	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	"github.com/jomonylw/flow-balance-sub006/internal/models"
)

// ToModelCurrency converts a domain Currency to a model Currency
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyCode:  d.CurrencyCode,
		Symbol:        d.Symbol,
		Name:          d.Name,
		DecimalPlaces: d.DecimalPlaces,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyCode:  m.CurrencyCode,
		Symbol:        m.Symbol,
		Name:          m.Name,
		DecimalPlaces: m.DecimalPlaces,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

package mapping

import (
	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	"github.com/jomonylw/flow-balance-sub006/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	m := models.ExchangeRate{
		ExchangeRateID:   d.ExchangeRateID,
		UserID:           d.UserID,
		FromCurrencyCode: d.FromCurrencyCode,
		ToCurrencyCode:   d.ToCurrencyCode,
		Rate:             d.Rate,
		EffectiveDate:    d.EffectiveDate,
		RateType:         string(d.Type),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
	if d.SourceRateID != "" {
		m.SourceRateID = &d.SourceRateID
	}
	if d.Notes != "" {
		m.Notes = &d.Notes
	}
	return m
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	d := domain.ExchangeRate{
		ExchangeRateID:   m.ExchangeRateID,
		UserID:           m.UserID,
		FromCurrencyCode: m.FromCurrencyCode,
		ToCurrencyCode:   m.ToCurrencyCode,
		Rate:             m.Rate,
		EffectiveDate:    m.EffectiveDate,
		Type:             domain.RateType(m.RateType),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	if m.SourceRateID != nil {
		d.SourceRateID = *m.SourceRateID
	}
	if m.Notes != nil {
		d.Notes = *m.Notes
	}
	return d
}

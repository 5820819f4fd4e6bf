package domain

// Currency represents a supported currency in the domain.
// Currencies are immutable once referenced by a rate or a transaction.
type Currency struct {
	CurrencyCode  string `json:"currencyCode"`  // Primary Key (e.g., "USD")
	Symbol        string `json:"symbol"`        // e.g., "$"
	Name          string `json:"name"`          // e.g., "US Dollar"
	DecimalPlaces int32  `json:"decimalPlaces"` // Display precision, e.g., 2
	AuditFields
}

package services

// ServiceContainer bundles the service implementations handed to the HTTP
// layer and the scheduler at wiring time.
type ServiceContainer struct {
	Currency       CurrencySvcFacade
	Account        AccountSvcFacade
	ExchangeRate   ExchangeRateSvcFacade
	RateDerivation RateDerivationSvc
	Conversion     ConversionSvc
	Balance        BalanceSvc
	Trend          TrendSvc
	Transaction    TransactionSvc
}

package repositories

// RepositoryProvider bundles the repository implementations handed to the
// service layer at wiring time.
type RepositoryProvider struct {
	CurrencyRepo     CurrencyRepositoryFacade
	AccountRepo      AccountRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	LedgerRepo       LedgerRepositoryFacade
}

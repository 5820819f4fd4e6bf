package services

import (
	portsrepo "github.com/jomonylw/flow-balance-sub006/internal/core/ports/repositories"
	portssvc "github.com/jomonylw/flow-balance-sub006/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Account = NewAccountService(repos.AccountRepo, repos.CurrencyRepo)

	// Derivation feeds the converter through the rate store, so it is wired
	// before the rate service that triggers it.
	container.RateDerivation = NewRateDerivationService(repos.ExchangeRateRepo, repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency, container.RateDerivation)
	container.Conversion = NewConversionService(repos.ExchangeRateRepo)

	container.Balance = NewBalanceService(repos.AccountRepo, repos.LedgerRepo)
	container.Trend = NewTrendService(repos.AccountRepo, repos.LedgerRepo, container.Conversion)
	container.Transaction = NewTransactionService(repos.AccountRepo, repos.LedgerRepo, container.Balance)

	return container
}

package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/jomonylw/flow-balance-sub006/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx repository against the shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:     newPgxCurrencyRepository(dbPool),
		AccountRepo:      newPgxAccountRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		LedgerRepo:       newPgxLedgerRepository(dbPool),
	}
}

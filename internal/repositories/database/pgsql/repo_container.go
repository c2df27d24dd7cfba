package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/cryptofolio/ledgerd/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	currencyRepo := newPgxCurrencyRepository(dbPool)
	exchangeRateRepo := newPgxExchangeRateRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	holdingRepo := newPgxHoldingRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CurrencyRepo:     currencyRepo,
		ExchangeRateRepo: exchangeRateRepo,
		AccountRepo:      accountRepo,
		HoldingRepo:      holdingRepo,
		TransactionRepo:  transactionRepo,
	}
}

package services

import (
	portsrepo "github.com/cryptofolio/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/cryptofolio/ledgerd/internal/core/ports/services"
	"github.com/cryptofolio/ledgerd/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency)
	container.Account = NewAccountService(repos.AccountRepo)
	container.Holding = NewHoldingsService(repos.HoldingRepo, cfg.BaseCurrency)
	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.HoldingRepo,
		repos.ExchangeRateRepo,
		container.Holding,
		container.Account,
		container.Currency,
	)
	container.Portfolio = NewPortfolioService(container.Holding, container.Account)

	return container
}

package services

import (
	"context"

	"github.com/cryptofolio/ledgerd/internal/core/domain"
)

// PortfolioSvc builds read-only valued views over the current holdings.
type PortfolioSvc interface {
	// GetPortfolio values every holding with the supplied price function and
	// returns per-account entries plus category and asset rollups. Holdings
	// whose asset has no price are included unvalued.
	GetPortfolio(ctx context.Context, prices domain.PriceFn) (*domain.Portfolio, error)
}

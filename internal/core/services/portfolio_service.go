package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cryptofolio/ledgerd/internal/core/domain"
	portssvc "github.com/cryptofolio/ledgerd/internal/core/ports/services"
)

// portfolioService builds valued, grouped views over the current holdings.
// It never mutates anything and never fetches prices itself.
type portfolioService struct {
	holdingSvc portssvc.HoldingReaderSvc
	accountSvc portssvc.AccountReaderSvc
}

// NewPortfolioService creates a new portfolio projection service.
func NewPortfolioService(holdingSvc portssvc.HoldingReaderSvc, accountSvc portssvc.AccountReaderSvc) portssvc.PortfolioSvc {
	return &portfolioService{holdingSvc: holdingSvc, accountSvc: accountSvc}
}

var _ portssvc.PortfolioSvc = (*portfolioService)(nil)

func (s *portfolioService) GetPortfolio(ctx context.Context, prices domain.PriceFn) (*domain.Portfolio, error) {
	if prices == nil {
		prices = func(string) (decimal.Decimal, bool) { return decimal.Zero, false }
	}

	accounts, err := s.accountSvc.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts for portfolio: %w", err)
	}
	categories, err := s.accountSvc.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories for portfolio: %w", err)
	}
	holdings, err := s.holdingSvc.ListHoldings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings for portfolio: %w", err)
	}

	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.CategoryID] = c.Name
	}

	byAccount := make(map[string][]domain.HoldingValuation)
	for _, h := range holdings {
		var price *decimal.Decimal
		if p, ok := prices(h.Asset); ok {
			price = &p
		}
		byAccount[h.AccountID] = append(byAccount[h.AccountID], domain.ValueHolding(h, price))
	}

	// Accounts keep their listing order; accounts without positions are omitted.
	entries := make([]domain.PortfolioEntry, 0, len(byAccount))
	for _, account := range accounts {
		valuations, ok := byAccount[account.AccountID]
		if !ok {
			continue
		}
		entries = append(entries, domain.PortfolioEntry{
			AccountID:    account.AccountID,
			AccountName:  account.Name,
			CategoryID:   account.CategoryID,
			CategoryName: categoryNames[account.CategoryID],
			Holdings:     valuations,
		})
	}

	portfolio := domain.BuildPortfolio(entries)
	return &portfolio, nil
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/cryptofolio/ledgerd/internal/core/domain"
	portsrepo "github.com/cryptofolio/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/cryptofolio/ledgerd/internal/core/ports/services"
	"github.com/cryptofolio/ledgerd/internal/utils/costbasis"
)

// holdingsService maintains per-(account, asset) positions with
// weighted-average cost accounting. Writes only happen through ApplyDeltaInTx,
// inside the recorder's transaction.
type holdingsService struct {
	holdingRepo portsrepo.HoldingRepositoryWithTx
	// baseCurrency denominates the cost basis of every new position.
	baseCurrency string
}

// NewHoldingsService creates a new holdings ledger service.
func NewHoldingsService(holdingRepo portsrepo.HoldingRepositoryWithTx, baseCurrency string) portssvc.HoldingSvcFacade {
	return &holdingsService{holdingRepo: holdingRepo, baseCurrency: baseCurrency}
}

var _ portssvc.HoldingSvcFacade = (*holdingsService)(nil)

func (s *holdingsService) GetHolding(ctx context.Context, accountID, asset string) (*domain.Holding, error) {
	holding, err := s.holdingRepo.FindHolding(ctx, accountID, asset)
	if err != nil {
		return nil, fmt.Errorf("failed to find holding %s/%s: %w", accountID, asset, err)
	}
	return holding, nil
}

func (s *holdingsService) ListHoldings(ctx context.Context) ([]domain.Holding, error) {
	holdings, err := s.holdingRepo.ListHoldings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	if holdings == nil {
		return []domain.Holding{}, nil
	}
	return holdings, nil
}

func (s *holdingsService) ListHoldingsByAccount(ctx context.Context, accountID string) ([]domain.Holding, error) {
	holdings, err := s.holdingRepo.ListHoldingsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings for account %s: %w", accountID, err)
	}
	if holdings == nil {
		return []domain.Holding{}, nil
	}
	return holdings, nil
}

// ApplyDeltaInTx reads the position under a row lock, recomputes it, and
// writes it back. The row stays locked until the caller commits, so a
// concurrent recorder on the same (account, asset) waits here instead of
// averaging against a stale basis.
func (s *holdingsService) ApplyDeltaInTx(ctx context.Context, tx pgx.Tx, accountID, asset string, delta decimal.Decimal, unitPrice *decimal.Decimal) (*domain.Holding, decimal.Decimal, error) {
	current, err := s.holdingRepo.FindHoldingForUpdate(ctx, tx, accountID, asset)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to lock holding %s/%s: %w", accountID, asset, err)
	}

	q0, c0 := decimal.Zero, decimal.Zero
	basisCurrency := s.baseCurrency
	if current != nil {
		q0 = current.Quantity
		c0 = current.AvgCostBasis
		basisCurrency = current.CostBasisCurrency
	}

	q1, c1, realized, err := costbasis.Apply(q0, c0, delta, unitPrice)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("holding %s/%s: %w", accountID, asset, err)
	}

	holding := domain.Holding{
		AccountID:         accountID,
		Asset:             asset,
		Quantity:          q1,
		AvgCostBasis:      c1,
		CostBasisCurrency: basisCurrency,
		UpdatedAt:         time.Now().UTC(),
	}
	if err := s.holdingRepo.UpsertHoldingInTx(ctx, tx, holding); err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to upsert holding %s/%s: %w", accountID, asset, err)
	}
	return &holding, realized, nil
}

package services

import (
	"context"

	"github.com/cryptofolio/ledgerd/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// HoldingReaderSvc defines read operations for holdings data
type HoldingReaderSvc interface {
	// GetHolding retrieves one (account, asset) position.
	GetHolding(ctx context.Context, accountID, asset string) (*domain.Holding, error)

	// ListHoldings retrieves every position across all accounts.
	ListHoldings(ctx context.Context) ([]domain.Holding, error)

	// ListHoldingsByAccount retrieves all positions of one account.
	ListHoldingsByAccount(ctx context.Context, accountID string) ([]domain.Holding, error)
}

// HoldingWriterSvc applies quantity deltas to positions. It is only called by
// the recorder, inside the transaction the recorder owns.
type HoldingWriterSvc interface {
	// ApplyDeltaInTx reads the position under a row lock, applies the signed
	// delta with weighted-average cost accounting, and writes it back. For a
	// decrease it returns the realized P&L against the retained basis; for an
	// increase the realized figure is zero. A delta below the available
	// quantity fails with apperrors.ErrInsufficientHoldings and writes nothing.
	ApplyDeltaInTx(ctx context.Context, tx pgx.Tx, accountID, asset string, delta decimal.Decimal, unitPrice *decimal.Decimal) (*domain.Holding, decimal.Decimal, error)
}

// HoldingSvcFacade combines all holdings-related service interfaces
type HoldingSvcFacade interface {
	HoldingReaderSvc
	HoldingWriterSvc
}

package repositories

import (
	"context"

	"github.com/cryptofolio/ledgerd/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// HoldingReader defines read operations for holdings data
type HoldingReader interface {
	// FindHolding retrieves one (account, asset) position, or apperrors.ErrNotFound.
	FindHolding(ctx context.Context, accountID, asset string) (*domain.Holding, error)

	// ListHoldings retrieves all positions, ordered by asset.
	ListHoldings(ctx context.Context) ([]domain.Holding, error)

	// ListHoldingsByAccount retrieves all positions of one account, ordered by asset.
	ListHoldingsByAccount(ctx context.Context, accountID string) ([]domain.Holding, error)
}

// HoldingWriter defines write operations for holdings data. Mutations only
// happen inside a recorder-owned transaction so that concurrent writers on the
// same row serialize on the row lock rather than clobbering the average.
type HoldingWriter interface {
	// FindHoldingForUpdate reads one position with a FOR UPDATE row lock.
	// Returns (nil, nil) when the position does not exist yet.
	FindHoldingForUpdate(ctx context.Context, tx pgx.Tx, accountID, asset string) (*domain.Holding, error)

	// UpsertHoldingInTx inserts or replaces the position within tx.
	UpsertHoldingInTx(ctx context.Context, tx pgx.Tx, holding domain.Holding) error
}

// HoldingRepositoryFacade combines all holdings-related repository interfaces
type HoldingRepositoryFacade interface {
	HoldingReader
	HoldingWriter
}

// HoldingRepositoryWithTx extends HoldingRepositoryFacade with transaction capabilities
type HoldingRepositoryWithTx interface {
	HoldingRepositoryFacade
	TransactionManager
}

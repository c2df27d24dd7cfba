package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cryptofolio/ledgerd/internal/apperrors"
	"github.com/cryptofolio/ledgerd/internal/core/domain"
	portsrepo "github.com/cryptofolio/ledgerd/internal/core/ports/repositories"
	"github.com/cryptofolio/ledgerd/internal/models"
	"github.com/cryptofolio/ledgerd/internal/utils/mapping"
)

type PgxHoldingRepository struct {
	BaseRepository
}

// newPgxHoldingRepository creates a new repository for holdings data.
func newPgxHoldingRepository(pool PgxPool) portsrepo.HoldingRepositoryWithTx {
	return &PgxHoldingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.HoldingRepositoryWithTx = (*PgxHoldingRepository)(nil)

const holdingColumns = `account_id, asset, quantity, avg_cost_basis, cost_basis_currency, updated_at`

func scanHolding(row pgx.Row) (models.Holding, error) {
	var m models.Holding
	err := row.Scan(
		&m.AccountID,
		&m.Asset,
		&m.Quantity,
		&m.AvgCostBasis,
		&m.CostBasisCurrency,
		&m.UpdatedAt,
	)
	return m, err
}

// FindHolding retrieves one (account, asset) position.
func (r *PgxHoldingRepository) FindHolding(ctx context.Context, accountID, asset string) (*domain.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings WHERE account_id = $1 AND asset = $2;`

	m, err := scanHolding(r.Pool.QueryRow(ctx, query, accountID, asset))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find holding %s/%s: %w", accountID, asset, err)
	}

	holding := mapping.ToDomainHolding(m)
	return &holding, nil
}

// ListHoldings retrieves every position, ordered by asset.
func (r *PgxHoldingRepository) ListHoldings(ctx context.Context) ([]domain.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings ORDER BY asset, account_id;`
	return r.listHoldings(ctx, query)
}

// ListHoldingsByAccount retrieves the positions of one account, ordered by asset.
func (r *PgxHoldingRepository) ListHoldingsByAccount(ctx context.Context, accountID string) ([]domain.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings WHERE account_id = $1 ORDER BY asset;`
	return r.listHoldings(ctx, query, accountID)
}

func (r *PgxHoldingRepository) listHoldings(ctx context.Context, query string, args ...any) ([]domain.Holding, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	defer rows.Close()

	var modelHoldings []models.Holding
	for rows.Next() {
		m, err := scanHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding row: %w", err)
		}
		modelHoldings = append(modelHoldings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding rows: %w", err)
	}

	return mapping.ToDomainHoldingSlice(modelHoldings), nil
}

// FindHoldingForUpdate reads one position with a FOR UPDATE row lock so
// concurrent recorders touching the same position serialize here. A missing
// position is reported as (nil, nil), not an error.
func (r *PgxHoldingRepository) FindHoldingForUpdate(ctx context.Context, tx pgx.Tx, accountID, asset string) (*domain.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings WHERE account_id = $1 AND asset = $2 FOR UPDATE;`

	m, err := scanHolding(tx.QueryRow(ctx, query, accountID, asset))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock holding %s/%s: %w", accountID, asset, err)
	}

	holding := mapping.ToDomainHolding(m)
	return &holding, nil
}

// UpsertHoldingInTx inserts or replaces the position within tx.
func (r *PgxHoldingRepository) UpsertHoldingInTx(ctx context.Context, tx pgx.Tx, holding domain.Holding) error {
	m := mapping.ToModelHolding(holding)

	query := `
		INSERT INTO holdings (account_id, asset, quantity, avg_cost_basis, cost_basis_currency, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (account_id, asset) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			avg_cost_basis = EXCLUDED.avg_cost_basis,
			cost_basis_currency = EXCLUDED.cost_basis_currency,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := tx.Exec(ctx, query,
		m.AccountID,
		m.Asset,
		m.Quantity,
		m.AvgCostBasis,
		m.CostBasisCurrency,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert holding %s/%s: %w", m.AccountID, m.Asset, err)
	}
	return nil
}

package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cryptofolio/ledgerd/internal/apperrors"
	"github.com/cryptofolio/ledgerd/internal/core/domain"
	portsrepo "github.com/cryptofolio/ledgerd/internal/core/ports/repositories"
	"github.com/cryptofolio/ledgerd/internal/models"
	"github.com/cryptofolio/ledgerd/internal/utils/mapping"
)

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool PgxPool) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

// currencyColumns is the scan order shared by every currency query.
const currencyColumns = `code, name, symbol, precision, asset_class, enabled, created_at, updated_at`

func scanCurrency(row pgx.Row) (models.Currency, error) {
	var m models.Currency
	err := row.Scan(
		&m.Code,
		&m.Name,
		&m.Symbol,
		&m.Precision,
		&m.AssetClass,
		&m.Enabled,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// SaveCurrency inserts a new currency. The code is the primary key; inserting
// a taken code reports apperrors.ErrDuplicate.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)

	query := `
		INSERT INTO currencies (code, name, symbol, precision, asset_class, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.Code,
		m.Name,
		m.Symbol,
		m.Precision,
		m.AssetClass,
		m.Enabled,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save currency %s: %w", m.Code, err)
	}
	return nil
}

// FindCurrencyByCode retrieves a currency by its code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE code = $1;`

	m, err := scanCurrency(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency by code %s: %w", code, err)
	}

	currency := mapping.ToDomainCurrency(m)
	return &currency, nil
}

// ListCurrencies retrieves currencies matching the filter, fiat before
// stablecoins before crypto, alphabetical within each class.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context, filter portsrepo.CurrencyListFilter) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies`
	var args []any
	var conditions []string

	if filter.AssetClass != nil {
		args = append(args, string(*filter.AssetClass))
		conditions = append(conditions, fmt.Sprintf("asset_class = $%d", len(args)))
	}
	if filter.EnabledOnly {
		conditions = append(conditions, "enabled = TRUE")
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += `
		ORDER BY CASE asset_class WHEN 'fiat' THEN 1 WHEN 'stablecoin' THEN 2 ELSE 3 END, code;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	defer rows.Close()

	var modelCurrencies []models.Currency
	for rows.Next() {
		m, err := scanCurrency(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan currency row: %w", err)
		}
		modelCurrencies = append(modelCurrencies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currency rows: %w", err)
	}

	return mapping.ToDomainCurrencySlice(modelCurrencies), nil
}

// UpdateCurrency updates the mutable fields of an existing currency.
func (r *PgxCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)

	query := `
		UPDATE currencies
		SET name = $2, symbol = $3, precision = $4, updated_at = $5
		WHERE code = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.Code, m.Name, m.Symbol, m.Precision, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update currency %s: %w", m.Code, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetCurrencyEnabled toggles the enabled flag. Idempotent.
func (r *PgxCurrencyRepository) SetCurrencyEnabled(ctx context.Context, code string, enabled bool) error {
	query := `UPDATE currencies SET enabled = $2, updated_at = NOW() WHERE code = $1;`

	tag, err := r.Pool.Exec(ctx, query, code, enabled)
	if err != nil {
		return fmt.Errorf("failed to set enabled for currency %s: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

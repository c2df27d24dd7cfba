package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cryptofolio/ledgerd/internal/apperrors"
	"github.com/cryptofolio/ledgerd/internal/core/domain"
	portsrepo "github.com/cryptofolio/ledgerd/internal/core/ports/repositories"
	"github.com/cryptofolio/ledgerd/internal/models"
	"github.com/cryptofolio/ledgerd/internal/utils/mapping"
	"github.com/cryptofolio/ledgerd/internal/utils/pagination"
)

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rate data.
func newPgxExchangeRateRepository(pool PgxPool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

const exchangeRateColumns = `exchange_rate_id, from_currency, to_currency, rate, timestamp, source, notes, created_at, updated_at`

func scanExchangeRate(row pgx.Row) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ExchangeRateID,
		&m.FromCurrency,
		&m.ToCurrency,
		&m.Rate,
		&m.Timestamp,
		&m.Source,
		&m.Notes,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// upsertQuery replaces rate, source and notes when a row for the identical
// (from, to, timestamp) already exists, and reports the surviving row's id.
const upsertQuery = `
	INSERT INTO exchange_rates (exchange_rate_id, from_currency, to_currency, rate, timestamp, source, notes, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (from_currency, to_currency, timestamp) DO UPDATE SET
		rate = EXCLUDED.rate,
		source = EXCLUDED.source,
		notes = EXCLUDED.notes,
		updated_at = EXCLUDED.updated_at
	RETURNING exchange_rate_id;
`

func upsertExchangeRate(ctx context.Context, q rowQuerier, rate domain.ExchangeRate) (string, error) {
	m := mapping.ToModelExchangeRate(rate)

	var id string
	err := q.QueryRow(ctx, upsertQuery,
		m.ExchangeRateID,
		m.FromCurrency,
		m.ToCurrency,
		m.Rate,
		m.Timestamp,
		m.Source,
		m.Notes,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to upsert exchange rate %s/%s: %w", m.FromCurrency, m.ToCurrency, err)
	}
	return id, nil
}

// UpsertExchangeRate inserts or replaces a rate observation on the pool.
func (r *PgxExchangeRateRepository) UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) (string, error) {
	return upsertExchangeRate(ctx, r.Pool, rate)
}

// UpsertExchangeRateInTx inserts or replaces a rate observation within a
// caller-owned transaction.
func (r *PgxExchangeRateRepository) UpsertExchangeRateInTx(ctx context.Context, tx pgx.Tx, rate domain.ExchangeRate) (string, error) {
	return upsertExchangeRate(ctx, tx, rate)
}

// FindLatestRate retrieves the most recent observation for the ordered pair.
func (r *PgxExchangeRateRepository) FindLatestRate(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2
		ORDER BY timestamp DESC
		LIMIT 1;
	`
	m, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, from, to))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest rate %s/%s: %w", from, to, err)
	}

	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// FindRateAsOf retrieves the most recent observation with timestamp <= at.
func (r *PgxExchangeRateRepository) FindRateAsOf(ctx context.Context, from, to string, at time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2 AND timestamp <= $3
		ORDER BY timestamp DESC
		LIMIT 1;
	`
	m, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, from, to, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rate %s/%s as of %s: %w", from, to, at.Format(time.RFC3339), err)
	}

	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// ListRateHistory retrieves observations for the pair newest first, keyed on
// (timestamp, id) so a restarted scan never skips or repeats rows.
func (r *PgxExchangeRateRepository) ListRateHistory(ctx context.Context, from, to string, limit int, nextToken *string) ([]domain.ExchangeRate, *string, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2
	`
	args := []any{from, to}

	if nextToken != nil && *nextToken != "" {
		ts, id, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, ts, id)
		query += fmt.Sprintf(" AND (timestamp, exchange_rate_id) < ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY timestamp DESC, exchange_rate_id DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list rate history %s/%s: %w", from, to, err)
	}
	defer rows.Close()

	var modelRates []models.ExchangeRate
	for rows.Next() {
		m, err := scanExchangeRate(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan exchange rate row: %w", err)
		}
		modelRates = append(modelRates, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating exchange rate rows: %w", err)
	}

	var next *string
	if len(modelRates) > limit {
		modelRates = modelRates[:limit]
		last := modelRates[limit-1]
		token := pagination.EncodeCursor(last.Timestamp, last.ExchangeRateID)
		next = &token
	}

	return mapping.ToDomainExchangeRateSlice(modelRates), next, nil
}

package repositories

import (
	"context"
	"time"

	"github.com/cryptofolio/ledgerd/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ExchangeRateReader defines read operations for exchange rate data.
// Lookups are strictly directional; callers needing the reverse pair must
// query it explicitly or invert the result themselves.
type ExchangeRateReader interface {
	// FindLatestRate retrieves the most recent rate for the ordered pair.
	FindLatestRate(ctx context.Context, from, to string) (*domain.ExchangeRate, error)

	// FindRateAsOf retrieves the most recent rate with timestamp <= at.
	FindRateAsOf(ctx context.Context, from, to string, at time.Time) (*domain.ExchangeRate, error)

	// ListRateHistory retrieves rates for the pair ordered by descending
	// timestamp, paginated with an opaque restartable cursor.
	ListRateHistory(ctx context.Context, from, to string, limit int, nextToken *string) ([]domain.ExchangeRate, *string, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// UpsertExchangeRate inserts the rate, or replaces rate/source/notes when
	// a row with the identical (from, to, timestamp) already exists.
	// Returns the row id.
	UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) (string, error)

	// UpsertExchangeRateInTx is UpsertExchangeRate inside a caller-owned
	// transaction, used by the recorder's fiat swap capture.
	UpsertExchangeRateInTx(ctx context.Context, tx pgx.Tx, rate domain.ExchangeRate) (string, error)
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}

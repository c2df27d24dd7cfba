package repositories

import (
	"context"

	"github.com/cryptofolio/ledgerd/internal/core/domain"
)

// CurrencyListFilter narrows ListCurrencies. Zero value means no filtering.
type CurrencyListFilter struct {
	AssetClass  *domain.AssetClass
	EnabledOnly bool
}

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a specific currency by its code.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// ListCurrencies retrieves currencies matching the filter, ordered
	// fiat, then stablecoin, then crypto, then alphabetically by code.
	ListCurrencies(ctx context.Context, filter CurrencyListFilter) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency persists a new currency. Returns apperrors.ErrDuplicate
	// when the code is already taken.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// UpdateCurrency updates mutable fields (name, symbol, precision) of an
	// existing currency. The code itself is immutable.
	UpdateCurrency(ctx context.Context, currency domain.Currency) error

	// SetCurrencyEnabled toggles the enabled flag. Idempotent.
	SetCurrencyEnabled(ctx context.Context, code string, enabled bool) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}

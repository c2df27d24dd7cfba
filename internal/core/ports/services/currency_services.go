package services

import (
	"context"
	"time"

	"github.com/cryptofolio/ledgerd/internal/core/domain"
	"github.com/cryptofolio/ledgerd/internal/dto"
)

// CurrencyReaderSvc defines read operations for the currency catalog
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves cataloged currencies, fiat before stablecoins
	// before crypto, alphabetical within each class.
	ListCurrencies(ctx context.Context, params dto.ListCurrenciesParams) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for the currency catalog
type CurrencyWriterSvc interface {
	// RegisterCurrency catalogs a new currency.
	RegisterCurrency(ctx context.Context, req dto.RegisterCurrencyRequest) (*domain.Currency, error)

	// UpdateCurrency replaces the mutable fields of an existing currency.
	UpdateCurrency(ctx context.Context, currencyCode string, req dto.UpdateCurrencyRequest) (*domain.Currency, error)

	// SetCurrencyEnabled toggles a currency without removing its history.
	SetCurrencyEnabled(ctx context.Context, currencyCode string, enabled bool) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// ExchangeRateReaderSvc defines read operations for exchange rate data.
// Pairs are directional; no interface here ever inverts a stored rate.
type ExchangeRateReaderSvc interface {
	// GetLatestRate retrieves the newest observation for a pair.
	GetLatestRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)

	// GetRateAsOf retrieves the newest observation at or before a point in time.
	GetRateAsOf(ctx context.Context, fromCode, toCode string, at time.Time) (*domain.ExchangeRate, error)

	// GetRateHistory retrieves observations for a pair, newest first.
	GetRateHistory(ctx context.Context, fromCode, toCode string, limit int, nextToken *string) ([]domain.ExchangeRate, *string, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// RecordRate persists a manual rate observation, replacing any prior
	// observation for the same pair and timestamp.
	RecordRate(ctx context.Context, req dto.RecordExchangeRateRequest) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}

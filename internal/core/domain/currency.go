package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AssetClass groups currencies by what backs them.
type AssetClass string

const (
	Fiat       AssetClass = "fiat"
	Crypto     AssetClass = "crypto"
	Stablecoin AssetClass = "stablecoin"
)

// ParseAssetClass maps user-facing spellings onto an AssetClass.
func ParseAssetClass(s string) (AssetClass, bool) {
	switch strings.ToLower(s) {
	case "fiat":
		return Fiat, true
	case "crypto", "cryptocurrency":
		return Crypto, true
	case "stablecoin", "stable":
		return Stablecoin, true
	default:
		return "", false
	}
}

// SortRank orders asset classes for display: fiat first, then stablecoins, then crypto.
func (a AssetClass) SortRank() int {
	switch a {
	case Fiat:
		return 1
	case Stablecoin:
		return 2
	default:
		return 3
	}
}

// Currency is a cataloged fiat or crypto asset.
// Code is globally unique and immutable once any holding or transaction references it;
// currencies are soft-disabled, never deleted.
type Currency struct {
	Code       string     `json:"code"`      // Primary key, e.g. "USD", "BTC"
	Name       string     `json:"name"`      // e.g. "US Dollar"
	Symbol     string     `json:"symbol"`    // e.g. "$", "₿"
	Precision  int        `json:"precision"` // Display precision only; storage keeps full precision
	AssetClass AssetClass `json:"assetClass"`
	Enabled    bool       `json:"enabled"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (c Currency) IsFiat() bool {
	return c.AssetClass == Fiat
}

// IsCrypto reports whether the currency lives on-chain; stablecoins count.
func (c Currency) IsCrypto() bool {
	return c.AssetClass == Crypto || c.AssetClass == Stablecoin
}

// Exchange rate provenance tags.
const (
	RateSourceManual     = "manual"
	RateSourceSwap       = "swap"
	RateSourceCalculated = "calculated"
)

// ExchangeRate is a directional, timestamped conversion fact:
// Rate units of ToCurrencyCode per one FromCurrencyCode.
// At most one row exists per (from, to, timestamp); a repeated write replaces it.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"` // Primary key (UUID)
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"` // Positive
	Timestamp        time.Time       `json:"timestamp"`
	Source           string          `json:"source"` // Provenance tag, default "manual"
	Notes            string          `json:"notes"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// Pair renders the conventional "FROM/TO" pair label.
func (r ExchangeRate) Pair() string {
	return r.FromCurrencyCode + "/" + r.ToCurrencyCode
}

// Inverse derives the reverse-direction rate. It is never stored; the store
// keeps only the direction that was written.
func (r ExchangeRate) Inverse() ExchangeRate {
	return ExchangeRate{
		FromCurrencyCode: r.ToCurrencyCode,
		ToCurrencyCode:   r.FromCurrencyCode,
		Rate:             decimal.NewFromInt(1).Div(r.Rate),
		Timestamp:        r.Timestamp,
		Source:           RateSourceCalculated,
		Notes:            "inverse of " + r.Pair(),
	}
}

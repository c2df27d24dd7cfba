package dto

import (
	"time"

	"github.com/cryptofolio/ledgerd/internal/core/domain"
)

// RegisterCurrencyRequest defines the data needed to catalog a new currency.
type RegisterCurrencyRequest struct {
	Code       string `json:"code" binding:"required,uppercase,min=3,max=10"`
	Name       string `json:"name" binding:"required"`
	Symbol     string `json:"symbol" binding:"required"`
	Precision  int    `json:"precision" binding:"gte=0,lte=18"`
	AssetClass string `json:"assetClass" binding:"required,assetclass"`
}

// UpdateCurrencyRequest updates the mutable fields of a currency; the code is
// taken from the URL and is immutable.
type UpdateCurrencyRequest struct {
	Name      string `json:"name" binding:"required"`
	Symbol    string `json:"symbol" binding:"required"`
	Precision int    `json:"precision" binding:"gte=0,lte=18"`
}

// SetCurrencyEnabledRequest toggles a currency without deleting it.
type SetCurrencyEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// ListCurrenciesParams filters the catalog listing.
type ListCurrenciesParams struct {
	AssetClass  string `form:"assetClass"`
	EnabledOnly bool   `form:"enabledOnly"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Symbol     string    `json:"symbol"`
	Precision  int       `json:"precision"`
	AssetClass string    `json:"assetClass"`
	Enabled    bool      `json:"enabled"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		Code:       c.Code,
		Name:       c.Name,
		Symbol:     c.Symbol,
		Precision:  c.Precision,
		AssetClass: string(c.AssetClass),
		Enabled:    c.Enabled,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ToListCurrencyResponse converts a slice of domain currencies to DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, c := range currencies {
		res[i] = ToCurrencyResponse(&c)
	}
	return res
}

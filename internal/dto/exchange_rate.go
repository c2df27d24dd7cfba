package dto

import (
	"time"

	"github.com/cryptofolio/ledgerd/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordExchangeRateRequest defines the data needed to record a rate observation.
type RecordExchangeRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,uppercase"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,uppercase"`
	Rate             decimal.Decimal `json:"rate" binding:"required"`
	Timestamp        *time.Time      `json:"timestamp"`
	Notes            string          `json:"notes"`
}

// RateQueryParams selects a directional currency pair, optionally as of a
// point in time. Invert asks for the derived reverse-direction rate of the
// stored observation.
type RateQueryParams struct {
	From   string     `form:"from" binding:"required"`
	To     string     `form:"to" binding:"required"`
	At     *time.Time `form:"at" time_format:"2006-01-02T15:04:05Z07:00"`
	Invert bool       `form:"invert"`
}

// RateHistoryParams selects a page of the rate history for a pair.
type RateHistoryParams struct {
	From      string  `form:"from" binding:"required"`
	To        string  `form:"to" binding:"required"`
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ExchangeRateResponse defines the data returned for an exchange rate observation.
type ExchangeRateResponse struct {
	ExchangeRateID   string          `json:"exchangeRateId"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	Timestamp        time.Time       `json:"timestamp"`
	Source           string          `json:"source"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// RateHistoryResponse is one page of observations plus the restart cursor.
type RateHistoryResponse struct {
	Rates     []ExchangeRateResponse `json:"rates"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to its DTO
func ToExchangeRateResponse(r *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:   r.ExchangeRateID,
		FromCurrencyCode: r.FromCurrencyCode,
		ToCurrencyCode:   r.ToCurrencyCode,
		Rate:             r.Rate,
		Timestamp:        r.Timestamp,
		Source:           string(r.Source),
		Notes:            r.Notes,
		CreatedAt:        r.CreatedAt,
	}
}

// ToListExchangeRateResponse converts a slice of domain rates to DTOs
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	res := make([]ExchangeRateResponse, len(rates))
	for i, r := range rates {
		res[i] = ToExchangeRateResponse(&r)
	}
	return res
}

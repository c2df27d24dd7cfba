package mapping

import (
	"github.com/cryptofolio/ledgerd/internal/core/domain"
	"github.com/cryptofolio/ledgerd/internal/models"
)

// ToModelExchangeRate converts a domain rate to its database row shape.
func ToModelExchangeRate(r domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID: r.ExchangeRateID,
		FromCurrency:   r.FromCurrencyCode,
		ToCurrency:     r.ToCurrencyCode,
		Rate:           r.Rate,
		Timestamp:      r.Timestamp,
		Source:         r.Source,
		Notes:          r.Notes,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// ToDomainExchangeRate converts a database row to the domain representation.
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID:   m.ExchangeRateID,
		FromCurrencyCode: m.FromCurrency,
		ToCurrencyCode:   m.ToCurrency,
		Rate:             m.Rate,
		Timestamp:        m.Timestamp,
		Source:           m.Source,
		Notes:            m.Notes,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ToDomainExchangeRateSlice converts a slice of rows.
func ToDomainExchangeRateSlice(ms []models.ExchangeRate) []domain.ExchangeRate {
	out := make([]domain.ExchangeRate, len(ms))
	for i, m := range ms {
		out[i] = ToDomainExchangeRate(m)
	}
	return out
}

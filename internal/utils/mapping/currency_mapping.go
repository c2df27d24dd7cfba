package mapping

import (
	"github.com/cryptofolio/ledgerd/internal/core/domain"
	"github.com/cryptofolio/ledgerd/internal/models"
)

// ToModelCurrency converts a domain currency to its database row shape.
func ToModelCurrency(c domain.Currency) models.Currency {
	return models.Currency{
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

// ToDomainCurrency converts a database row to the domain representation.
func ToDomainCurrency(m models.Currency) domain.Currency {
	assetClass, ok := domain.ParseAssetClass(m.AssetClass)
	if !ok {
		// Constraint on the table makes this unreachable; fall back rather than panic.
		assetClass = domain.Crypto
	}
	return domain.Currency{
		Code:       m.Code,
		Name:       m.Name,
		Symbol:     m.Symbol,
		Precision:  m.Precision,
		AssetClass: assetClass,
		Enabled:    m.Enabled,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// ToDomainCurrencySlice converts a slice of rows.
func ToDomainCurrencySlice(ms []models.Currency) []domain.Currency {
	out := make([]domain.Currency, len(ms))
	for i, m := range ms {
		out[i] = ToDomainCurrency(m)
	}
	return out
}

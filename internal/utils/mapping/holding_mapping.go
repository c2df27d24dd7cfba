package mapping

import (
	"github.com/cryptofolio/ledgerd/internal/core/domain"
	"github.com/cryptofolio/ledgerd/internal/models"
)

// ToModelHolding converts a domain holding to its database row shape.
func ToModelHolding(h domain.Holding) models.Holding {
	return models.Holding{
		AccountID:         h.AccountID,
		Asset:             h.Asset,
		Quantity:          h.Quantity,
		AvgCostBasis:      h.AvgCostBasis,
		CostBasisCurrency: h.CostBasisCurrency,
		UpdatedAt:         h.UpdatedAt,
	}
}

// ToDomainHolding converts a database row to the domain representation.
func ToDomainHolding(m models.Holding) domain.Holding {
	return domain.Holding{
		AccountID:         m.AccountID,
		Asset:             m.Asset,
		Quantity:          m.Quantity,
		AvgCostBasis:      m.AvgCostBasis,
		CostBasisCurrency: m.CostBasisCurrency,
		UpdatedAt:         m.UpdatedAt,
	}
}

// ToDomainHoldingSlice converts a slice of rows.
func ToDomainHoldingSlice(ms []models.Holding) []domain.Holding {
	out := make([]domain.Holding, len(ms))
	for i, m := range ms {
		out[i] = ToDomainHolding(m)
	}
	return out
}

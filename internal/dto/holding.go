package dto

import (
	"time"

	"github.com/cryptofolio/ledgerd/internal/core/domain"
	"github.com/shopspring/decimal"
)

// HoldingResponse defines the data returned for one (account, asset) position.
type HoldingResponse struct {
	AccountID         string          `json:"accountId"`
	Asset             string          `json:"asset"`
	Quantity          decimal.Decimal `json:"quantity"`
	QuantityDisplay   string          `json:"quantityDisplay"`
	AvgCostBasis      decimal.Decimal `json:"avgCostBasis"`
	CostBasisCurrency string          `json:"costBasisCurrency"`
	CostBasisTotal    decimal.Decimal `json:"costBasisTotal"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// ToHoldingResponse converts a domain.Holding to HoldingResponse DTO.
// quantityDisplay is rendered with the asset's cataloged precision.
func ToHoldingResponse(h *domain.Holding, display string) HoldingResponse {
	return HoldingResponse{
		AccountID:         h.AccountID,
		Asset:             h.Asset,
		Quantity:          h.Quantity,
		QuantityDisplay:   display,
		AvgCostBasis:      h.AvgCostBasis,
		CostBasisCurrency: h.CostBasisCurrency,
		CostBasisTotal:    h.CostBasisTotal(),
		UpdatedAt:         h.UpdatedAt,
	}
}

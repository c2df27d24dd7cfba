package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is the quantity and weighted-average cost basis of one asset within
// one account, uniquely keyed by (AccountID, Asset). AvgCostBasis is a price
// per unit of Asset denominated in CostBasisCurrency; it is only meaningful
// while Quantity is positive, but zero-quantity rows keep their last value for
// display continuity.
type Holding struct {
	AccountID         string          `json:"accountID"`
	Asset             string          `json:"asset"` // FK -> currencies.code
	Quantity          decimal.Decimal `json:"quantity"`
	AvgCostBasis      decimal.Decimal `json:"avgCostBasis"`
	CostBasisCurrency string          `json:"costBasisCurrency"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// CostBasisTotal is quantity times average cost, the total paid for the position.
func (h Holding) CostBasisTotal() decimal.Decimal {
	return h.Quantity.Mul(h.AvgCostBasis)
}

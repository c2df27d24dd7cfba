package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is the database row shape for one (account, asset) position.
type Holding struct {
	AccountID         string          `db:"account_id"` // Composite key with Asset
	Asset             string          `db:"asset"`      // FK -> currencies.code
	Quantity          decimal.Decimal `db:"quantity"`
	AvgCostBasis      decimal.Decimal `db:"avg_cost_basis"`
	CostBasisCurrency string          `db:"cost_basis_currency"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// PriceFn supplies a current price for an asset, in the valuation currency.
// The second return is false when no price is known; the engine never fetches
// prices itself.
type PriceFn func(asset string) (decimal.Decimal, bool)

// HoldingValuation pairs a holding with its valuation at a supplied price.
// Pointer fields are nil when the price feed had no quote for the asset.
type HoldingValuation struct {
	Holding      Holding          `json:"holding"`
	CurrentPrice *decimal.Decimal `json:"currentPrice,omitempty"`
	CurrentValue *decimal.Decimal `json:"currentValue,omitempty"`
	Unrealized   *decimal.Decimal `json:"unrealizedPnL,omitempty"`
	PnLPercent   *decimal.Decimal `json:"pnlPercent,omitempty"`
}

// ValueHolding computes value, unrealized P&L and P&L percent for one holding.
// P&L percent is defined as zero when cost basis is zero.
func ValueHolding(h Holding, price *decimal.Decimal) HoldingValuation {
	v := HoldingValuation{Holding: h, CurrentPrice: price}
	if price == nil {
		return v
	}
	value := h.Quantity.Mul(*price)
	cost := h.CostBasisTotal()
	pnl := value.Sub(cost)
	pct := decimal.Zero
	if cost.IsPositive() {
		pct = pnl.Div(cost).Mul(decimal.NewFromInt(100))
	}
	v.CurrentValue = &value
	v.Unrealized = &pnl
	v.PnLPercent = &pct
	return v
}

// PortfolioEntry is one account's holdings with their valuations.
type PortfolioEntry struct {
	AccountID    string             `json:"accountID"`
	AccountName  string             `json:"accountName"`
	CategoryID   string             `json:"categoryID"`
	CategoryName string             `json:"categoryName"`
	Holdings     []HoldingValuation `json:"holdings"`
}

func (e PortfolioEntry) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, h := range e.Holdings {
		if h.CurrentValue != nil {
			total = total.Add(*h.CurrentValue)
		}
	}
	return total
}

func (e PortfolioEntry) TotalCostBasis() decimal.Decimal {
	total := decimal.Zero
	for _, h := range e.Holdings {
		total = total.Add(h.Holding.CostBasisTotal())
	}
	return total
}

func (e PortfolioEntry) TotalUnrealized() decimal.Decimal {
	total := decimal.Zero
	for _, h := range e.Holdings {
		if h.Unrealized != nil {
			total = total.Add(*h.Unrealized)
		}
	}
	return total
}

// CategorySummary rolls accounts up by category.
type CategorySummary struct {
	CategoryID     string           `json:"categoryID"`
	CategoryName   string           `json:"categoryName"`
	Accounts       []PortfolioEntry `json:"accounts"`
	TotalValue     decimal.Decimal  `json:"totalValue"`
	TotalCostBasis decimal.Decimal  `json:"totalCostBasis"`
}

func (c CategorySummary) UnrealizedPnL() decimal.Decimal {
	return c.TotalValue.Sub(c.TotalCostBasis)
}

// AssetTotal rolls one asset up across every account.
type AssetTotal struct {
	Asset     string          `json:"asset"`
	Quantity  decimal.Decimal `json:"quantity"`
	Value     decimal.Decimal `json:"value"`
	CostBasis decimal.Decimal `json:"costBasis"`
}

func (a AssetTotal) UnrealizedPnL() decimal.Decimal {
	return a.Value.Sub(a.CostBasis)
}

// Portfolio is the full read-only projection over a holdings snapshot.
type Portfolio struct {
	Entries        []PortfolioEntry `json:"entries"`
	TotalValue     decimal.Decimal  `json:"totalValue"`
	TotalCostBasis decimal.Decimal  `json:"totalCostBasis"`
	UnrealizedPnL  decimal.Decimal  `json:"unrealizedPnL"`
	PnLPercent     decimal.Decimal  `json:"pnlPercent"`
}

// BuildPortfolio sums entries into portfolio-wide totals.
func BuildPortfolio(entries []PortfolioEntry) Portfolio {
	totalValue := decimal.Zero
	totalCost := decimal.Zero
	for _, e := range entries {
		totalValue = totalValue.Add(e.TotalValue())
		totalCost = totalCost.Add(e.TotalCostBasis())
	}
	pnl := totalValue.Sub(totalCost)
	pct := decimal.Zero
	if totalCost.IsPositive() {
		pct = pnl.Div(totalCost).Mul(decimal.NewFromInt(100))
	}
	return Portfolio{
		Entries:        entries,
		TotalValue:     totalValue,
		TotalCostBasis: totalCost,
		UnrealizedPnL:  pnl,
		PnLPercent:     pct,
	}
}

// ByCategory groups entries per category, largest value first.
func (p Portfolio) ByCategory() []CategorySummary {
	byID := make(map[string]*CategorySummary)
	for _, entry := range p.Entries {
		summary, ok := byID[entry.CategoryID]
		if !ok {
			summary = &CategorySummary{
				CategoryID:   entry.CategoryID,
				CategoryName: entry.CategoryName,
			}
			byID[entry.CategoryID] = summary
		}
		summary.Accounts = append(summary.Accounts, entry)
		summary.TotalValue = summary.TotalValue.Add(entry.TotalValue())
		summary.TotalCostBasis = summary.TotalCostBasis.Add(entry.TotalCostBasis())
	}

	result := make([]CategorySummary, 0, len(byID))
	for _, s := range byID {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].TotalValue.GreaterThan(result[j].TotalValue)
	})
	return result
}

// AssetTotals groups every holding by asset, largest value first.
func (p Portfolio) AssetTotals() []AssetTotal {
	byAsset := make(map[string]*AssetTotal)
	for _, entry := range p.Entries {
		for _, h := range entry.Holdings {
			total, ok := byAsset[h.Holding.Asset]
			if !ok {
				total = &AssetTotal{Asset: h.Holding.Asset}
				byAsset[h.Holding.Asset] = total
			}
			total.Quantity = total.Quantity.Add(h.Holding.Quantity)
			if h.CurrentValue != nil {
				total.Value = total.Value.Add(*h.CurrentValue)
			}
			total.CostBasis = total.CostBasis.Add(h.Holding.CostBasisTotal())
		}
	}

	result := make([]AssetTotal, 0, len(byAsset))
	for _, t := range byAsset {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Value.GreaterThan(result[j].Value)
	})
	return result
}

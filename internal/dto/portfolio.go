package dto

import (
	"github.com/cryptofolio/ledgerd/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValuePortfolioRequest supplies the caller's price snapshot. Keys are asset
// codes, values the current price in the valuation currency. Assets missing
// from the map are reported unpriced, not rejected.
type ValuePortfolioRequest struct {
	Prices map[string]decimal.Decimal `json:"prices" binding:"required"`
}

// HoldingValuationResponse is one valued position inside a portfolio view.
type HoldingValuationResponse struct {
	Holding       HoldingResponse  `json:"holding"`
	CurrentPrice  *decimal.Decimal `json:"currentPrice,omitempty"`
	CurrentValue  *decimal.Decimal `json:"currentValue,omitempty"`
	UnrealizedPnL *decimal.Decimal `json:"unrealizedPnl,omitempty"`
	PnLPercent    *decimal.Decimal `json:"pnlPercent,omitempty"`
}

// PortfolioEntryResponse is one account's valued holdings.
type PortfolioEntryResponse struct {
	AccountID       string                     `json:"accountId"`
	AccountName     string                     `json:"accountName"`
	CategoryID      string                     `json:"categoryId,omitempty"`
	CategoryName    string                     `json:"categoryName,omitempty"`
	Holdings        []HoldingValuationResponse `json:"holdings"`
	TotalValue      decimal.Decimal            `json:"totalValue"`
	TotalCostBasis  decimal.Decimal            `json:"totalCostBasis"`
	TotalUnrealized decimal.Decimal            `json:"totalUnrealizedPnl"`
}

// CategorySummaryResponse rolls accounts up by category.
type CategorySummaryResponse struct {
	CategoryID     string          `json:"categoryId,omitempty"`
	CategoryName   string          `json:"categoryName,omitempty"`
	TotalValue     decimal.Decimal `json:"totalValue"`
	TotalCostBasis decimal.Decimal `json:"totalCostBasis"`
	UnrealizedPnL  decimal.Decimal `json:"unrealizedPnl"`
}

// AssetTotalResponse rolls one asset up across all accounts.
type AssetTotalResponse struct {
	Asset         string          `json:"asset"`
	Quantity      decimal.Decimal `json:"quantity"`
	Value         decimal.Decimal `json:"value"`
	CostBasis     decimal.Decimal `json:"costBasis"`
	UnrealizedPnL decimal.Decimal `json:"unrealizedPnl"`
}

// PortfolioResponse is the complete valued snapshot with both rollups.
type PortfolioResponse struct {
	Entries        []PortfolioEntryResponse  `json:"entries"`
	Categories     []CategorySummaryResponse `json:"categories"`
	Assets         []AssetTotalResponse      `json:"assets"`
	TotalValue     decimal.Decimal           `json:"totalValue"`
	TotalCostBasis decimal.Decimal           `json:"totalCostBasis"`
	UnrealizedPnL  decimal.Decimal           `json:"unrealizedPnl"`
	PnLPercent     decimal.Decimal           `json:"pnlPercent"`
}

func toHoldingValuationResponse(v domain.HoldingValuation, display string) HoldingValuationResponse {
	return HoldingValuationResponse{
		Holding:       ToHoldingResponse(&v.Holding, display),
		CurrentPrice:  v.CurrentPrice,
		CurrentValue:  v.CurrentValue,
		UnrealizedPnL: v.Unrealized,
		PnLPercent:    v.PnLPercent,
	}
}

// ToPortfolioResponse converts a domain.Portfolio to its DTO. displayFn
// renders a quantity with its asset's cataloged precision.
func ToPortfolioResponse(p domain.Portfolio, displayFn func(asset string, qty decimal.Decimal) string) PortfolioResponse {
	entries := make([]PortfolioEntryResponse, len(p.Entries))
	for i, e := range p.Entries {
		holdings := make([]HoldingValuationResponse, len(e.Holdings))
		for j, h := range e.Holdings {
			holdings[j] = toHoldingValuationResponse(h, displayFn(h.Holding.Asset, h.Holding.Quantity))
		}
		entries[i] = PortfolioEntryResponse{
			AccountID:       e.AccountID,
			AccountName:     e.AccountName,
			CategoryID:      e.CategoryID,
			CategoryName:    e.CategoryName,
			Holdings:        holdings,
			TotalValue:      e.TotalValue(),
			TotalCostBasis:  e.TotalCostBasis(),
			TotalUnrealized: e.TotalUnrealized(),
		}
	}

	categories := make([]CategorySummaryResponse, 0)
	for _, c := range p.ByCategory() {
		categories = append(categories, CategorySummaryResponse{
			CategoryID:     c.CategoryID,
			CategoryName:   c.CategoryName,
			TotalValue:     c.TotalValue,
			TotalCostBasis: c.TotalCostBasis,
			UnrealizedPnL:  c.UnrealizedPnL(),
		})
	}

	assets := make([]AssetTotalResponse, 0)
	for _, a := range p.AssetTotals() {
		assets = append(assets, AssetTotalResponse{
			Asset:         a.Asset,
			Quantity:      a.Quantity,
			Value:         a.Value,
			CostBasis:     a.CostBasis,
			UnrealizedPnL: a.UnrealizedPnL(),
		})
	}

	return PortfolioResponse{
		Entries:        entries,
		Categories:     categories,
		Assets:         assets,
		TotalValue:     p.TotalValue,
		TotalCostBasis: p.TotalCostBasis,
		UnrealizedPnL:  p.UnrealizedPnL,
		PnLPercent:     p.PnLPercent,
	}
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxType discriminates the transaction variants. Which legs of a Transaction
// are populated is fixed per type; RecorderService switches exhaustively on it.
type TxType string

const (
	TxBuy      TxType = "buy"
	TxSell     TxType = "sell"
	TxTransfer TxType = "transfer"
	TxSwap     TxType = "swap"
)

// ParseTxType maps a stored string onto a TxType.
func ParseTxType(s string) (TxType, bool) {
	switch s {
	case "buy":
		return TxBuy, true
	case "sell":
		return TxSell, true
	case "transfer":
		return TxTransfer, true
	case "swap":
		return TxSwap, true
	default:
		return "", false
	}
}

// Transaction is an immutable, append-only audit record. Legs not used by the
// type are left at their zero value:
//
//	buy:      to_* populated, UnitPrice set
//	sell:     from_* populated, UnitPrice set
//	transfer: from_* and to_* populated with the same asset, Fee optional
//	swap:     from_* and to_* populated, possibly different assets/accounts
type Transaction struct {
	TransactionID string `json:"transactionID"` // Primary key (UUID)
	TxType        TxType `json:"txType"`

	FromAccountID string          `json:"fromAccountID,omitempty"`
	FromAsset     string          `json:"fromAsset,omitempty"`
	FromQuantity  decimal.Decimal `json:"fromQuantity"`

	ToAccountID string          `json:"toAccountID,omitempty"`
	ToAsset     string          `json:"toAsset,omitempty"`
	ToQuantity  decimal.Decimal `json:"toQuantity"`

	// UnitPrice is the per-unit price paid or received for buy/sell, in the
	// holding's cost-basis currency.
	UnitPrice decimal.Decimal `json:"unitPrice"`

	Fee      decimal.Decimal `json:"fee"`
	FeeAsset string          `json:"feeAsset,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecordedTransaction is what the recorder hands back after a commit: the
// persisted audit record, the post-state of every holding the transaction
// touched, and the advisory realized P&L (never persisted by the engine).
type RecordedTransaction struct {
	Transaction Transaction     `json:"transaction"`
	Holdings    []Holding       `json:"holdings"`
	RealizedPnL decimal.Decimal `json:"realizedPnL"`
	// CapturedRate is set when a fiat-to-fiat swap auto-recorded a rate.
	CapturedRate *ExchangeRate `json:"capturedRate,omitempty"`
}

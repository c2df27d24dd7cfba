package dto

import (
	"time"

	"github.com/cryptofolio/ledgerd/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordBuyRequest acquires an asset into an account against a quote currency.
type RecordBuyRequest struct {
	AccountID string           `json:"accountId" binding:"required,uuid"`
	Asset     string           `json:"asset" binding:"required,uppercase"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal  `json:"unitPrice" binding:"required"`
	Fee       *decimal.Decimal `json:"fee"`
	FeeAsset  string           `json:"feeAsset" binding:"omitempty,uppercase"`
	Notes     string           `json:"notes"`
	Timestamp *time.Time       `json:"timestamp"`
}

// RecordSellRequest disposes of an asset from an account.
type RecordSellRequest struct {
	AccountID string           `json:"accountId" binding:"required,uuid"`
	Asset     string           `json:"asset" binding:"required,uppercase"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal  `json:"unitPrice" binding:"required"`
	Fee       *decimal.Decimal `json:"fee"`
	FeeAsset  string           `json:"feeAsset" binding:"omitempty,uppercase"`
	Notes     string           `json:"notes"`
	Timestamp *time.Time       `json:"timestamp"`
}

// RecordTransferRequest moves an asset between two accounts. The fee, if any,
// is charged on the destination leg.
type RecordTransferRequest struct {
	FromAccountID string           `json:"fromAccountId" binding:"required,uuid"`
	ToAccountID   string           `json:"toAccountId" binding:"required,uuid"`
	Asset         string           `json:"asset" binding:"required,uppercase"`
	Quantity      decimal.Decimal  `json:"quantity" binding:"required"`
	Fee           *decimal.Decimal `json:"fee"`
	FeeAsset      string           `json:"feeAsset" binding:"omitempty,uppercase"`
	Notes         string           `json:"notes"`
	Timestamp     *time.Time       `json:"timestamp"`
}

// RecordSwapRequest exchanges one asset for another, possibly across accounts.
type RecordSwapRequest struct {
	FromAccountID string           `json:"fromAccountId" binding:"required,uuid"`
	ToAccountID   string           `json:"toAccountId" binding:"required,uuid"`
	FromAsset     string           `json:"fromAsset" binding:"required,uppercase"`
	FromQuantity  decimal.Decimal  `json:"fromQuantity" binding:"required"`
	ToAsset       string           `json:"toAsset" binding:"required,uppercase"`
	ToQuantity    decimal.Decimal  `json:"toQuantity" binding:"required"`
	Rate          *decimal.Decimal `json:"rate"`
	Fee           *decimal.Decimal `json:"fee"`
	FeeAsset      string           `json:"feeAsset" binding:"omitempty,uppercase"`
	Notes         string           `json:"notes"`
	Timestamp     *time.Time       `json:"timestamp"`
}

// ListTransactionsParams selects a page of the transaction log.
type ListTransactionsParams struct {
	AccountID string  `form:"accountId" binding:"omitempty,uuid"`
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// TransactionResponse defines the data returned for a recorded transaction.
type TransactionResponse struct {
	TransactionID string           `json:"transactionId"`
	TxType        string           `json:"txType"`
	FromAccountID string           `json:"fromAccountId,omitempty"`
	FromAsset     string           `json:"fromAsset,omitempty"`
	FromQuantity  *decimal.Decimal `json:"fromQuantity,omitempty"`
	ToAccountID   string           `json:"toAccountId,omitempty"`
	ToAsset       string           `json:"toAsset,omitempty"`
	ToQuantity    *decimal.Decimal `json:"toQuantity,omitempty"`
	UnitPrice     *decimal.Decimal `json:"unitPrice,omitempty"`
	Fee           *decimal.Decimal `json:"fee,omitempty"`
	FeeAsset      string           `json:"feeAsset,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// RecordedTransactionResponse couples the persisted record with the updated
// positions and the advisory realized figure.
type RecordedTransactionResponse struct {
	Transaction  TransactionResponse   `json:"transaction"`
	Holdings     []HoldingResponse     `json:"holdings"`
	RealizedPnL  *decimal.Decimal      `json:"realizedPnl,omitempty"`
	CapturedRate *ExchangeRateResponse `json:"capturedRate,omitempty"`
}

// TransactionListResponse is one page of the log plus the restart cursor.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	res := TransactionResponse{
		TransactionID: t.TransactionID,
		TxType:        string(t.TxType),
		FromAccountID: t.FromAccountID,
		FromAsset:     t.FromAsset,
		ToAccountID:   t.ToAccountID,
		ToAsset:       t.ToAsset,
		FeeAsset:      t.FeeAsset,
		Notes:         t.Notes,
		Timestamp:     t.Timestamp,
		CreatedAt:     t.CreatedAt,
	}
	if t.FromAsset != "" {
		q := t.FromQuantity
		res.FromQuantity = &q
	}
	if t.ToAsset != "" {
		q := t.ToQuantity
		res.ToQuantity = &q
	}
	if t.TxType == domain.TxBuy || t.TxType == domain.TxSell {
		p := t.UnitPrice
		res.UnitPrice = &p
	}
	if t.FeeAsset != "" {
		f := t.Fee
		res.Fee = &f
	}
	return res
}

// ToListTransactionResponse converts a slice of domain transactions to DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = ToTransactionResponse(&t)
	}
	return res
}

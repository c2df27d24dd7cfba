package services

import (
	"context"

	"github.com/cryptofolio/ledgerd/internal/core/domain"
	"github.com/cryptofolio/ledgerd/internal/dto"
)

// RecorderSvc is the single write path into the ledger. Each Record* call
// validates every leg, applies all holdings deltas and appends the audit
// record inside one database transaction; on any failure nothing is applied.
type RecorderSvc interface {
	// RecordBuy acquires an asset into an account at a unit price.
	RecordBuy(ctx context.Context, req dto.RecordBuyRequest) (*domain.RecordedTransaction, error)

	// RecordSell disposes of an asset from an account at a unit price.
	RecordSell(ctx context.Context, req dto.RecordSellRequest) (*domain.RecordedTransaction, error)

	// RecordTransfer moves an asset between accounts; the net of any fee
	// arrives at the destination carrying the source's cost basis.
	RecordTransfer(ctx context.Context, req dto.RecordTransferRequest) (*domain.RecordedTransaction, error)

	// RecordSwap exchanges one asset for another. A fiat-to-fiat swap also
	// captures the implied exchange rate as an observation.
	RecordSwap(ctx context.Context, req dto.RecordSwapRequest) (*domain.RecordedTransaction, error)
}

// TransactionReaderSvc defines read operations over the append-only log
type TransactionReaderSvc interface {
	// ListTransactions retrieves a page of the log, newest first, optionally
	// restricted to transactions touching one account.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)
}

// TransactionSvcFacade combines the recorder with the log reader
type TransactionSvcFacade interface {
	RecorderSvc
	TransactionReaderSvc
}

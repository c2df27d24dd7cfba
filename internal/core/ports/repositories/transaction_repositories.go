package repositories

import (
	"context"

	"github.com/cryptofolio/ledgerd/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionReader defines read operations for the transaction audit log
type TransactionReader interface {
	// ListTransactions retrieves transactions newest first, paginated with an
	// opaque restartable cursor.
	ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListTransactionsByAccount retrieves transactions touching the account
	// on either leg, newest first.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for the transaction audit log.
// Records are append-only; the engine never edits or deletes them.
type TransactionWriter interface {
	// SaveTransactionInTx appends the audit record within the recorder's
	// transaction, so holdings mutation and record commit as one unit.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-log repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

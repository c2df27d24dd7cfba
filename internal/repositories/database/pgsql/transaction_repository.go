package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cryptofolio/ledgerd/internal/apperrors"
	"github.com/cryptofolio/ledgerd/internal/core/domain"
	portsrepo "github.com/cryptofolio/ledgerd/internal/core/ports/repositories"
	"github.com/cryptofolio/ledgerd/internal/models"
	"github.com/cryptofolio/ledgerd/internal/utils/mapping"
	"github.com/cryptofolio/ledgerd/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for the transaction log.
func newPgxTransactionRepository(pool PgxPool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, tx_type, from_account_id, from_asset, from_quantity,
	to_account_id, to_asset, to_quantity, unit_price, fee, fee_asset, notes, timestamp, created_at`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.TxType,
		&m.FromAccountID,
		&m.FromAsset,
		&m.FromQuantity,
		&m.ToAccountID,
		&m.ToAsset,
		&m.ToQuantity,
		&m.UnitPrice,
		&m.Fee,
		&m.FeeAsset,
		&m.Notes,
		&m.Timestamp,
		&m.CreatedAt,
	)
	return m, err
}

// SaveTransactionInTx appends an audit record within the caller's transaction.
func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.TxType,
		m.FromAccountID,
		m.FromAsset,
		m.FromQuantity,
		m.ToAccountID,
		m.ToAsset,
		m.ToQuantity,
		m.UnitPrice,
		m.Fee,
		m.FeeAsset,
		m.Notes,
		m.Timestamp,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// ListTransactions retrieves the audit log newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions`
	return r.listTransactions(ctx, query, nil, limit, nextToken)
}

// ListTransactionsByAccount retrieves records touching the account on either
// leg, newest first.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE (from_account_id = $1 OR to_account_id = $1)`
	return r.listTransactions(ctx, query, []any{accountID}, limit, nextToken)
}

// listTransactions appends the cursor predicate, ordering and limit to a base
// query whose fixed arguments are already in args. The cursor is keyed on
// (timestamp, id) so a restarted scan never skips or repeats rows.
func (r *PgxTransactionRepository) listTransactions(ctx context.Context, query string, args []any, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	clause := " WHERE "
	if len(args) > 0 {
		clause = " AND "
	}

	if nextToken != nil && *nextToken != "" {
		ts, id, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, ts, id)
		query += fmt.Sprintf("%s(timestamp, transaction_id) < ($%d, $%d)", clause, len(args)-1, len(args))
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY timestamp DESC, transaction_id DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var modelTxns []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var next *string
	if len(modelTxns) > limit {
		modelTxns = modelTxns[:limit]
		last := modelTxns[limit-1]
		token := pagination.EncodeCursor(last.Timestamp, last.TransactionID)
		next = &token
	}

	return mapping.ToDomainTransactionSlice(modelTxns), next, nil
}

package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database row shape for the append-only audit log.
// Legs unused by a transaction type are stored as NULL.
type Transaction struct {
	TransactionID string `db:"transaction_id"` // Primary Key (UUID)
	TxType        string `db:"tx_type"`        // buy | sell | transfer | swap

	FromAccountID sql.NullString      `db:"from_account_id"`
	FromAsset     sql.NullString      `db:"from_asset"`
	FromQuantity  decimal.NullDecimal `db:"from_quantity"`

	ToAccountID sql.NullString      `db:"to_account_id"`
	ToAsset     sql.NullString      `db:"to_asset"`
	ToQuantity  decimal.NullDecimal `db:"to_quantity"`

	UnitPrice decimal.NullDecimal `db:"unit_price"`
	Fee       decimal.NullDecimal `db:"fee"`
	FeeAsset  sql.NullString      `db:"fee_asset"`

	Notes     sql.NullString `db:"notes"`
	Timestamp time.Time      `db:"timestamp"`
	CreatedAt time.Time      `db:"created_at"`
}

package mapping

import (
	"database/sql"

	"github.com/cryptofolio/ledgerd/internal/core/domain"
	"github.com/cryptofolio/ledgerd/internal/models"
	"github.com/shopspring/decimal"
)

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDecimal(d decimal.Decimal, valid bool) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: valid}
}

// ToModelTransaction converts a domain transaction to its database row shape.
// Legs unused by the transaction type become NULLs.
func ToModelTransaction(t domain.Transaction) models.Transaction {
	hasFrom := t.FromAccountID != ""
	hasTo := t.ToAccountID != ""
	return models.Transaction{
		TransactionID: t.TransactionID,
		TxType:        string(t.TxType),
		FromAccountID: nullString(t.FromAccountID),
		FromAsset:     nullString(t.FromAsset),
		FromQuantity:  nullDecimal(t.FromQuantity, hasFrom),
		ToAccountID:   nullString(t.ToAccountID),
		ToAsset:       nullString(t.ToAsset),
		ToQuantity:    nullDecimal(t.ToQuantity, hasTo),
		UnitPrice:     nullDecimal(t.UnitPrice, t.TxType == domain.TxBuy || t.TxType == domain.TxSell),
		Fee:           nullDecimal(t.Fee, t.FeeAsset != ""),
		FeeAsset:      nullString(t.FeeAsset),
		Notes:         nullString(t.Notes),
		Timestamp:     t.Timestamp,
		CreatedAt:     t.CreatedAt,
	}
}

// ToDomainTransaction converts a database row to the domain representation.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	txType, ok := domain.ParseTxType(m.TxType)
	if !ok {
		txType = domain.TxType(m.TxType)
	}
	t := domain.Transaction{
		TransactionID: m.TransactionID,
		TxType:        txType,
		FromAccountID: m.FromAccountID.String,
		FromAsset:     m.FromAsset.String,
		ToAccountID:   m.ToAccountID.String,
		ToAsset:       m.ToAsset.String,
		FeeAsset:      m.FeeAsset.String,
		Notes:         m.Notes.String,
		Timestamp:     m.Timestamp,
		CreatedAt:     m.CreatedAt,
	}
	if m.FromQuantity.Valid {
		t.FromQuantity = m.FromQuantity.Decimal
	}
	if m.ToQuantity.Valid {
		t.ToQuantity = m.ToQuantity.Decimal
	}
	if m.UnitPrice.Valid {
		t.UnitPrice = m.UnitPrice.Decimal
	}
	if m.Fee.Valid {
		t.Fee = m.Fee.Decimal
	}
	return t
}

// ToDomainTransactionSlice converts a slice of rows.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTransaction(m)
	}
	return out
}

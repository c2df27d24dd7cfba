package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the database row shape for a directional, timestamped rate.
// Exactly one row per (from_currency, to_currency, timestamp).
type ExchangeRate struct {
	ExchangeRateID string          `db:"exchange_rate_id"` // Primary Key (UUID)
	FromCurrency   string          `db:"from_currency"`    // FK -> currencies.code
	ToCurrency     string          `db:"to_currency"`      // FK -> currencies.code
	Rate           decimal.Decimal `db:"rate"`
	Timestamp      time.Time       `db:"timestamp"`
	Source         string          `db:"source"`
	Notes          string          `db:"notes"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

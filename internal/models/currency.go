package models

import "time"

// Currency is the database row shape for a cataloged currency.
type Currency struct {
	Code       string    `db:"code"` // Primary Key (e.g., "USD")
	Name       string    `db:"name"`
	Symbol     string    `db:"symbol"`
	Precision  int       `db:"precision"`
	AssetClass string    `db:"asset_class"` // fiat | crypto | stablecoin
	Enabled    bool      `db:"enabled"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

package models

import "time"

// Account is the database row shape for an account.
type Account struct {
	AccountID   string    `db:"account_id"` // Primary Key (UUID)
	Name        string    `db:"name"`       // Unique
	AccountType string    `db:"account_type"`
	CategoryID  string    `db:"category_id"` // FK -> categories.category_id
	CreatedAt   time.Time `db:"created_at"`
}

// Category is the database row shape for an account grouping.
type Category struct {
	CategoryID string    `db:"category_id"` // Primary Key
	Name       string    `db:"name"`
	SortOrder  int       `db:"sort_order"`
	CreatedAt  time.Time `db:"created_at"`
}

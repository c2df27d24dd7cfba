package domain

import "time"

// AccountType says where an account's assets are held.
type AccountType string

const (
	Exchange         AccountType = "exchange"
	HardwareWallet   AccountType = "hardware_wallet"
	SoftwareWallet   AccountType = "software_wallet"
	CustodialService AccountType = "custodial_service"
	Bank             AccountType = "bank"
)

// ParseAccountType maps a stored or user-supplied string onto an AccountType.
func ParseAccountType(s string) (AccountType, bool) {
	switch s {
	case "exchange":
		return Exchange, true
	case "hardware_wallet":
		return HardwareWallet, true
	case "software_wallet":
		return SoftwareWallet, true
	case "custodial_service":
		return CustodialService, true
	case "bank":
		return Bank, true
	default:
		return "", false
	}
}

// Account is a container for holdings. The ledger treats it as an opaque
// reference; it only needs the row to exist before a transaction touches it.
type Account struct {
	AccountID   string      `json:"accountID"` // Primary key (UUID)
	Name        string      `json:"name"`      // Unique, user-facing
	AccountType AccountType `json:"accountType"`
	CategoryID  string      `json:"categoryID"` // FK -> categories
	CreatedAt   time.Time   `json:"createdAt"`
}

// Category is a user-defined grouping of accounts used by portfolio rollups.
type Category struct {
	CategoryID string    `json:"categoryID"` // Primary key
	Name       string    `json:"name"`
	SortOrder  int       `json:"sortOrder"`
	CreatedAt  time.Time `json:"createdAt"`
}

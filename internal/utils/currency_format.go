package utils

import (
	"github.com/cryptofolio/ledgerd/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencyPrecision formats an amount with the display precision of
// the given currency. Internal arithmetic always keeps full precision; this is
// applied only at the presentation edge.
// Example: 12.3456 with USD (precision 2) returns "12.35".
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.Round(int32(currency.Precision)).String()
}

// FormatWithPrecision formats an amount with the given precision when only the
// precision value is at hand.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}

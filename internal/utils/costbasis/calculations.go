// Package costbasis holds the weighted-average cost accounting math shared by
// the holdings service and its tests. All arithmetic is exact decimal; no
// binary floating point touches a money path.
package costbasis

import (
	"fmt"

	"github.com/cryptofolio/ledgerd/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Blend returns the weighted-average cost after acquiring qty units at price,
// on top of an existing position of q0 units at average cost c0:
//
//	(q0*c0 + qty*price) / (q0 + qty)
func Blend(q0, c0, qty, price decimal.Decimal) decimal.Decimal {
	total := q0.Add(qty)
	if !total.IsPositive() {
		return c0
	}
	return q0.Mul(c0).Add(qty.Mul(price)).Div(total)
}

// Apply computes the post-state of a holding after a quantity delta.
//
// Increase: with a unit price the average blends; without one the incoming
// units inherit the existing basis unchanged (a same-cost transfer-in — the
// caller is responsible for passing the source basis as the price when it
// should carry). Decrease: basis is untouched and the advisory realized P&L is
// (unitPrice - c0) * |delta| when a price was given.
//
// Returns apperrors.ErrInsufficientHoldings when the delta would take the
// quantity negative.
func Apply(q0, c0, delta decimal.Decimal, unitPrice *decimal.Decimal) (q1, c1, realized decimal.Decimal, err error) {
	q1 = q0.Add(delta)
	c1 = c0
	realized = decimal.Zero

	if q1.IsNegative() {
		return q0, c0, decimal.Zero, fmt.Errorf("%w: have %s, need %s",
			apperrors.ErrInsufficientHoldings, q0.String(), delta.Neg().String())
	}

	if delta.IsPositive() {
		if unitPrice != nil {
			if q0.IsPositive() {
				c1 = Blend(q0, c0, delta, *unitPrice)
			} else {
				c1 = *unitPrice
			}
		}
		return q1, c1, decimal.Zero, nil
	}

	if unitPrice != nil {
		realized = unitPrice.Sub(c0).Mul(delta.Neg())
	}
	return q1, c1, realized, nil
}

// Package valuation derives stock-on-hand and weighted-average cost from
// ledger sums (domain service, pure).
package valuation

import "github.com/shopspring/decimal"

// Position is the current inventory position of one product.
type Position struct {
	QuantityOnHand      decimal.Decimal
	WeightedAverageCost decimal.Decimal
}

// FromSums computes the position from ledger aggregates:
// quantityOnHand = sumIn - sumOut, weightedAverageCost = costIn / sumIn where
// costIn = sum(qtyIn * unitCost) over inbound entries. When nothing was ever
// received the cost falls back to the product's standard cost.
func FromSums(sumIn, sumOut, costIn, standardCost decimal.Decimal) Position {
	wac := standardCost
	if sumIn.GreaterThan(decimal.Zero) {
		wac = costIn.Div(sumIn)
	}
	return Position{
		QuantityOnHand:      sumIn.Sub(sumOut),
		WeightedAverageCost: wac,
	}
}

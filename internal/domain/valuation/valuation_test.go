package valuation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sktraders/tradevat-api/internal/domain/valuation"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// Two receipts (100 units at 10, 50 units at 12) and no issues give 150 on
// hand at a weighted average cost of 1600/150.
func TestFromSums_WeightedAverage(t *testing.T) {
	sumIn := dec("150")
	costIn := dec("1600") // 100*10 + 50*12
	pos := valuation.FromSums(sumIn, decimal.Zero, costIn, dec("9.99"))

	assert.True(t, pos.QuantityOnHand.Equal(dec("150")))
	assert.True(t, pos.WeightedAverageCost.Round(4).Equal(dec("10.6667")),
		"wac = %s", pos.WeightedAverageCost)
}

// Issues reduce the on-hand quantity but not the average cost of what came in.
func TestFromSums_IssuesDoNotMoveCost(t *testing.T) {
	pos := valuation.FromSums(dec("150"), dec("40"), dec("1600"), decimal.Zero)

	assert.True(t, pos.QuantityOnHand.Equal(dec("110")))
	assert.True(t, pos.WeightedAverageCost.Round(4).Equal(dec("10.6667")))
}

// A product with no receipts values at its standard cost.
func TestFromSums_StandardCostFallback(t *testing.T) {
	pos := valuation.FromSums(decimal.Zero, decimal.Zero, decimal.Zero, dec("25.50"))

	assert.True(t, pos.QuantityOnHand.IsZero())
	assert.True(t, pos.WeightedAverageCost.Equal(dec("25.50")))
}

package vat_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sktraders/tradevat-api/internal/domain"
	"github.com/sktraders/tradevat-api/internal/domain/entity"
	"github.com/sktraders/tradevat-api/internal/domain/vat"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// A VAT-inclusive total of 1150 decomposes into 1000 net and 150 VAT.
func TestDecompose_Inclusive(t *testing.T) {
	b, err := vat.Decompose(entity.AmountInclusive, dec("1150"))
	require.NoError(t, err)

	assert.True(t, b.Net.Equal(dec("1000")), "net = %s", b.Net)
	assert.True(t, b.VAT.Equal(dec("150")), "vat = %s", b.VAT)
	assert.True(t, b.Gross.Equal(dec("1150")), "gross = %s", b.Gross)
}

// Inclusive decomposition always satisfies net + vat = gross, even when the
// division does not land on a round number.
func TestDecompose_InclusiveReconstructs(t *testing.T) {
	for _, total := range []string{"100", "333.33", "0.01", "999999.99", "1"} {
		b, err := vat.Decompose(entity.AmountInclusive, dec(total))
		require.NoError(t, err)
		assert.True(t, b.Net.Add(b.VAT).Equal(b.Gross), "total %s: %s + %s != %s", total, b.Net, b.VAT, b.Gross)
		assert.True(t, b.Gross.Equal(dec(total)))
	}
}

// A VAT-exclusive total of 200 carries 30 VAT on top.
func TestDecompose_Exclusive(t *testing.T) {
	b, err := vat.Decompose(entity.AmountExclusive, dec("200"))
	require.NoError(t, err)

	assert.True(t, b.Net.Equal(dec("200")), "net = %s", b.Net)
	assert.True(t, b.VAT.Equal(dec("30")), "vat = %s", b.VAT)
	assert.True(t, b.Gross.Equal(dec("230")), "gross = %s", b.Gross)
}

func TestDecompose_ZeroTotal(t *testing.T) {
	b, err := vat.Decompose(entity.AmountInclusive, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, b.Net.IsZero())
	assert.True(t, b.VAT.IsZero())
}

func TestDecompose_NegativeTotal(t *testing.T) {
	_, err := vat.Decompose(entity.AmountInclusive, dec("-10"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDecompose_UnknownAmountType(t *testing.T) {
	_, err := vat.Decompose("NET_OF_TAX", dec("100"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

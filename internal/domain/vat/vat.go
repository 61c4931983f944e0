// Package vat implements the statutory VAT arithmetic. Every place that
// derives VAT from a sale goes through Breakdown so the INCLUSIVE/EXCLUSIVE
// interpretation stays consistent across recording, settlement and reporting.
package vat

import (
	"github.com/shopspring/decimal"

	"github.com/sktraders/tradevat-api/internal/domain"
	"github.com/sktraders/tradevat-api/internal/domain/entity"
)

// StandardRate is the single fixed VAT rate of the regime (15%).
var StandardRate = decimal.NewFromFloat(0.15)

// Breakdown holds the monetary decomposition of a sale total.
type Breakdown struct {
	Net   decimal.Decimal // ex-VAT
	VAT   decimal.Decimal
	Gross decimal.Decimal // VAT-inclusive
}

// Decompose splits a sale total into net, VAT and gross at the statutory
// rate. INCLUSIVE totals already contain VAT: net = total / (1+R). EXCLUSIVE
// totals are net: vat = total * R. Results are rounded to 2 places with VAT
// kept as the exact difference so net + vat == gross.
func Decompose(amountType string, total decimal.Decimal) (Breakdown, error) {
	if total.IsNegative() {
		return Breakdown{}, domain.ErrInvalidInput
	}
	switch amountType {
	case entity.AmountInclusive:
		net := total.Div(decimal.NewFromInt(1).Add(StandardRate)).Round(2)
		return Breakdown{Net: net, VAT: total.Sub(net), Gross: total}, nil
	case entity.AmountExclusive:
		vat := total.Mul(StandardRate).Round(2)
		return Breakdown{Net: total, VAT: vat, Gross: total.Add(vat)}, nil
	default:
		return Breakdown{}, domain.ErrInvalidInput
	}
}

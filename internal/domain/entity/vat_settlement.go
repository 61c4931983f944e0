package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// VATSettlement is the computed VAT position of one calendar month. Compute
// produces an unlocked draft that can be replaced; Lock freezes the record
// and the closing balance it consumed.
type VATSettlement struct {
	Period
	GrossSales      decimal.Decimal
	NetSales        decimal.Decimal // ex-VAT
	VATPayable      decimal.Decimal
	TreasuryDeposit decimal.Decimal // paid via challan
	UsedFromBalance decimal.Decimal // drawn from the closing balance
	Shortfall       decimal.Decimal // unpaid remainder, surfaced as a draft flag
	Locked          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

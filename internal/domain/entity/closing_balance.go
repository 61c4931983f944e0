package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClosingBalance carries the prepaid import VAT/advance-tax credit of one
// calendar month. Opening equals the prior period's closing; mutated only by
// the settlement engine while the period is open. Once Settled the row is
// frozen and its closing becomes the next period's opening.
type ClosingBalance struct {
	Period
	OpeningBalance  decimal.Decimal
	MonthlyAddition decimal.Decimal // import VAT + advance tax accrued this period
	UsedAmount      decimal.Decimal // consumed by this period's settlement
	Settled         bool
	UpdatedAt       time.Time
}

// Available is the credit the settlement engine can draw from.
func (b *ClosingBalance) Available() decimal.Decimal {
	return b.OpeningBalance.Add(b.MonthlyAddition)
}

// Closing is the carried-forward balance: opening + addition - used.
func (b *ClosingBalance) Closing() decimal.Decimal {
	return b.OpeningBalance.Add(b.MonthlyAddition).Sub(b.UsedAmount)
}

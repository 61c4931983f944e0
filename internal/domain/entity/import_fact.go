package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImportFact records one Bill-of-Entry item: import-stage quantity, cost and
// the VAT/advance-tax prepaid at the border (creditable against future output
// VAT). Unique on (BOENo, BOEItem); resubmission updates the fact and appends
// correcting ledger entries instead of duplicating.
type ImportFact struct {
	ID                string
	BOENo             string
	BOEItem           int
	BOEDate           time.Time
	ProductID         string
	Quantity          decimal.Decimal
	UnitMeasure       string
	UnitCost          decimal.Decimal // ex-VAT landed unit cost
	AssessableValue   decimal.Decimal
	BaseVAT           decimal.Decimal
	SupplementaryDuty decimal.Decimal
	VAT               decimal.Decimal
	AdvanceTax        decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CreditAmount is the portion of the import taxes that feeds the period
// closing balance (VAT + advance tax).
func (f *ImportFact) CreditAmount() decimal.Decimal {
	return f.VAT.Add(f.AdvanceTax)
}

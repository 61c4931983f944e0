package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Amount types for a sale total.
const (
	AmountInclusive = "INCLUSIVE" // total already contains VAT at the statutory rate
	AmountExclusive = "EXCLUSIVE" // total is net; VAT is added on top
)

// Sale is the monetary record of a finalized sale. Finalization appends one
// SALE ledger entry per line atomically with the header and lines insert.
type Sale struct {
	ID          string
	InvoiceNo   string // unique
	Date        time.Time
	CustomerRef string
	AmountType  string // INCLUSIVE, EXCLUSIVE
	TotalValue  decimal.Decimal
	Notes       string
	CreatedAt   time.Time
	CreatedBy   string
}

// SaleLine is one product line of a sale. LineTotal = Quantity * UnitPrice.
type SaleLine struct {
	ID          string
	SaleID      string
	ProductID   string
	UnitMeasure string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

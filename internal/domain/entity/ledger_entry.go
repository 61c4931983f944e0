package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement kinds for the stock ledger.
const (
	KindOpening = "OPENING"
	KindImport  = "IMPORT"
	KindSale    = "SALE"
	KindAdjust  = "ADJUST"
)

// Adjustment directions.
const (
	DirectionIn  = "IN"
	DirectionOut = "OUT"
)

// LedgerEntry is one append-only stock movement. Entries are never edited or
// deleted; corrections are made by appending an offsetting ADJUST entry.
// Exactly one of QtyIn/QtyOut is non-zero, both are >= 0. UnitCost is
// meaningful only on entries with QtyIn > 0.
type LedgerEntry struct {
	ID          string
	ProductID   string
	Date        time.Time
	Kind        string // OPENING, IMPORT, SALE, ADJUST
	ReferenceNo string // invoice no, BOE no, adjustment note
	QtyIn       decimal.Decimal
	QtyOut      decimal.Decimal
	UnitCost    decimal.Decimal // ex-VAT, zero on depletion entries
	CreatedAt   time.Time
	CreatedBy   string
}

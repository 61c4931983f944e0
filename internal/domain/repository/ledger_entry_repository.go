package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sktraders/tradevat-api/internal/domain/entity"
)

// LedgerSums are the aggregates of all entries for one product. Ordering is
// irrelevant for these sums (commutative), so they can be computed in a
// single round trip.
type LedgerSums struct {
	SumIn  decimal.Decimal // sum(qty_in)
	SumOut decimal.Decimal // sum(qty_out)
	CostIn decimal.Decimal // sum(qty_in * unit_cost)
}

// LedgerEntryRepository is the persistence port for the append-only movement
// ledger. There is deliberately no Update or Delete: corrections append an
// offsetting ADJUST entry.
type LedgerEntryRepository interface {
	Append(entry *entity.LedgerEntry) error
	SumForProduct(productID string) (LedgerSums, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error)
	// HasEntries reports whether the product has any ledger history (guards
	// OPENING entries, which are only valid on an empty ledger).
	HasEntries(productID string) (bool, error)
}

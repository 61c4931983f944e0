package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product categories handled by the trading company.
const (
	CategoryFootwear   = "footwear"
	CategoryFan        = "fan"
	CategoryBioShield  = "bioshield"
	CategoryInstrument = "instrument"
	CategoryOther      = "other"
)

// Product is a tradable SKU. CachedStock is a denormalized read-through cache
// refreshed from the ledger on every movement; the ledger is the source of
// truth and ReconcileStock recomputes the cache from it.
type Product struct {
	ID            string
	Name          string
	Category      string // footwear, fan, bioshield, instrument, other
	UnitMeasure   string // pcs, pair, kit, box
	StandardCost  decimal.Decimal // ex-VAT; valuation fallback when no stock ever received
	StandardPrice decimal.Decimal // ex-VAT list price
	TestsPerKit   *int            // divisible kit products only (nil otherwise)
	CachedStock   decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

package dto

import "github.com/shopspring/decimal"

// AdjustStockRequest body for POST /api/inventory/adjustments.
type AdjustStockRequest struct {
	ProductID   string          `json:"product_id"`
	Direction   string          `json:"direction"` // IN, OUT
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason,omitempty"`
	ReferenceNo string          `json:"reference_no,omitempty"`
	// UnitCost applies to IN only; defaults to 0 for corrective entries
	// (cost-bearing receipts come through import intake).
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
}

// OpeningStockRequest body for POST /api/inventory/opening.
type OpeningStockRequest struct {
	ProductID   string          `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	ReferenceNo string          `json:"reference_no,omitempty"`
}

// PositionResponse is the valuation engine output for one product.
type PositionResponse struct {
	ProductID           string          `json:"product_id"`
	QuantityOnHand      decimal.Decimal `json:"quantity_on_hand"`
	WeightedAverageCost decimal.Decimal `json:"weighted_average_cost"`
}

// LedgerEntryResponse is one movement row of the product ledger view.
type LedgerEntryResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Date        string          `json:"date"`
	Kind        string          `json:"kind"`
	ReferenceNo string          `json:"reference_no"`
	QtyIn       decimal.Decimal `json:"qty_in"`
	QtyOut      decimal.Decimal `json:"qty_out"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

package dto

import "github.com/shopspring/decimal"

// SaleLineRequest is one line of a sale being recorded.
type SaleLineRequest struct {
	ProductID string          `json:"product_id"`
	Unit      string          `json:"unit,omitempty"` // defaults to the product's unit of measure
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// RecordSaleRequest body for POST /api/sales.
type RecordSaleRequest struct {
	InvoiceNo   string            `json:"invoice_no"`
	Date        string            `json:"date"` // YYYY-MM-DD
	CustomerRef string            `json:"customer_ref,omitempty"`
	AmountType  string            `json:"amount_type"` // INCLUSIVE, EXCLUSIVE
	// TotalValue optional: when present it must agree with the sum of line
	// totals within 0.01; when absent it is computed.
	TotalValue *decimal.Decimal `json:"total_value,omitempty"`
	Notes      string           `json:"notes,omitempty"`
	Lines      []SaleLineRequest `json:"lines"`
}

// SaleLineResponse is one persisted sale line.
type SaleLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// SaleResponse is the persisted sale with its VAT decomposition.
type SaleResponse struct {
	ID          string             `json:"id"`
	InvoiceNo   string             `json:"invoice_no"`
	Date        string             `json:"date"`
	CustomerRef string             `json:"customer_ref"`
	AmountType  string             `json:"amount_type"`
	TotalValue  decimal.Decimal    `json:"total_value"`
	NetValue    decimal.Decimal    `json:"net_value"`
	VATAmount   decimal.Decimal    `json:"vat_amount"`
	GrossValue  decimal.Decimal    `json:"gross_value"`
	Notes       string             `json:"notes,omitempty"`
	Lines       []SaleLineResponse `json:"lines"`
}

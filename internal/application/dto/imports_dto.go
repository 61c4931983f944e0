package dto

import "github.com/shopspring/decimal"

// RecordImportRequest body for POST /api/imports: one Bill-of-Entry item.
type RecordImportRequest struct {
	BOENo             string          `json:"boe_no"`
	BOEItem           int             `json:"boe_item"`
	BOEDate           string          `json:"boe_date"` // YYYY-MM-DD
	ProductID         string          `json:"product_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	Unit              string          `json:"unit,omitempty"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	AssessableValue   decimal.Decimal `json:"assessable_value"`
	BaseVAT           decimal.Decimal `json:"base_vat"`
	SupplementaryDuty decimal.Decimal `json:"supplementary_duty"`
	VAT               decimal.Decimal `json:"vat"`
	AdvanceTax        decimal.Decimal `json:"advance_tax"`
}

// ImportBatchRequest body for POST /api/imports/batch.
type ImportBatchRequest struct {
	Rows []RecordImportRequest `json:"rows"`
}

// ImportRowFailure is one failed row of a batch with its reason; the batch
// continues past failures instead of aborting.
type ImportRowFailure struct {
	Row     int    `json:"row"` // zero-based index into the submitted rows
	BOENo   string `json:"boe_no"`
	BOEItem int    `json:"boe_item"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ImportBatchResponse summarizes a batch intake.
type ImportBatchResponse struct {
	Accepted int                `json:"accepted"`
	Failed   []ImportRowFailure `json:"failed"`
}

// ImportFactResponse is the persisted Bill-of-Entry fact.
type ImportFactResponse struct {
	ID                string          `json:"id"`
	BOENo             string          `json:"boe_no"`
	BOEItem           int             `json:"boe_item"`
	BOEDate           string          `json:"boe_date"`
	ProductID         string          `json:"product_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	Unit              string          `json:"unit"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	AssessableValue   decimal.Decimal `json:"assessable_value"`
	BaseVAT           decimal.Decimal `json:"base_vat"`
	SupplementaryDuty decimal.Decimal `json:"supplementary_duty"`
	VAT               decimal.Decimal `json:"vat"`
	AdvanceTax        decimal.Decimal `json:"advance_tax"`
	CreditAmount      decimal.Decimal `json:"credit_amount"`
}

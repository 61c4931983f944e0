package dto

import "github.com/shopspring/decimal"

// ComputeSettlementRequest body for POST /api/settlements/:year/:month/compute.
// TreasuryDeposit optional: when absent the engine uses the sum of challans
// recorded for the period.
type ComputeSettlementRequest struct {
	TreasuryDeposit *decimal.Decimal `json:"treasury_deposit,omitempty"`
}

// SettlementResponse is the computed (draft or locked) monthly settlement.
type SettlementResponse struct {
	Year            int             `json:"year"`
	Month           int             `json:"month"`
	GrossSales      decimal.Decimal `json:"gross_sales"`
	NetSales        decimal.Decimal `json:"net_sales"`
	VATPayable      decimal.Decimal `json:"vat_payable"`
	TreasuryDeposit decimal.Decimal `json:"treasury_deposit"`
	UsedFromBalance decimal.Decimal `json:"used_from_balance"`
	Shortfall       decimal.Decimal `json:"shortfall"`
	Locked          bool            `json:"locked"`
}

// ClosingBalanceResponse is the per-period credit balance row.
type ClosingBalanceResponse struct {
	Year            int             `json:"year"`
	Month           int             `json:"month"`
	OpeningBalance  decimal.Decimal `json:"opening_balance"`
	MonthlyAddition decimal.Decimal `json:"monthly_addition"`
	UsedAmount      decimal.Decimal `json:"used_amount"`
	ClosingBalance  decimal.Decimal `json:"closing_balance"`
	Settled         bool            `json:"settled"`
}

// RecordChallanRequest body for POST /api/challans.
type RecordChallanRequest struct {
	TokenNo     string          `json:"token_no"`
	Bank        string          `json:"bank"`
	Branch      string          `json:"branch,omitempty"`
	Date        string          `json:"date"` // YYYY-MM-DD
	AccountCode string          `json:"account_code"`
	Amount      decimal.Decimal `json:"amount"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
}

// ChallanResponse is one persisted treasury challan.
type ChallanResponse struct {
	ID          string          `json:"id"`
	TokenNo     string          `json:"token_no"`
	Bank        string          `json:"bank"`
	Branch      string          `json:"branch"`
	Date        string          `json:"date"`
	AccountCode string          `json:"account_code"`
	Amount      decimal.Decimal `json:"amount"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
}

// PeriodSummaryResponse aggregates one month's sales for display.
type PeriodSummaryResponse struct {
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	SaleCount  int             `json:"sale_count"`
	GrossSales decimal.Decimal `json:"gross_sales"`
	NetSales   decimal.Decimal `json:"net_sales"`
	VATPayable decimal.Decimal `json:"vat_payable"`
}

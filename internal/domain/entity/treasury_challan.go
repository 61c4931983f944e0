package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TreasuryChallan is a bank deposit voucher evidencing VAT paid directly to
// the government treasury, tagged to a period. TokenNo is unique.
type TreasuryChallan struct {
	ID          string
	TokenNo     string
	Bank        string
	Branch      string
	Date        time.Time
	AccountCode string
	Amount      decimal.Decimal
	Period
	CreatedAt time.Time
}

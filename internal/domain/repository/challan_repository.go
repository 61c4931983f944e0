package repository

import (
	"github.com/shopspring/decimal"

	"github.com/sktraders/tradevat-api/internal/domain/entity"
)

// ChallanRepository is the persistence port for treasury deposit vouchers.
type ChallanRepository interface {
	Create(challan *entity.TreasuryChallan) error
	GetByTokenNo(tokenNo string) (*entity.TreasuryChallan, error)
	ListByPeriod(p entity.Period) ([]*entity.TreasuryChallan, error)
	SumByPeriod(p entity.Period) (decimal.Decimal, error)
}

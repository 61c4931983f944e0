package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sktraders/tradevat-api/internal/domain"
	"github.com/sktraders/tradevat-api/internal/domain/entity"
	"github.com/sktraders/tradevat-api/internal/domain/repository"
)

// ChallanUseCase records treasury deposit vouchers and answers the period
// deposit sums the settlement engine nets against.
type ChallanUseCase struct {
	challanRepo repository.ChallanRepository
}

// NewChallanUseCase builds the use case.
func NewChallanUseCase(challanRepo repository.ChallanRepository) *ChallanUseCase {
	return &ChallanUseCase{challanRepo: challanRepo}
}

// ChallanInput is one treasury deposit voucher.
type ChallanInput struct {
	TokenNo     string
	Bank        string
	Branch      string
	Date        time.Time
	AccountCode string
	Amount      decimal.Decimal
	Period      entity.Period
}

// RecordChallan persists a voucher. Token numbers are unique.
func (uc *ChallanUseCase) RecordChallan(ctx context.Context, input ChallanInput) (*entity.TreasuryChallan, error) {
	if input.TokenNo == "" || input.Bank == "" || input.Date.IsZero() || !input.Period.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if !input.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.challanRepo.GetByTokenNo(input.TokenNo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateReference
	}
	challan := &entity.TreasuryChallan{
		ID:          uuid.New().String(),
		TokenNo:     input.TokenNo,
		Bank:        input.Bank,
		Branch:      input.Branch,
		Date:        input.Date,
		AccountCode: input.AccountCode,
		Amount:      input.Amount,
		Period:      input.Period,
		CreatedAt:   time.Now(),
	}
	if err := uc.challanRepo.Create(challan); err != nil {
		return nil, err
	}
	return challan, nil
}

// ListByPeriod returns the vouchers recorded for a period.
func (uc *ChallanUseCase) ListByPeriod(ctx context.Context, p entity.Period) ([]*entity.TreasuryChallan, error) {
	if !p.Valid() {
		return nil, domain.ErrInvalidInput
	}
	return uc.challanRepo.ListByPeriod(p)
}

package settlement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sktraders/tradevat-api/internal/domain"
	"github.com/sktraders/tradevat-api/internal/domain/entity"
	"github.com/sktraders/tradevat-api/internal/domain/repository"
)

// Closing-balance tracker. These functions operate on a tx-bound repository
// so import intake and settlement mutate period rows under the same row lock
// discipline. A period row is created lazily with its opening balance taken
// from the previous period's closing.

// GetOrCreateBalance loads the period row under FOR UPDATE, creating it if
// absent.
func GetOrCreateBalance(repo repository.ClosingBalanceRepository, p entity.Period) (*entity.ClosingBalance, error) {
	if !p.Valid() {
		return nil, domain.ErrInvalidInput
	}
	balance, err := repo.GetForUpdate(p)
	if err != nil {
		return nil, err
	}
	if balance != nil {
		return balance, nil
	}
	opening := decimal.Zero
	prev, err := repo.Get(p.Prev())
	if err != nil {
		return nil, err
	}
	if prev != nil {
		opening = prev.Closing()
	}
	balance = &entity.ClosingBalance{
		Period:          p,
		OpeningBalance:  opening,
		MonthlyAddition: decimal.Zero,
		UsedAmount:      decimal.Zero,
		UpdatedAt:       time.Now(),
	}
	if err := repo.Create(balance); err != nil {
		return nil, err
	}
	return balance, nil
}

// AddToCurrentMonth accrues import VAT/advance-tax credit for the period.
// Delta may be negative for a Bill-of-Entry correction; the period must
// still be open and the remaining credit must cover what has been consumed.
func AddToCurrentMonth(repo repository.ClosingBalanceRepository, p entity.Period, delta decimal.Decimal) error {
	balance, err := GetOrCreateBalance(repo, p)
	if err != nil {
		return err
	}
	if balance.Settled {
		return domain.ErrAlreadyLocked
	}
	balance.MonthlyAddition = balance.MonthlyAddition.Add(delta)
	if balance.MonthlyAddition.IsNegative() || balance.Available().LessThan(balance.UsedAmount) {
		return domain.ErrInsufficientBalance
	}
	balance.UpdatedAt = time.Now()
	return repo.Update(balance)
}

// ConsumeBalance records the amount a settlement draws from the period's
// credit. The amount is an absolute figure, not an increment, so recomputing
// an unlocked settlement replaces rather than double-counts.
func ConsumeBalance(repo repository.ClosingBalanceRepository, p entity.Period, amount decimal.Decimal) error {
	balance, err := GetOrCreateBalance(repo, p)
	if err != nil {
		return err
	}
	if balance.Settled {
		return domain.ErrAlreadyLocked
	}
	if amount.IsNegative() || amount.GreaterThan(balance.Available()) {
		return domain.ErrInsufficientBalance
	}
	balance.UsedAmount = amount
	balance.UpdatedAt = time.Now()
	return repo.Update(balance)
}

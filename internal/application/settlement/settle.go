package settlement

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sktraders/tradevat-api/internal/domain"
	"github.com/sktraders/tradevat-api/internal/domain/entity"
	"github.com/sktraders/tradevat-api/internal/domain/repository"
	"github.com/sktraders/tradevat-api/internal/domain/vat"
)

// SettlementUseCase computes and locks monthly VAT settlements. Compute
// produces a replaceable draft; Lock freezes the draft and the closing
// balance it consumed, in chronological period order.
type SettlementUseCase struct {
	txRunner       TxRunner
	saleRepo       repository.SaleRepository
	balanceRepo    repository.ClosingBalanceRepository
	settlementRepo repository.SettlementRepository
}

// NewSettlementUseCase builds the use case.
func NewSettlementUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	balanceRepo repository.ClosingBalanceRepository,
	settlementRepo repository.SettlementRepository,
) *SettlementUseCase {
	return &SettlementUseCase{
		txRunner:       txRunner,
		saleRepo:       saleRepo,
		balanceRepo:    balanceRepo,
		settlementRepo: settlementRepo,
	}
}

// Compute aggregates the period's sales VAT, nets it against the treasury
// deposit and the available closing balance and saves the result as an
// unlocked draft. Recomputing replaces the draft without double-counting.
// A nil treasuryDeposit means "use the challans recorded for the period".
func (uc *SettlementUseCase) Compute(ctx context.Context, p entity.Period, treasuryDeposit *decimal.Decimal) (*entity.VATSettlement, error) {
	if !p.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if treasuryDeposit != nil && treasuryDeposit.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.VATSettlement
	err := uc.txRunner.RunSettlement(ctx, func(
		saleRepo repository.SaleRepository,
		challanRepo repository.ChallanRepository,
		balanceRepo repository.ClosingBalanceRepository,
		settlementRepo repository.SettlementRepository,
	) error {
		existing, err := settlementRepo.GetForUpdate(p)
		if err != nil {
			return err
		}
		if existing != nil && existing.Locked {
			return domain.ErrAlreadyLocked
		}

		balance, err := GetOrCreateBalance(balanceRepo, p)
		if err != nil {
			return err
		}
		if balance.Settled {
			return domain.ErrAlreadyLocked
		}

		sales, err := saleRepo.ListByPeriod(p)
		if err != nil {
			return err
		}
		var gross, net, vatPayable decimal.Decimal
		for _, sale := range sales {
			b, err := vat.Decompose(sale.AmountType, sale.TotalValue)
			if err != nil {
				return err
			}
			gross = gross.Add(b.Gross)
			net = net.Add(b.Net)
			vatPayable = vatPayable.Add(b.VAT)
		}

		deposit := decimal.Zero
		if treasuryDeposit != nil {
			deposit = *treasuryDeposit
		} else {
			deposit, err = challanRepo.SumByPeriod(p)
			if err != nil {
				return err
			}
		}

		// usedFromBalance = min(vatPayable - deposit, available), floored at
		// zero: an over-deposit never draws from the credit.
		remaining := vatPayable.Sub(deposit)
		used := remaining
		if used.IsNegative() {
			used = decimal.Zero
		}
		if used.GreaterThan(balance.Available()) {
			used = balance.Available()
		}
		shortfall := remaining.Sub(used)
		if shortfall.IsNegative() {
			shortfall = decimal.Zero
		}

		if err := ConsumeBalance(balanceRepo, p, used); err != nil {
			return err
		}

		now := time.Now()
		result = &entity.VATSettlement{
			Period:          p,
			GrossSales:      gross,
			NetSales:        net,
			VATPayable:      vatPayable,
			TreasuryDeposit: deposit,
			UsedFromBalance: used,
			Shortfall:       shortfall,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if existing != nil {
			result.CreatedAt = existing.CreatedAt
		}
		return settlementRepo.Upsert(result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Lock finalizes the period: verifies every earlier period is settled,
// re-bases the opening balance on the predecessor's closing, freezes the
// closing-balance row and marks the settlement locked, all in one transaction.
func (uc *SettlementUseCase) Lock(ctx context.Context, p entity.Period) (*entity.VATSettlement, error) {
	if !p.Valid() {
		return nil, domain.ErrInvalidInput
	}
	var result *entity.VATSettlement
	err := uc.txRunner.RunSettlement(ctx, func(
		saleRepo repository.SaleRepository,
		challanRepo repository.ChallanRepository,
		balanceRepo repository.ClosingBalanceRepository,
		settlementRepo repository.SettlementRepository,
	) error {
		settlement, err := settlementRepo.GetForUpdate(p)
		if err != nil {
			return err
		}
		if settlement == nil {
			return domain.ErrNotFound
		}
		if settlement.Locked {
			return domain.ErrAlreadyLocked
		}

		open, err := balanceRepo.ExistsUnsettledBefore(p)
		if err != nil {
			return err
		}
		if open {
			return domain.ErrPriorPeriodUnsettled
		}

		balance, err := GetOrCreateBalance(balanceRepo, p)
		if err != nil {
			return err
		}
		if balance.Settled {
			return domain.ErrAlreadyLocked
		}
		// Opening must equal the predecessor's closing at settlement time.
		prev, err := balanceRepo.Get(p.Prev())
		if err != nil {
			return err
		}
		if prev != nil {
			balance.OpeningBalance = prev.Closing()
		}
		if settlement.UsedFromBalance.GreaterThan(balance.Available()) {
			return domain.ErrInsufficientBalance
		}
		balance.UsedAmount = settlement.UsedFromBalance
		balance.Settled = true
		balance.UpdatedAt = time.Now()
		if err := balanceRepo.Update(balance); err != nil {
			return err
		}
		if err := settlementRepo.MarkLocked(p); err != nil {
			return err
		}
		settlement.Locked = true
		result = settlement
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns the settlement of a period.
func (uc *SettlementUseCase) Get(ctx context.Context, p entity.Period) (*entity.VATSettlement, error) {
	if !p.Valid() {
		return nil, domain.ErrInvalidInput
	}
	settlement, err := uc.settlementRepo.Get(p)
	if err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, domain.ErrNotFound
	}
	return settlement, nil
}

// GetBalance returns the closing-balance row of a period.
func (uc *SettlementUseCase) GetBalance(ctx context.Context, p entity.Period) (*entity.ClosingBalance, error) {
	if !p.Valid() {
		return nil, domain.ErrInvalidInput
	}
	balance, err := uc.balanceRepo.Get(p)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return nil, domain.ErrNotFound
	}
	return balance, nil
}

// PeriodSummary aggregates a period's sales for display (read only).
type PeriodSummary struct {
	Period     entity.Period
	SaleCount  int
	GrossSales decimal.Decimal
	NetSales   decimal.Decimal
	VATPayable decimal.Decimal
}

// Summarize computes the period's sales aggregates without touching any
// settlement state.
func (uc *SettlementUseCase) Summarize(ctx context.Context, p entity.Period) (*PeriodSummary, error) {
	if !p.Valid() {
		return nil, domain.ErrInvalidInput
	}
	sales, err := uc.saleRepo.ListByPeriod(p)
	if err != nil {
		return nil, err
	}
	summary := &PeriodSummary{Period: p}
	for _, sale := range sales {
		b, err := vat.Decompose(sale.AmountType, sale.TotalValue)
		if err != nil {
			return nil, err
		}
		summary.SaleCount++
		summary.GrossSales = summary.GrossSales.Add(b.Gross)
		summary.NetSales = summary.NetSales.Add(b.Net)
		summary.VATPayable = summary.VATPayable.Add(b.VAT)
	}
	return summary, nil
}

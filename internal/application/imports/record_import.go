package imports

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sktraders/tradevat-api/internal/application/dto"
	"github.com/sktraders/tradevat-api/internal/application/settlement"
	"github.com/sktraders/tradevat-api/internal/domain"
	"github.com/sktraders/tradevat-api/internal/domain/entity"
	"github.com/sktraders/tradevat-api/internal/domain/repository"
	"github.com/sktraders/tradevat-api/internal/domain/valuation"
	"github.com/sktraders/tradevat-api/pkg/classify"
)

// RecordImportUseCase appends customs Bill-of-Entry intake: one ImportFact,
// one IMPORT ledger entry and the VAT+AT accrual on the period's closing
// balance, in one transaction. Idempotent on (BOENo, BOEItem).
type RecordImportUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewRecordImportUseCase builds the use case.
func NewRecordImportUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *RecordImportUseCase {
	return &RecordImportUseCase{txRunner: txRunner, productRepo: productRepo}
}

// ImportInput is one Bill-of-Entry item.
type ImportInput struct {
	BOENo             string
	BOEItem           int
	BOEDate           time.Time
	ProductID         string
	Quantity          decimal.Decimal
	Unit              string
	UnitCost          decimal.Decimal
	AssessableValue   decimal.Decimal
	BaseVAT           decimal.Decimal
	SupplementaryDuty decimal.Decimal
	VAT               decimal.Decimal
	AdvanceTax        decimal.Decimal
}

// RecordImport records or corrects one Bill-of-Entry item. Resubmitting the
// same (BOENo, BOEItem) replaces the fact: the ledger keeps its history by
// appending an offsetting ADJUST for the old quantity plus a fresh IMPORT
// entry, and the period credit is moved by the delta. Corrections against a
// settled period are rejected.
func (uc *RecordImportUseCase) RecordImport(ctx context.Context, userID string, input ImportInput) (*entity.ImportFact, error) {
	if input.BOENo == "" || input.BOEItem <= 0 || input.ProductID == "" || input.BOEDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	if input.UnitCost.IsNegative() || input.AssessableValue.IsNegative() ||
		input.BaseVAT.IsNegative() || input.SupplementaryDuty.IsNegative() ||
		input.VAT.IsNegative() || input.AdvanceTax.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if input.Unit == "" {
		input.Unit = product.UnitMeasure
	}

	now := time.Now()
	period := entity.PeriodOf(input.BOEDate)
	var fact *entity.ImportFact

	err = uc.txRunner.RunImport(ctx, func(
		ledgerRepo repository.LedgerEntryRepository,
		productRepo repository.ProductRepository,
		factRepo repository.ImportFactRepository,
		balanceRepo repository.ClosingBalanceRepository,
	) error {
		existing, err := factRepo.GetByBOEForUpdate(input.BOENo, input.BOEItem)
		if err != nil {
			return err
		}
		locked, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		// Customs feeds carry free-text product names; backfill the
		// category of unclassified products on first intake.
		if locked != nil && locked.Category == "" {
			if err := productRepo.UpdateCategory(input.ProductID, classify.Category(locked.Name)); err != nil {
				return err
			}
		}
		sums, err := ledgerRepo.SumForProduct(input.ProductID)
		if err != nil {
			return err
		}
		pos := valuation.FromSums(sums.SumIn, sums.SumOut, sums.CostIn, product.StandardCost)

		if existing == nil {
			if err := settlement.AddToCurrentMonth(balanceRepo, period, input.VAT.Add(input.AdvanceTax)); err != nil {
				return err
			}
			fact = factFromInput(input, now)
			if err := factRepo.Create(fact); err != nil {
				return err
			}
			if err := ledgerRepo.Append(importEntry(fact, userID, now)); err != nil {
				return err
			}
			return productRepo.UpdateCachedStock(input.ProductID, pos.QuantityOnHand.Add(input.Quantity))
		}

		// Correction path: move the credit by the delta (period-aware in
		// case the BOE date moved), reverse the old receipt, append the new.
		oldPeriod := entity.PeriodOf(existing.BOEDate)
		oldCredit := existing.CreditAmount()
		newCredit := input.VAT.Add(input.AdvanceTax)
		if oldPeriod == period {
			if err := settlement.AddToCurrentMonth(balanceRepo, period, newCredit.Sub(oldCredit)); err != nil {
				return err
			}
		} else {
			if err := settlement.AddToCurrentMonth(balanceRepo, oldPeriod, oldCredit.Neg()); err != nil {
				return err
			}
			if err := settlement.AddToCurrentMonth(balanceRepo, period, newCredit); err != nil {
				return err
			}
		}

		if existing.Quantity.GreaterThan(pos.QuantityOnHand) {
			// The old receipt was already (partly) sold; reversing it would
			// drive the ledger negative.
			return domain.ErrInsufficientStock
		}
		reversal := &entity.LedgerEntry{
			ID:          uuid.New().String(),
			ProductID:   existing.ProductID,
			Date:        input.BOEDate,
			Kind:        entity.KindAdjust,
			ReferenceNo: boeReference(input.BOENo, input.BOEItem),
			QtyOut:      existing.Quantity,
			CreatedAt:   now,
			CreatedBy:   userID,
		}
		if err := ledgerRepo.Append(reversal); err != nil {
			return err
		}

		fact = factFromInput(input, now)
		fact.ID = existing.ID
		fact.CreatedAt = existing.CreatedAt
		if err := factRepo.Update(fact); err != nil {
			return err
		}
		if err := ledgerRepo.Append(importEntry(fact, userID, now)); err != nil {
			return err
		}
		newQty := pos.QuantityOnHand.Sub(existing.Quantity).Add(input.Quantity)
		return productRepo.UpdateCachedStock(input.ProductID, newQty)
	})
	if err != nil {
		return nil, err
	}
	return fact, nil
}

// RecordImportBatch runs each row in its own transaction and collects the
// failures with their reasons; one bad row never aborts the batch.
func (uc *RecordImportUseCase) RecordImportBatch(ctx context.Context, userID string, rows []ImportInput) (int, []dto.ImportRowFailure) {
	accepted := 0
	var failures []dto.ImportRowFailure
	for i, row := range rows {
		if _, err := uc.RecordImport(ctx, userID, row); err != nil {
			failures = append(failures, dto.ImportRowFailure{
				Row:     i,
				BOENo:   row.BOENo,
				BOEItem: row.BOEItem,
				Code:    failureCode(err),
				Message: err.Error(),
			})
			continue
		}
		accepted++
	}
	return accepted, failures
}

func factFromInput(input ImportInput, now time.Time) *entity.ImportFact {
	return &entity.ImportFact{
		ID:                uuid.New().String(),
		BOENo:             input.BOENo,
		BOEItem:           input.BOEItem,
		BOEDate:           input.BOEDate,
		ProductID:         input.ProductID,
		Quantity:          input.Quantity,
		UnitMeasure:       input.Unit,
		UnitCost:          input.UnitCost,
		AssessableValue:   input.AssessableValue,
		BaseVAT:           input.BaseVAT,
		SupplementaryDuty: input.SupplementaryDuty,
		VAT:               input.VAT,
		AdvanceTax:        input.AdvanceTax,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func importEntry(fact *entity.ImportFact, userID string, now time.Time) *entity.LedgerEntry {
	return &entity.LedgerEntry{
		ID:          uuid.New().String(),
		ProductID:   fact.ProductID,
		Date:        fact.BOEDate,
		Kind:        entity.KindImport,
		ReferenceNo: boeReference(fact.BOENo, fact.BOEItem),
		QtyIn:       fact.Quantity,
		UnitCost:    fact.UnitCost,
		CreatedAt:   now,
		CreatedBy:   userID,
	}
}

func boeReference(boeNo string, boeItem int) string {
	return boeNo + "/" + strconv.Itoa(boeItem)
}

func failureCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "INVALID_QUANTITY"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "INSUFFICIENT_BALANCE"
	case errors.Is(err, domain.ErrAlreadyLocked):
		return "ALREADY_LOCKED"
	case errors.Is(err, domain.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicateReference):
		return "DUPLICATE_REFERENCE"
	case errors.Is(err, domain.ErrInvalidInput):
		return "VALIDATION"
	default:
		return "INTERNAL"
	}
}

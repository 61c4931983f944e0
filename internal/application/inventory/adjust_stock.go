package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sktraders/tradevat-api/internal/domain"
	"github.com/sktraders/tradevat-api/internal/domain/entity"
	"github.com/sktraders/tradevat-api/internal/domain/repository"
	"github.com/sktraders/tradevat-api/internal/domain/valuation"
)

// AdjustStockUseCase appends manual IN/OUT corrections to the ledger with a
// row lock on the product (SELECT FOR UPDATE) so the sufficiency check and
// the append are atomic.
type AdjustStockUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewAdjustStockUseCase builds the use case.
func NewAdjustStockUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner, productRepo: productRepo}
}

// AdjustInput is the input for a manual stock adjustment.
// UnitCost applies to IN only and defaults to 0: corrective entries carry no
// cost, true cost-bearing receipts come through import intake.
type AdjustInput struct {
	ProductID   string
	Direction   string // IN, OUT
	Quantity    decimal.Decimal
	Reason      string
	ReferenceNo string
	UnitCost    *decimal.Decimal
}

// Adjust validates the input, locks the product row, recomputes on-hand from
// the ledger inside the transaction and appends exactly one ADJUST entry.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, userID string, input AdjustInput) (*entity.LedgerEntry, error) {
	if input.Direction != entity.DirectionIn && input.Direction != entity.DirectionOut {
		return nil, domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	if input.UnitCost != nil && input.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	entry := &entity.LedgerEntry{
		ID:          uuid.New().String(),
		ProductID:   input.ProductID,
		Date:        now,
		Kind:        entity.KindAdjust,
		ReferenceNo: referenceOrReason(input.ReferenceNo, input.Reason),
		CreatedAt:   now,
		CreatedBy:   userID,
	}

	err = uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerEntryRepository,
		productRepo repository.ProductRepository,
	) error {
		if _, err := productRepo.GetForUpdate(input.ProductID); err != nil {
			return err
		}
		sums, err := ledgerRepo.SumForProduct(input.ProductID)
		if err != nil {
			return err
		}
		pos := valuation.FromSums(sums.SumIn, sums.SumOut, sums.CostIn, product.StandardCost)

		var newQty decimal.Decimal
		switch input.Direction {
		case entity.DirectionIn:
			entry.QtyIn = input.Quantity
			entry.UnitCost = decimal.Zero
			if input.UnitCost != nil {
				entry.UnitCost = *input.UnitCost
			}
			newQty = pos.QuantityOnHand.Add(input.Quantity)
		case entity.DirectionOut:
			if input.Quantity.GreaterThan(pos.QuantityOnHand) {
				return domain.ErrInsufficientStock
			}
			entry.QtyOut = input.Quantity
			newQty = pos.QuantityOnHand.Sub(input.Quantity)
		}

		if err := ledgerRepo.Append(entry); err != nil {
			return err
		}
		return productRepo.UpdateCachedStock(input.ProductID, newQty)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// OpeningInput is the input for a product's opening stock entry.
type OpeningInput struct {
	ProductID   string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	ReferenceNo string
}

// RecordOpening appends the OPENING entry for a product. Valid only while the
// product's ledger is empty.
func (uc *AdjustStockUseCase) RecordOpening(ctx context.Context, userID string, input OpeningInput) (*entity.LedgerEntry, error) {
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	if input.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	entry := &entity.LedgerEntry{
		ID:          uuid.New().String(),
		ProductID:   input.ProductID,
		Date:        now,
		Kind:        entity.KindOpening,
		ReferenceNo: input.ReferenceNo,
		QtyIn:       input.Quantity,
		UnitCost:    input.UnitCost,
		CreatedAt:   now,
		CreatedBy:   userID,
	}

	err = uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerEntryRepository,
		productRepo repository.ProductRepository,
	) error {
		if _, err := productRepo.GetForUpdate(input.ProductID); err != nil {
			return err
		}
		has, err := ledgerRepo.HasEntries(input.ProductID)
		if err != nil {
			return err
		}
		if has {
			return domain.ErrDuplicateReference
		}
		if err := ledgerRepo.Append(entry); err != nil {
			return err
		}
		return productRepo.UpdateCachedStock(input.ProductID, input.Quantity)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func referenceOrReason(referenceNo, reason string) string {
	if referenceNo != "" {
		return referenceNo
	}
	return reason
}

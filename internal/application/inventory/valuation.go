package inventory

import (
	"context"
	"time"

	"github.com/sktraders/tradevat-api/internal/domain"
	"github.com/sktraders/tradevat-api/internal/domain/entity"
	"github.com/sktraders/tradevat-api/internal/domain/repository"
	"github.com/sktraders/tradevat-api/internal/domain/valuation"
)

// ValuationUseCase answers "what is on hand, at what cost" for a product.
// Pure read over the ledger; the cached stock column on products is never
// consulted here.
type ValuationUseCase struct {
	txRunner    TxRunner
	ledgerRepo  repository.LedgerEntryRepository
	productRepo repository.ProductRepository
}

// NewValuationUseCase builds the use case.
func NewValuationUseCase(txRunner TxRunner, ledgerRepo repository.LedgerEntryRepository, productRepo repository.ProductRepository) *ValuationUseCase {
	return &ValuationUseCase{txRunner: txRunner, ledgerRepo: ledgerRepo, productRepo: productRepo}
}

// GetPosition recomputes quantity-on-hand and weighted-average cost from the
// full ledger history. Falls back to the product's standard cost when nothing
// was ever received.
func (uc *ValuationUseCase) GetPosition(ctx context.Context, productID string) (valuation.Position, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return valuation.Position{}, err
	}
	if product == nil {
		return valuation.Position{}, domain.ErrNotFound
	}
	sums, err := uc.ledgerRepo.SumForProduct(productID)
	if err != nil {
		return valuation.Position{}, err
	}
	return valuation.FromSums(sums.SumIn, sums.SumOut, sums.CostIn, product.StandardCost), nil
}

// ListLedger returns the product's movement history in a date range.
func (uc *ValuationUseCase) ListLedger(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.ledgerRepo.ListByProduct(productID, from, to, limit, offset)
}

// ReconcileStock recomputes the cached stock column from the ledger under the
// product row lock and returns the reconciled position.
func (uc *ValuationUseCase) ReconcileStock(ctx context.Context, productID string) (valuation.Position, error) {
	var pos valuation.Position
	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerEntryRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		sums, err := ledgerRepo.SumForProduct(productID)
		if err != nil {
			return err
		}
		pos = valuation.FromSums(sums.SumIn, sums.SumOut, sums.CostIn, product.StandardCost)
		return productRepo.UpdateCachedStock(productID, pos.QuantityOnHand)
	})
	if err != nil {
		return valuation.Position{}, err
	}
	return pos, nil
}

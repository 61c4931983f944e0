package sales

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sktraders/tradevat-api/internal/domain"
	"github.com/sktraders/tradevat-api/internal/domain/entity"
	"github.com/sktraders/tradevat-api/internal/domain/repository"
	"github.com/sktraders/tradevat-api/internal/domain/valuation"
)

// totalTolerance is the rounding slack allowed between a supplied sale total
// and the sum of line totals.
var totalTolerance = decimal.NewFromFloat(0.01)

// RecordSaleUseCase finalizes a sale: inserts the header and lines and
// appends one SALE ledger entry per line, all in one transaction.
type RecordSaleUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
}

// NewRecordSaleUseCase builds the use case.
func NewRecordSaleUseCase(txRunner TxRunner, productRepo repository.ProductRepository, saleRepo repository.SaleRepository) *RecordSaleUseCase {
	return &RecordSaleUseCase{txRunner: txRunner, productRepo: productRepo, saleRepo: saleRepo}
}

// SaleLineInput is one line of the sale being recorded.
type SaleLineInput struct {
	ProductID string
	Unit      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// RecordSaleInput is the input for finalizing a sale. TotalValue nil means
// "compute from the lines"; when supplied it must agree with the line sum.
type RecordSaleInput struct {
	InvoiceNo   string
	Date        time.Time
	CustomerRef string
	AmountType  string
	TotalValue  *decimal.Decimal
	Notes       string
	Lines       []SaleLineInput
}

// RecordSale validates the sale and persists it atomically with its SALE
// ledger entries. Each product row is locked before the stock check so a
// concurrent adjustment cannot slip past a stale read.
func (uc *RecordSaleUseCase) RecordSale(ctx context.Context, userID string, input RecordSaleInput) (*entity.Sale, []*entity.SaleLine, error) {
	if input.InvoiceNo == "" || len(input.Lines) == 0 || input.Date.IsZero() {
		return nil, nil, domain.ErrInvalidInput
	}
	if input.AmountType != entity.AmountInclusive && input.AmountType != entity.AmountExclusive {
		return nil, nil, domain.ErrInvalidInput
	}

	// Validate lines and resolve products (read-only, outside the tx).
	productsByID := make(map[string]*entity.Product)
	for i := range input.Lines {
		line := &input.Lines[i]
		if line.ProductID == "" {
			return nil, nil, domain.ErrInvalidInput
		}
		if !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, nil, domain.ErrInvalidQuantity
		}
		if line.UnitPrice.IsNegative() {
			return nil, nil, domain.ErrInvalidInput
		}
		if _, seen := productsByID[line.ProductID]; !seen {
			product, err := uc.productRepo.GetByID(line.ProductID)
			if err != nil {
				return nil, nil, err
			}
			if product == nil {
				return nil, nil, domain.ErrNotFound
			}
			productsByID[line.ProductID] = product
		}
		product := productsByID[line.ProductID]
		if line.Unit == "" {
			line.Unit = product.UnitMeasure
		}
		if line.UnitPrice.IsZero() {
			line.UnitPrice = product.StandardPrice
		}
	}

	if existing, err := uc.saleRepo.GetByInvoiceNo(input.InvoiceNo); err != nil {
		return nil, nil, err
	} else if existing != nil {
		return nil, nil, domain.ErrDuplicateReference
	}

	// Line totals and the total agreement check.
	var lineSum decimal.Decimal
	for _, line := range input.Lines {
		lineSum = lineSum.Add(line.Quantity.Mul(line.UnitPrice))
	}
	total := lineSum
	if input.TotalValue != nil {
		if input.TotalValue.Sub(lineSum).Abs().GreaterThan(totalTolerance) {
			return nil, nil, domain.ErrTotalMismatch
		}
		total = *input.TotalValue
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:          uuid.New().String(),
		InvoiceNo:   input.InvoiceNo,
		Date:        input.Date,
		CustomerRef: input.CustomerRef,
		AmountType:  input.AmountType,
		TotalValue:  total,
		Notes:       input.Notes,
		CreatedAt:   now,
		CreatedBy:   userID,
	}
	lines := make([]*entity.SaleLine, 0, len(input.Lines))
	qtyByProduct := make(map[string]decimal.Decimal)
	for _, line := range input.Lines {
		lines = append(lines, &entity.SaleLine{
			ID:          uuid.New().String(),
			SaleID:      sale.ID,
			ProductID:   line.ProductID,
			UnitMeasure: line.Unit,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.Quantity.Mul(line.UnitPrice),
		})
		qtyByProduct[line.ProductID] = qtyByProduct[line.ProductID].Add(line.Quantity)
	}

	// Lock products in a stable order to avoid deadlock between concurrent
	// sales touching the same products.
	productIDs := make([]string, 0, len(qtyByProduct))
	for id := range qtyByProduct {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	err := uc.txRunner.RunSale(ctx, func(
		ledgerRepo repository.LedgerEntryRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		for _, productID := range productIDs {
			if _, err := productRepo.GetForUpdate(productID); err != nil {
				return err
			}
			sums, err := ledgerRepo.SumForProduct(productID)
			if err != nil {
				return err
			}
			pos := valuation.FromSums(sums.SumIn, sums.SumOut, sums.CostIn, productsByID[productID].StandardCost)
			requested := qtyByProduct[productID]
			if requested.GreaterThan(pos.QuantityOnHand) {
				return domain.ErrInsufficientStock
			}
			if err := productRepo.UpdateCachedStock(productID, pos.QuantityOnHand.Sub(requested)); err != nil {
				return err
			}
		}

		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, line := range lines {
			if err := saleRepo.CreateLine(line); err != nil {
				return err
			}
			// SALE entries record depletion only; unit cost stays zero so
			// they never feed the weighted-average cost.
			entry := &entity.LedgerEntry{
				ID:          uuid.New().String(),
				ProductID:   line.ProductID,
				Date:        input.Date,
				Kind:        entity.KindSale,
				ReferenceNo: sale.InvoiceNo,
				QtyOut:      line.Quantity,
				CreatedAt:   now,
				CreatedBy:   userID,
			}
			if err := ledgerRepo.Append(entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return sale, lines, nil
}

// GetSale returns a sale with its lines.
func (uc *RecordSaleUseCase) GetSale(ctx context.Context, id string) (*entity.Sale, []*entity.SaleLine, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if sale == nil {
		return nil, nil, domain.ErrNotFound
	}
	lines, err := uc.saleRepo.GetLinesBySaleID(id)
	if err != nil {
		return nil, nil, err
	}
	return sale, lines, nil
}

package sales

import (
	"context"

	"github.com/sktraders/tradevat-api/internal/domain/repository"
)

// TxRunner runs a function inside one DB transaction spanning the sale
// insert and the per-line ledger appends: either both persist or neither
// does.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		ledgerRepo repository.LedgerEntryRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

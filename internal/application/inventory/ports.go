package inventory

import (
	"context"

	"github.com/sktraders/tradevat-api/internal/domain/repository"
)

// TxRunner runs a function inside one DB transaction, passing repositories
// bound to that transaction. Guarantees the check-then-append on a product's
// stock is atomic.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ledgerRepo repository.LedgerEntryRepository,
		productRepo repository.ProductRepository,
	) error) error
}

package imports

import (
	"context"

	"github.com/sktraders/tradevat-api/internal/domain/repository"
)

// TxRunner runs a function inside one DB transaction spanning the fact
// upsert, the IMPORT ledger append and the period credit accrual.
type TxRunner interface {
	RunImport(ctx context.Context, fn func(
		ledgerRepo repository.LedgerEntryRepository,
		productRepo repository.ProductRepository,
		factRepo repository.ImportFactRepository,
		balanceRepo repository.ClosingBalanceRepository,
	) error) error
}

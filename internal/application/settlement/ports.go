package settlement

import (
	"context"

	"github.com/sktraders/tradevat-api/internal/domain/repository"
)

// TxRunner runs a function inside one DB transaction spanning the settlement
// computation: sales aggregation, challan sums, the closing-balance row and
// the settlement row. Lock and Consume happen in the same transaction so a
// crash can never leave a locked settlement with an unconsumed balance.
type TxRunner interface {
	RunSettlement(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		challanRepo repository.ChallanRepository,
		balanceRepo repository.ClosingBalanceRepository,
		settlementRepo repository.SettlementRepository,
	) error) error
}

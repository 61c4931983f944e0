package repository

import "github.com/sktraders/tradevat-api/internal/domain/entity"

// ClosingBalanceRepository is the persistence port for per-period credit
// balances, keyed by (year, month).
type ClosingBalanceRepository interface {
	Get(p entity.Period) (*entity.ClosingBalance, error)
	// GetForUpdate locks the period row (SELECT FOR UPDATE); serializes
	// concurrent settlement and import intake on the same period.
	GetForUpdate(p entity.Period) (*entity.ClosingBalance, error)
	Create(balance *entity.ClosingBalance) error
	Update(balance *entity.ClosingBalance) error
	// ExistsUnsettledBefore reports whether any period earlier than p still
	// needs settlement (chronological settlement guard). A period counts as
	// open when it has an unsettled balance row, or recorded sales without a
	// locked settlement.
	ExistsUnsettledBefore(p entity.Period) (bool, error)
}

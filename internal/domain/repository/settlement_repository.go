package repository

import "github.com/sktraders/tradevat-api/internal/domain/entity"

// SettlementRepository is the persistence port for monthly VAT settlements,
// keyed by (year, month).
type SettlementRepository interface {
	Get(p entity.Period) (*entity.VATSettlement, error)
	GetForUpdate(p entity.Period) (*entity.VATSettlement, error)
	// Upsert replaces the draft for the period. Locked rows are never
	// touched by Upsert; the use case guards that with GetForUpdate.
	Upsert(settlement *entity.VATSettlement) error
	// MarkLocked sets the locked flag; the row becomes immutable.
	MarkLocked(p entity.Period) error
}

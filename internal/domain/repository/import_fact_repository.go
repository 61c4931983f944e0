package repository

import "github.com/sktraders/tradevat-api/internal/domain/entity"

// ImportFactRepository is the persistence port for Bill-of-Entry facts.
// (BOENo, BOEItem) is unique; Upsert keys on it.
type ImportFactRepository interface {
	// GetByBOEForUpdate locks the fact row if it exists (idempotent
	// resubmission check); returns nil when the key is new.
	GetByBOEForUpdate(boeNo string, boeItem int) (*entity.ImportFact, error)
	Create(fact *entity.ImportFact) error
	Update(fact *entity.ImportFact) error
	ListByPeriod(p entity.Period) ([]*entity.ImportFact, error)
}

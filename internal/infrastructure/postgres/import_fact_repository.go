package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sktraders/tradevat-api/internal/domain"
	"github.com/sktraders/tradevat-api/internal/domain/entity"
	"github.com/sktraders/tradevat-api/internal/domain/repository"
)

var _ repository.ImportFactRepository = (*ImportFactRepo)(nil)

// ImportFactRepo implements ImportFactRepository over PostgreSQL (usable
// with pool or tx).
type ImportFactRepo struct {
	q Querier
}

// NewImportFactRepository builds the adapter. Pass pool or tx (Querier).
func NewImportFactRepository(q Querier) *ImportFactRepo {
	return &ImportFactRepo{q: q}
}

const factColumns = `id, boe_no, boe_item, boe_date, product_id, quantity, unit_measure, unit_cost, assessable_value, base_vat, supplementary_duty, vat_amount, advance_tax, created_at, updated_at`

// GetByBOEForUpdate locks the fact row by its (boe_no, boe_item) key;
// returns nil when the key is new.
func (r *ImportFactRepo) GetByBOEForUpdate(boeNo string, boeItem int) (*entity.ImportFact, error) {
	query := `SELECT ` + factColumns + ` FROM import_facts WHERE boe_no = $1 AND boe_item = $2 FOR UPDATE`
	var f entity.ImportFact
	err := r.q.QueryRow(context.Background(), query, boeNo, boeItem).Scan(
		&f.ID, &f.BOENo, &f.BOEItem, &f.BOEDate, &f.ProductID, &f.Quantity,
		&f.UnitMeasure, &f.UnitCost, &f.AssessableValue, &f.BaseVAT,
		&f.SupplementaryDuty, &f.VAT, &f.AdvanceTax, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get import fact for update: %w", err)
	}
	return &f, nil
}

// Create persists a Bill-of-Entry fact.
func (r *ImportFactRepo) Create(fact *entity.ImportFact) error {
	query := `
		INSERT INTO import_facts (` + factColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		fact.ID, fact.BOENo, fact.BOEItem, fact.BOEDate, fact.ProductID,
		fact.Quantity, fact.UnitMeasure, fact.UnitCost, fact.AssessableValue,
		fact.BaseVAT, fact.SupplementaryDuty, fact.VAT, fact.AdvanceTax,
		fact.CreatedAt, fact.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateReference
		}
		return fmt.Errorf("create import fact: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a fact (idempotent resubmission).
func (r *ImportFactRepo) Update(fact *entity.ImportFact) error {
	query := `
		UPDATE import_facts
		SET boe_date = $2, product_id = $3, quantity = $4, unit_measure = $5,
		    unit_cost = $6, assessable_value = $7, base_vat = $8,
		    supplementary_duty = $9, vat_amount = $10, advance_tax = $11,
		    updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		fact.ID, fact.BOEDate, fact.ProductID, fact.Quantity, fact.UnitMeasure,
		fact.UnitCost, fact.AssessableValue, fact.BaseVAT,
		fact.SupplementaryDuty, fact.VAT, fact.AdvanceTax,
	)
	if err != nil {
		return fmt.Errorf("update import fact: %w", err)
	}
	return nil
}

// ListByPeriod returns the facts whose BOE date falls within the month.
func (r *ImportFactRepo) ListByPeriod(p entity.Period) ([]*entity.ImportFact, error) {
	from, to := p.Bounds()
	query := `SELECT ` + factColumns + ` FROM import_facts WHERE boe_date >= $1 AND boe_date < $2 ORDER BY boe_date, boe_no, boe_item`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list import facts: %w", err)
	}
	defer rows.Close()
	var list []*entity.ImportFact
	for rows.Next() {
		var f entity.ImportFact
		if err := rows.Scan(&f.ID, &f.BOENo, &f.BOEItem, &f.BOEDate, &f.ProductID,
			&f.Quantity, &f.UnitMeasure, &f.UnitCost, &f.AssessableValue,
			&f.BaseVAT, &f.SupplementaryDuty, &f.VAT, &f.AdvanceTax,
			&f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan import fact: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sktraders/tradevat-api/internal/domain/entity"
	"github.com/sktraders/tradevat-api/internal/domain/repository"
)

var _ repository.LedgerEntryRepository = (*LedgerEntryRepo)(nil)

// LedgerEntryRepo implements the append-only movement ledger over PostgreSQL
// (usable with pool or tx). No UPDATE or DELETE statement exists in this
// file.
type LedgerEntryRepo struct {
	q Querier
}

// NewLedgerEntryRepository builds the adapter. Pass pool or tx (Querier).
func NewLedgerEntryRepository(q Querier) *LedgerEntryRepo {
	return &LedgerEntryRepo{q: q}
}

// Append persists one movement.
func (r *LedgerEntryRepo) Append(entry *entity.LedgerEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO ledger_entries (id, product_id, entry_date, kind, reference_no, qty_in, qty_out, unit_cost, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	createdBy := (*string)(nil)
	if entry.CreatedBy != "" {
		createdBy = &entry.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ProductID, entry.Date, entry.Kind, entry.ReferenceNo,
		entry.QtyIn, entry.QtyOut, entry.UnitCost, entry.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// SumForProduct returns the commutative aggregates over all entries of a
// product in one round trip.
func (r *LedgerEntryRepo) SumForProduct(productID string) (repository.LedgerSums, error) {
	query := `
		SELECT COALESCE(SUM(qty_in), 0),
		       COALESCE(SUM(qty_out), 0),
		       COALESCE(SUM(qty_in * unit_cost), 0)
		FROM ledger_entries WHERE product_id = $1`
	var sums repository.LedgerSums
	err := r.q.QueryRow(context.Background(), query, productID).Scan(&sums.SumIn, &sums.SumOut, &sums.CostIn)
	if err != nil {
		return repository.LedgerSums{}, fmt.Errorf("sum ledger entries: %w", err)
	}
	return sums, nil
}

// ListByProduct lists a product's movements in a half-open [from, to) date
// range, oldest first, the way a statement reads.
func (r *LedgerEntryRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, product_id, entry_date, kind, reference_no, qty_in, qty_out, unit_cost, created_at, created_by
		FROM ledger_entries WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND entry_date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND entry_date < $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY entry_date ASC, created_at ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		var createdBy *string
		if err := rows.Scan(&e.ID, &e.ProductID, &e.Date, &e.Kind, &e.ReferenceNo,
			&e.QtyIn, &e.QtyOut, &e.UnitCost, &e.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		if createdBy != nil {
			e.CreatedBy = *createdBy
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// HasEntries reports whether the product has any ledger history.
func (r *LedgerEntryRepo) HasEntries(productID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM ledger_entries WHERE product_id = $1)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check ledger entries: %w", err)
	}
	return exists, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sktraders/tradevat-api/internal/domain/entity"
	"github.com/sktraders/tradevat-api/internal/domain/repository"
)

var _ repository.SettlementRepository = (*SettlementRepo)(nil)

// SettlementRepo implements SettlementRepository over PostgreSQL (usable
// with pool or tx).
type SettlementRepo struct {
	q Querier
}

// NewSettlementRepository builds the adapter. Pass pool or tx (Querier).
func NewSettlementRepository(q Querier) *SettlementRepo {
	return &SettlementRepo{q: q}
}

const settlementColumns = `year, month, gross_sales, net_sales, vat_payable, treasury_deposit, used_from_balance, shortfall, locked, created_at, updated_at`

// Get returns the settlement of a period or nil when absent.
func (r *SettlementRepo) Get(p entity.Period) (*entity.VATSettlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM vat_settlements WHERE year = $1 AND month = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, p.Year, p.Month), "get settlement")
}

// GetForUpdate returns the settlement locked (SELECT FOR UPDATE) or nil when
// absent.
func (r *SettlementRepo) GetForUpdate(p entity.Period) (*entity.VATSettlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM vat_settlements WHERE year = $1 AND month = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, p.Year, p.Month), "get settlement for update")
}

// Upsert replaces the draft for the period. The WHERE clause on the update
// arm keeps locked rows untouchable even if the use-case guard is bypassed.
func (r *SettlementRepo) Upsert(s *entity.VATSettlement) error {
	query := `
		INSERT INTO vat_settlements (` + settlementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, $9, $10)
		ON CONFLICT (year, month) DO UPDATE
		SET gross_sales = EXCLUDED.gross_sales,
		    net_sales = EXCLUDED.net_sales,
		    vat_payable = EXCLUDED.vat_payable,
		    treasury_deposit = EXCLUDED.treasury_deposit,
		    used_from_balance = EXCLUDED.used_from_balance,
		    shortfall = EXCLUDED.shortfall,
		    updated_at = EXCLUDED.updated_at
		WHERE vat_settlements.locked = false`
	_, err := r.q.Exec(context.Background(), query,
		s.Year, s.Month, s.GrossSales, s.NetSales, s.VATPayable,
		s.TreasuryDeposit, s.UsedFromBalance, s.Shortfall,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert settlement: %w", err)
	}
	return nil
}

// MarkLocked sets the locked flag; the row becomes immutable.
func (r *SettlementRepo) MarkLocked(p entity.Period) error {
	query := `UPDATE vat_settlements SET locked = true, updated_at = now() WHERE year = $1 AND month = $2`
	_, err := r.q.Exec(context.Background(), query, p.Year, p.Month)
	if err != nil {
		return fmt.Errorf("lock settlement: %w", err)
	}
	return nil
}

func (r *SettlementRepo) scanOne(row pgx.Row, op string) (*entity.VATSettlement, error) {
	var s entity.VATSettlement
	err := row.Scan(&s.Year, &s.Month, &s.GrossSales, &s.NetSales, &s.VATPayable,
		&s.TreasuryDeposit, &s.UsedFromBalance, &s.Shortfall, &s.Locked,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}

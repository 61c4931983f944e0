package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sktraders/tradevat-api/internal/domain/entity"
	"github.com/sktraders/tradevat-api/internal/domain/repository"
)

var _ repository.ClosingBalanceRepository = (*ClosingBalanceRepo)(nil)

// ClosingBalanceRepo implements ClosingBalanceRepository over PostgreSQL
// (usable with pool or tx). The closing figure is stored denormalized and
// rewritten on every update so period reports stay one SELECT.
type ClosingBalanceRepo struct {
	q Querier
}

// NewClosingBalanceRepository builds the adapter. Pass pool or tx (Querier).
func NewClosingBalanceRepository(q Querier) *ClosingBalanceRepo {
	return &ClosingBalanceRepo{q: q}
}

const balanceColumns = `year, month, opening_balance, monthly_addition, used_amount, settled, updated_at`

// Get returns the period row or nil when absent.
func (r *ClosingBalanceRepo) Get(p entity.Period) (*entity.ClosingBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM closing_balances WHERE year = $1 AND month = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, p.Year, p.Month), "get closing balance")
}

// GetForUpdate returns the period row locked (SELECT FOR UPDATE) or nil when
// absent.
func (r *ClosingBalanceRepo) GetForUpdate(p entity.Period) (*entity.ClosingBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM closing_balances WHERE year = $1 AND month = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, p.Year, p.Month), "get closing balance for update")
}

// Create inserts a new period row.
func (r *ClosingBalanceRepo) Create(balance *entity.ClosingBalance) error {
	query := `
		INSERT INTO closing_balances (year, month, opening_balance, monthly_addition, used_amount, closing_balance, settled, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		balance.Year, balance.Month, balance.OpeningBalance, balance.MonthlyAddition,
		balance.UsedAmount, balance.Closing(), balance.Settled, balance.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create closing balance: %w", err)
	}
	return nil
}

// Update rewrites the period row, including the derived closing figure.
func (r *ClosingBalanceRepo) Update(balance *entity.ClosingBalance) error {
	query := `
		UPDATE closing_balances
		SET opening_balance = $3, monthly_addition = $4, used_amount = $5,
		    closing_balance = $6, settled = $7, updated_at = now()
		WHERE year = $1 AND month = $2`
	_, err := r.q.Exec(context.Background(), query,
		balance.Year, balance.Month, balance.OpeningBalance, balance.MonthlyAddition,
		balance.UsedAmount, balance.Closing(), balance.Settled,
	)
	if err != nil {
		return fmt.Errorf("update closing balance: %w", err)
	}
	return nil
}

// ExistsUnsettledBefore reports whether any earlier period still needs
// settlement: an open balance row, or a month with sales whose settlement
// was never locked. A sales-only month has no balance row until it is
// computed, so the sales side must be checked against locked settlements
// directly.
func (r *ClosingBalanceRepo) ExistsUnsettledBefore(p entity.Period) (bool, error) {
	from, _ := p.Bounds()
	query := `
		SELECT EXISTS(
			SELECT 1 FROM closing_balances
			WHERE (year * 12 + month) < ($1 * 12 + $2) AND settled = false
		) OR EXISTS(
			SELECT 1 FROM sales s
			WHERE s.sale_date < $3
			  AND NOT EXISTS (
				SELECT 1 FROM vat_settlements v
				WHERE v.locked = true
				  AND v.year = EXTRACT(YEAR FROM s.sale_date)::int
				  AND v.month = EXTRACT(MONTH FROM s.sale_date)::int
			  )
		)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, p.Year, p.Month, from).Scan(&exists); err != nil {
		return false, fmt.Errorf("check unsettled periods: %w", err)
	}
	return exists, nil
}

func (r *ClosingBalanceRepo) scanOne(row pgx.Row, op string) (*entity.ClosingBalance, error) {
	var b entity.ClosingBalance
	err := row.Scan(&b.Year, &b.Month, &b.OpeningBalance, &b.MonthlyAddition,
		&b.UsedAmount, &b.Settled, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &b, nil
}

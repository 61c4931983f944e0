package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sktraders/tradevat-api/internal/domain"
	"github.com/sktraders/tradevat-api/internal/domain/entity"
	"github.com/sktraders/tradevat-api/internal/domain/repository"
)

var _ repository.ChallanRepository = (*ChallanRepo)(nil)

// ChallanRepo implements ChallanRepository over PostgreSQL (usable with pool
// or tx).
type ChallanRepo struct {
	q Querier
}

// NewChallanRepository builds the adapter. Pass pool or tx (Querier).
func NewChallanRepository(q Querier) *ChallanRepo {
	return &ChallanRepo{q: q}
}

const challanColumns = `id, token_no, bank, branch, challan_date, account_code, amount, year, month, created_at`

// Create persists a voucher. Unique token numbers surface as
// ErrDuplicateReference.
func (r *ChallanRepo) Create(challan *entity.TreasuryChallan) error {
	query := `
		INSERT INTO treasury_challans (` + challanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		challan.ID, challan.TokenNo, challan.Bank, challan.Branch, challan.Date,
		challan.AccountCode, challan.Amount, challan.Year, challan.Month, challan.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateReference
		}
		return fmt.Errorf("create challan: %w", err)
	}
	return nil
}

// GetByTokenNo returns a voucher by token number or nil when absent.
func (r *ChallanRepo) GetByTokenNo(tokenNo string) (*entity.TreasuryChallan, error) {
	query := `SELECT ` + challanColumns + ` FROM treasury_challans WHERE token_no = $1`
	var c entity.TreasuryChallan
	err := r.q.QueryRow(context.Background(), query, tokenNo).Scan(
		&c.ID, &c.TokenNo, &c.Bank, &c.Branch, &c.Date,
		&c.AccountCode, &c.Amount, &c.Year, &c.Month, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get challan: %w", err)
	}
	return &c, nil
}

// ListByPeriod returns the vouchers tagged to a period.
func (r *ChallanRepo) ListByPeriod(p entity.Period) ([]*entity.TreasuryChallan, error) {
	query := `SELECT ` + challanColumns + ` FROM treasury_challans WHERE year = $1 AND month = $2 ORDER BY challan_date, token_no`
	rows, err := r.q.Query(context.Background(), query, p.Year, p.Month)
	if err != nil {
		return nil, fmt.Errorf("list challans: %w", err)
	}
	defer rows.Close()
	var list []*entity.TreasuryChallan
	for rows.Next() {
		var c entity.TreasuryChallan
		if err := rows.Scan(&c.ID, &c.TokenNo, &c.Bank, &c.Branch, &c.Date,
			&c.AccountCode, &c.Amount, &c.Year, &c.Month, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan challan: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// SumByPeriod returns the total deposited for a period.
func (r *ChallanRepo) SumByPeriod(p entity.Period) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM treasury_challans WHERE year = $1 AND month = $2`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, p.Year, p.Month).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum challans: %w", err)
	}
	return sum, nil
}

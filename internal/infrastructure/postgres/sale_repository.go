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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implements SaleRepository over PostgreSQL (usable with pool or
// tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository builds the adapter. Pass pool or tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, invoice_no, sale_date, customer_ref, amount_type, total_value, notes, created_at, created_by`

// Create persists a sale header. Unique invoice numbers surface as
// ErrDuplicateReference.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	createdBy := (*string)(nil)
	if sale.CreatedBy != "" {
		createdBy = &sale.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.InvoiceNo, sale.Date, sale.CustomerRef, sale.AmountType,
		sale.TotalValue, sale.Notes, sale.CreatedAt, createdBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateReference
		}
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// CreateLine persists one sale line.
func (r *SaleRepo) CreateLine(line *entity.SaleLine) error {
	query := `
		INSERT INTO sale_lines (id, sale_id, product_id, unit_measure, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.SaleID, line.ProductID, line.UnitMeasure,
		line.Quantity, line.UnitPrice, line.LineTotal,
	)
	if err != nil {
		return fmt.Errorf("create sale line: %w", err)
	}
	return nil
}

// GetByID returns a sale or nil when absent.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get sale")
}

// GetByInvoiceNo returns a sale by invoice number or nil when absent.
func (r *SaleRepo) GetByInvoiceNo(invoiceNo string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE invoice_no = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, invoiceNo), "get sale by invoice")
}

// GetLinesBySaleID returns the lines of a sale.
func (r *SaleRepo) GetLinesBySaleID(saleID string) ([]*entity.SaleLine, error) {
	query := `
		SELECT id, sale_id, product_id, unit_measure, quantity, unit_price, line_total
		FROM sale_lines WHERE sale_id = $1`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.UnitMeasure,
			&l.Quantity, &l.UnitPrice, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// ListByPeriod returns all sales dated within the calendar month.
func (r *SaleRepo) ListByPeriod(p entity.Period) ([]*entity.Sale, error) {
	from, to := p.Bounds()
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sale_date >= $1 AND sale_date < $2 ORDER BY sale_date, invoice_no`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sales by period: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var createdBy *string
		if err := rows.Scan(&s.ID, &s.InvoiceNo, &s.Date, &s.CustomerRef, &s.AmountType,
			&s.TotalValue, &s.Notes, &s.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if createdBy != nil {
			s.CreatedBy = *createdBy
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SaleRepo) scanOne(row pgx.Row, op string) (*entity.Sale, error) {
	var s entity.Sale
	var createdBy *string
	err := row.Scan(&s.ID, &s.InvoiceNo, &s.Date, &s.CustomerRef, &s.AmountType,
		&s.TotalValue, &s.Notes, &s.CreatedAt, &createdBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if createdBy != nil {
		s.CreatedBy = *createdBy
	}
	return &s, nil
}

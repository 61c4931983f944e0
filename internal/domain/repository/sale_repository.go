package repository

import "github.com/sktraders/tradevat-api/internal/domain/entity"

// SaleRepository is the persistence port for sales and their lines.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateLine(line *entity.SaleLine) error
	GetByID(id string) (*entity.Sale, error)
	GetByInvoiceNo(invoiceNo string) (*entity.Sale, error)
	GetLinesBySaleID(saleID string) ([]*entity.SaleLine, error)
	// ListByPeriod returns all sales dated within the calendar month, for
	// settlement aggregation.
	ListByPeriod(p entity.Period) ([]*entity.Sale, error)
}

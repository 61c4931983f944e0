package repository

import (
	"github.com/shopspring/decimal"

	"github.com/sktraders/tradevat-api/internal/domain/entity"
)

// ProductRepository is the persistence port for products. Master-data CRUD
// lives elsewhere; the ledger engine only reads products and refreshes the
// denormalized stock cache.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate locks the product row (SELECT FOR UPDATE); serializes
	// concurrent stock checks on the same product.
	GetForUpdate(id string) (*entity.Product, error)
	UpdateCachedStock(id string, quantity decimal.Decimal) error
	// UpdateCategory backfills the category of an unclassified product,
	// typically from free-text customs descriptions at import intake.
	UpdateCategory(id, category string) error
}

package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sktraders/tradevat-api/internal/application/apptest"
	"github.com/sktraders/tradevat-api/internal/application/sales"
	"github.com/sktraders/tradevat-api/internal/domain"
	"github.com/sktraders/tradevat-api/internal/domain/entity"
	"github.com/sktraders/tradevat-api/internal/domain/vat"
)

const testUserID = "00000000-0000-0000-0000-000000000001"

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// setup seeds one product with 100 units received at cost 10.
func setup(t *testing.T) (*apptest.Store, *sales.RecordSaleUseCase) {
	t.Helper()
	store := apptest.NewStore()
	store.AddProduct(&entity.Product{
		ID:            "p1",
		Name:          "Ceiling Fan 56\"",
		Category:      entity.CategoryFan,
		UnitMeasure:   "PCS",
		StandardCost:  dec("10"),
		StandardPrice: dec("20"),
		CachedStock:   dec("100"),
	})
	store.Entries = append(store.Entries, &entity.LedgerEntry{
		ID: "e1", ProductID: "p1", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Kind: entity.KindImport, QtyIn: dec("100"), UnitCost: dec("10"),
	})
	return store, sales.NewRecordSaleUseCase(store, store.ProductRepo(), store.SaleRepo())
}

func saleInput(invoice string, qty, price string) sales.RecordSaleInput {
	return sales.RecordSaleInput{
		InvoiceNo:  invoice,
		Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		AmountType: entity.AmountExclusive,
		Lines: []sales.SaleLineInput{
			{ProductID: "p1", Quantity: dec(qty), UnitPrice: dec(price)},
		},
	}
}

// Ten units at 20 exclusive of VAT: total 200, VAT 30 on top.
func TestRecordSale_Exclusive(t *testing.T) {
	store, uc := setup(t)

	sale, lines, err := uc.RecordSale(context.Background(), testUserID, saleInput("INV-001", "10", "20"))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, sale.TotalValue.Equal(dec("200")))
	assert.True(t, lines[0].LineTotal.Equal(dec("200")))

	b, err := vat.Decompose(sale.AmountType, sale.TotalValue)
	require.NoError(t, err)
	assert.True(t, b.VAT.Equal(dec("30")))
	assert.True(t, b.Gross.Equal(dec("230")))

	// One SALE ledger entry per line, depletion only.
	entries := store.EntriesFor("p1")
	require.Len(t, entries, 2)
	saleEntry := entries[1]
	assert.Equal(t, entity.KindSale, saleEntry.Kind)
	assert.Equal(t, "INV-001", saleEntry.ReferenceNo)
	assert.True(t, saleEntry.QtyOut.Equal(dec("10")))
	assert.True(t, saleEntry.UnitCost.IsZero())

	assert.True(t, store.Products["p1"].CachedStock.Equal(dec("90")))
}

func TestRecordSale_TotalMismatch(t *testing.T) {
	store, uc := setup(t)

	in := saleInput("INV-002", "10", "20")
	declared := dec("210") // lines sum to 200
	in.TotalValue = &declared

	_, _, err := uc.RecordSale(context.Background(), testUserID, in)
	assert.ErrorIs(t, err, domain.ErrTotalMismatch)
	assert.Empty(t, store.Sales)
}

func TestRecordSale_TotalWithinTolerance(t *testing.T) {
	_, uc := setup(t)

	in := saleInput("INV-003", "10", "20")
	declared := dec("200.01")
	in.TotalValue = &declared

	sale, _, err := uc.RecordSale(context.Background(), testUserID, in)
	require.NoError(t, err)
	assert.True(t, sale.TotalValue.Equal(dec("200.01")), "declared total wins within tolerance")
}

func TestRecordSale_InsufficientStockRollsBack(t *testing.T) {
	store, uc := setup(t)

	in := sales.RecordSaleInput{
		InvoiceNo:  "INV-004",
		Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		AmountType: entity.AmountInclusive,
		Lines: []sales.SaleLineInput{
			{ProductID: "p1", Quantity: dec("60"), UnitPrice: dec("20")},
			{ProductID: "p1", Quantity: dec("41"), UnitPrice: dec("20")}, // 101 total, 100 on hand
		},
	}
	_, _, err := uc.RecordSale(context.Background(), testUserID, in)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Empty(t, store.Sales, "sale must not persist")
	assert.Empty(t, store.SaleLines)
	assert.Len(t, store.EntriesFor("p1"), 1, "no SALE entry on failure")
	assert.True(t, store.Products["p1"].CachedStock.Equal(dec("100")), "cache untouched on rollback")
}

func TestRecordSale_DuplicateInvoice(t *testing.T) {
	_, uc := setup(t)

	_, _, err := uc.RecordSale(context.Background(), testUserID, saleInput("INV-005", "1", "20"))
	require.NoError(t, err)

	_, _, err = uc.RecordSale(context.Background(), testUserID, saleInput("INV-005", "1", "20"))
	assert.ErrorIs(t, err, domain.ErrDuplicateReference)
}

func TestRecordSale_DefaultsFromProduct(t *testing.T) {
	_, uc := setup(t)

	in := sales.RecordSaleInput{
		InvoiceNo:  "INV-006",
		Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		AmountType: entity.AmountInclusive,
		Lines: []sales.SaleLineInput{
			{ProductID: "p1", Quantity: dec("2")}, // no unit, no price
		},
	}
	_, lines, err := uc.RecordSale(context.Background(), testUserID, in)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "PCS", lines[0].UnitMeasure)
	assert.True(t, lines[0].UnitPrice.Equal(dec("20")), "standard price applies")
}

func TestRecordSale_Validation(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()

	in := saleInput("", "1", "20")
	_, _, err := uc.RecordSale(ctx, testUserID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = saleInput("INV-007", "1", "20")
	in.AmountType = "GROSS"
	_, _, err = uc.RecordSale(ctx, testUserID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = saleInput("INV-008", "0", "20")
	_, _, err = uc.RecordSale(ctx, testUserID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	in = saleInput("INV-009", "1", "20")
	in.Lines[0].ProductID = "ghost"
	_, _, err = uc.RecordSale(ctx, testUserID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetSale(t *testing.T) {
	_, uc := setup(t)

	created, _, err := uc.RecordSale(context.Background(), testUserID, saleInput("INV-010", "3", "20"))
	require.NoError(t, err)

	sale, lines, err := uc.GetSale(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-010", sale.InvoiceNo)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Quantity.Equal(dec("3")))

	_, _, err = uc.GetSale(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

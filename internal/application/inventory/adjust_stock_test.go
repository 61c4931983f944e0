package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sktraders/tradevat-api/internal/application/apptest"
	"github.com/sktraders/tradevat-api/internal/application/inventory"
	"github.com/sktraders/tradevat-api/internal/domain"
	"github.com/sktraders/tradevat-api/internal/domain/entity"
)

const testUserID = "00000000-0000-0000-0000-000000000001"

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func newProduct(id string) *entity.Product {
	return &entity.Product{
		ID:           id,
		Name:         "Apex Sandal 42",
		Category:     entity.CategoryFootwear,
		UnitMeasure:  "PCS",
		StandardCost: dec("10"),
	}
}

func setupAdjust(t *testing.T) (*apptest.Store, *inventory.AdjustStockUseCase) {
	t.Helper()
	store := apptest.NewStore()
	store.AddProduct(newProduct("p1"))
	return store, inventory.NewAdjustStockUseCase(store, store.ProductRepo())
}

func TestRecordOpening(t *testing.T) {
	store, uc := setupAdjust(t)

	entry, err := uc.RecordOpening(context.Background(), testUserID, inventory.OpeningInput{
		ProductID: "p1",
		Quantity:  dec("100"),
		UnitCost:  dec("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.KindOpening, entry.Kind)
	assert.True(t, entry.QtyIn.Equal(dec("100")))
	assert.True(t, store.Products["p1"].CachedStock.Equal(dec("100")))
}

func TestRecordOpening_RejectedOnNonEmptyLedger(t *testing.T) {
	_, uc := setupAdjust(t)

	_, err := uc.RecordOpening(context.Background(), testUserID, inventory.OpeningInput{
		ProductID: "p1", Quantity: dec("100"), UnitCost: dec("10"),
	})
	require.NoError(t, err)

	_, err = uc.RecordOpening(context.Background(), testUserID, inventory.OpeningInput{
		ProductID: "p1", Quantity: dec("5"), UnitCost: dec("10"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateReference)
}

func TestAdjust_InIncreasesStock(t *testing.T) {
	store, uc := setupAdjust(t)

	_, err := uc.Adjust(context.Background(), testUserID, inventory.AdjustInput{
		ProductID: "p1", Direction: entity.DirectionIn, Quantity: dec("30"), Reason: "stock count surplus",
	})
	require.NoError(t, err)
	assert.True(t, store.Products["p1"].CachedStock.Equal(dec("30")))

	entries := store.EntriesFor("p1")
	require.Len(t, entries, 1)
	assert.Equal(t, entity.KindAdjust, entries[0].Kind)
	assert.Equal(t, "stock count surplus", entries[0].ReferenceNo)
}

// Issuing exactly the on-hand quantity is allowed and drives stock to zero;
// one unit more is rejected.
func TestAdjust_OutBoundary(t *testing.T) {
	store, uc := setupAdjust(t)
	_, err := uc.RecordOpening(context.Background(), testUserID, inventory.OpeningInput{
		ProductID: "p1", Quantity: dec("50"), UnitCost: dec("10"),
	})
	require.NoError(t, err)

	_, err = uc.Adjust(context.Background(), testUserID, inventory.AdjustInput{
		ProductID: "p1", Direction: entity.DirectionOut, Quantity: dec("50.01"), Reason: "damage",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Len(t, store.EntriesFor("p1"), 1, "failed adjustment must not append")

	_, err = uc.Adjust(context.Background(), testUserID, inventory.AdjustInput{
		ProductID: "p1", Direction: entity.DirectionOut, Quantity: dec("50"), Reason: "damage",
	})
	require.NoError(t, err)
	assert.True(t, store.Products["p1"].CachedStock.IsZero())
}

func TestAdjust_Validation(t *testing.T) {
	_, uc := setupAdjust(t)
	ctx := context.Background()

	_, err := uc.Adjust(ctx, testUserID, inventory.AdjustInput{
		ProductID: "p1", Direction: "SIDEWAYS", Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Adjust(ctx, testUserID, inventory.AdjustInput{
		ProductID: "p1", Direction: entity.DirectionIn, Quantity: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.Adjust(ctx, testUserID, inventory.AdjustInput{
		ProductID: "ghost", Direction: entity.DirectionIn, Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjust_InWithUnitCostMovesAverage(t *testing.T) {
	store, uc := setupAdjust(t)
	_, err := uc.RecordOpening(context.Background(), testUserID, inventory.OpeningInput{
		ProductID: "p1", Quantity: dec("100"), UnitCost: dec("10"),
	})
	require.NoError(t, err)

	cost := dec("12")
	_, err = uc.Adjust(context.Background(), testUserID, inventory.AdjustInput{
		ProductID: "p1", Direction: entity.DirectionIn, Quantity: dec("50"),
		Reason: "recount", UnitCost: &cost,
	})
	require.NoError(t, err)

	valuationUC := inventory.NewValuationUseCase(store, store.LedgerRepo(), store.ProductRepo())
	pos, err := valuationUC.GetPosition(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, pos.QuantityOnHand.Equal(dec("150")))
	assert.True(t, pos.WeightedAverageCost.Round(4).Equal(dec("10.6667")), "wac = %s", pos.WeightedAverageCost)
}

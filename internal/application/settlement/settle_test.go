package settlement_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sktraders/tradevat-api/internal/application/apptest"
	"github.com/sktraders/tradevat-api/internal/application/settlement"
	"github.com/sktraders/tradevat-api/internal/domain"
	"github.com/sktraders/tradevat-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

var (
	march = entity.Period{Year: 2024, Month: 3}
	april = entity.Period{Year: 2024, Month: 4}
)

func newUC(store *apptest.Store) *settlement.SettlementUseCase {
	return settlement.NewSettlementUseCase(store, store.SaleRepo(), store.BalanceRepo(), store.SettlementRepo())
}

// addSale seeds an EXCLUSIVE sale of the given net total in the period.
func addSale(store *apptest.Store, p entity.Period, invoice, total string) {
	store.Sales = append(store.Sales, &entity.Sale{
		ID:         "sale-" + invoice,
		InvoiceNo:  invoice,
		Date:       time.Date(p.Year, time.Month(p.Month), 15, 0, 0, 0, 0, time.UTC),
		AmountType: entity.AmountExclusive,
		TotalValue: dec(total),
	})
}

// addCredit seeds the period's balance row with a monthly addition.
func addCredit(store *apptest.Store, p entity.Period, opening, addition string) {
	store.Balances[p] = &entity.ClosingBalance{
		Period:          p,
		OpeningBalance:  dec(opening),
		MonthlyAddition: dec(addition),
		UsedAmount:      decimal.Zero,
	}
}

// Net sales of 8000 exclusive carry 1200 VAT. With a 500 deposit and 1000
// of import credit, 700 is drawn from the credit and nothing is short.
func TestCompute(t *testing.T) {
	store := apptest.NewStore()
	uc := newUC(store)
	addSale(store, march, "INV-1", "8000")
	addCredit(store, march, "0", "1000")

	deposit := dec("500")
	st, err := uc.Compute(context.Background(), march, &deposit)
	require.NoError(t, err)

	assert.True(t, st.NetSales.Equal(dec("8000")))
	assert.True(t, st.VATPayable.Equal(dec("1200")))
	assert.True(t, st.GrossSales.Equal(dec("9200")))
	assert.True(t, st.TreasuryDeposit.Equal(dec("500")))
	assert.True(t, st.UsedFromBalance.Equal(dec("700")))
	assert.True(t, st.Shortfall.IsZero())
	assert.False(t, st.Locked)

	balance := store.Balances[march]
	assert.True(t, balance.UsedAmount.Equal(dec("700")))
	assert.True(t, balance.Closing().Equal(dec("300")))
}

// Recomputing replaces the draft; the consumed amount is absolute, never
// accumulated across recomputes.
func TestCompute_RecomputeIsIdempotent(t *testing.T) {
	store := apptest.NewStore()
	uc := newUC(store)
	addSale(store, march, "INV-1", "8000")
	addCredit(store, march, "0", "1000")

	deposit := dec("500")
	first, err := uc.Compute(context.Background(), march, &deposit)
	require.NoError(t, err)
	second, err := uc.Compute(context.Background(), march, &deposit)
	require.NoError(t, err)

	assert.True(t, second.UsedFromBalance.Equal(first.UsedFromBalance))
	assert.True(t, store.Balances[march].UsedAmount.Equal(dec("700")), "not double-counted")
	assert.Equal(t, first.CreatedAt, second.CreatedAt, "draft identity survives recompute")

	// A changed deposit shifts the draw accordingly.
	bigger := dec("900")
	third, err := uc.Compute(context.Background(), march, &bigger)
	require.NoError(t, err)
	assert.True(t, third.UsedFromBalance.Equal(dec("300")))
	assert.True(t, store.Balances[march].UsedAmount.Equal(dec("300")))
}

// Without an explicit deposit the engine sums the period's challans.
func TestCompute_DepositDefaultsToChallans(t *testing.T) {
	store := apptest.NewStore()
	uc := newUC(store)
	addSale(store, march, "INV-1", "8000")
	store.Challans = append(store.Challans,
		&entity.TreasuryChallan{ID: "c1", TokenNo: "T-1", Amount: dec("300"), Period: march},
		&entity.TreasuryChallan{ID: "c2", TokenNo: "T-2", Amount: dec("450"), Period: march},
	)

	st, err := uc.Compute(context.Background(), march, nil)
	require.NoError(t, err)
	assert.True(t, st.TreasuryDeposit.Equal(dec("750")))
	assert.True(t, st.UsedFromBalance.IsZero(), "no credit available")
	assert.True(t, st.Shortfall.Equal(dec("450")))
}

// When credit cannot cover the remainder, the gap is reported as shortfall.
func TestCompute_Shortfall(t *testing.T) {
	store := apptest.NewStore()
	uc := newUC(store)
	addSale(store, march, "INV-1", "8000")
	addCredit(store, march, "0", "400")

	deposit := dec("500")
	st, err := uc.Compute(context.Background(), march, &deposit)
	require.NoError(t, err)
	assert.True(t, st.UsedFromBalance.Equal(dec("400")), "capped at available credit")
	assert.True(t, st.Shortfall.Equal(dec("300")))
}

// An over-deposit never draws from the credit.
func TestCompute_OverDeposit(t *testing.T) {
	store := apptest.NewStore()
	uc := newUC(store)
	addSale(store, march, "INV-1", "1000")
	addCredit(store, march, "0", "500")

	deposit := dec("200")
	st, err := uc.Compute(context.Background(), march, &deposit)
	require.NoError(t, err)
	assert.True(t, st.VATPayable.Equal(dec("150")))
	assert.True(t, st.UsedFromBalance.IsZero())
	assert.True(t, st.Shortfall.IsZero())
	assert.True(t, store.Balances[march].Closing().Equal(dec("500")), "credit carried untouched")
}

func TestLock(t *testing.T) {
	store := apptest.NewStore()
	uc := newUC(store)
	addSale(store, march, "INV-1", "8000")
	addCredit(store, march, "0", "1000")

	deposit := dec("500")
	_, err := uc.Compute(context.Background(), march, &deposit)
	require.NoError(t, err)

	st, err := uc.Lock(context.Background(), march)
	require.NoError(t, err)
	assert.True(t, st.Locked)
	assert.True(t, store.Balances[march].Settled)
	assert.True(t, store.Settlements[march].Locked)

	// Locked months reject both recompute and a second lock.
	_, err = uc.Compute(context.Background(), march, &deposit)
	assert.ErrorIs(t, err, domain.ErrAlreadyLocked)
	_, err = uc.Lock(context.Background(), march)
	assert.ErrorIs(t, err, domain.ErrAlreadyLocked)
}

func TestLock_RequiresChronologicalOrder(t *testing.T) {
	store := apptest.NewStore()
	uc := newUC(store)
	addSale(store, march, "INV-1", "8000")
	addCredit(store, march, "0", "1000")
	addSale(store, april, "INV-2", "2000")
	addCredit(store, april, "0", "0")

	_, err := uc.Compute(context.Background(), april, nil)
	require.NoError(t, err)

	_, err = uc.Lock(context.Background(), april)
	assert.ErrorIs(t, err, domain.ErrPriorPeriodUnsettled, "march is still open")
	assert.False(t, store.Balances[april].Settled)
}

// A month that only recorded sales has no balance row until it is computed;
// it must still block later locks until its own settlement is locked.
func TestLock_BlocksOnSalesOnlyPriorMonth(t *testing.T) {
	store := apptest.NewStore()
	uc := newUC(store)
	ctx := context.Background()
	addSale(store, march, "INV-1", "2400") // never computed, no balance row
	addSale(store, april, "INV-2", "2000")
	addCredit(store, april, "0", "0")

	deposit := decimal.Zero
	_, err := uc.Compute(ctx, april, &deposit)
	require.NoError(t, err)

	_, err = uc.Lock(ctx, april)
	assert.ErrorIs(t, err, domain.ErrPriorPeriodUnsettled, "march has sales but was never settled")
	assert.False(t, store.Balances[april].Settled)

	// Settling march in order clears the guard.
	_, err = uc.Compute(ctx, march, &deposit)
	require.NoError(t, err)
	_, err = uc.Lock(ctx, march)
	require.NoError(t, err)
	_, err = uc.Lock(ctx, april)
	require.NoError(t, err)
}

func TestLock_WithoutDraft(t *testing.T) {
	store := apptest.NewStore()
	uc := newUC(store)

	_, err := uc.Lock(context.Background(), march)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Locking re-bases the opening on the predecessor's closing so late import
// corrections in the prior month flow through the carry-forward chain.
func TestLock_RebasesOpeningFromPrevClosing(t *testing.T) {
	store := apptest.NewStore()
	uc := newUC(store)

	// March: 1000 credit, 700 used, settled. Closing 300.
	store.Balances[march] = &entity.ClosingBalance{
		Period:          march,
		MonthlyAddition: dec("1000"),
		UsedAmount:      dec("700"),
		Settled:         true,
	}
	addSale(store, april, "INV-2", "2000") // 300 VAT
	addCredit(store, april, "0", "100")    // stale opening of zero

	deposit := decimal.Zero
	_, err := uc.Compute(context.Background(), april, &deposit)
	require.NoError(t, err)

	st, err := uc.Lock(context.Background(), april)
	require.NoError(t, err)

	balance := store.Balances[april]
	assert.True(t, balance.OpeningBalance.Equal(dec("300")), "opening re-based on march closing")
	assert.True(t, balance.UsedAmount.Equal(st.UsedFromBalance))
	assert.True(t, balance.Settled)
}

// Full quarter walk-through: credits and usage chain month to month.
func TestCarryForwardChain(t *testing.T) {
	store := apptest.NewStore()
	uc := newUC(store)
	ctx := context.Background()

	addSale(store, march, "INV-1", "2000") // 300 VAT
	addCredit(store, march, "0", "1000")

	deposit := decimal.Zero
	_, err := uc.Compute(ctx, march, &deposit)
	require.NoError(t, err)
	_, err = uc.Lock(ctx, march)
	require.NoError(t, err)
	assert.True(t, store.Balances[march].Closing().Equal(dec("700")))

	addSale(store, april, "INV-2", "4000") // 600 VAT
	_, err = uc.Compute(ctx, april, &deposit)
	require.NoError(t, err)

	st, err := uc.Lock(ctx, april)
	require.NoError(t, err)
	assert.True(t, st.UsedFromBalance.Equal(dec("600")))

	balance := store.Balances[april]
	assert.True(t, balance.OpeningBalance.Equal(dec("700")), "april opens on march closing")
	assert.True(t, balance.Closing().Equal(dec("100")))
}

func TestSummarize(t *testing.T) {
	store := apptest.NewStore()
	uc := newUC(store)
	addSale(store, march, "INV-1", "2000")
	store.Sales = append(store.Sales, &entity.Sale{
		ID: "sale-inc", InvoiceNo: "INV-2",
		Date:       time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		AmountType: entity.AmountInclusive,
		TotalValue: dec("1150"),
	})

	s, err := uc.Summarize(context.Background(), march)
	require.NoError(t, err)
	assert.Equal(t, 2, s.SaleCount)
	assert.True(t, s.NetSales.Equal(dec("3000")))
	assert.True(t, s.VATPayable.Equal(dec("450")))
	assert.True(t, s.GrossSales.Equal(dec("3450")))
}

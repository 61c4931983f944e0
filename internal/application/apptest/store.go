// Package apptest provides an in-memory implementation of every persistence
// port plus the per-feature transaction runners, for use-case tests.
// Run* methods snapshot the store before the callback and restore it on
// error, so transactional rollback behaves like the real thing.
package apptest

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sktraders/tradevat-api/internal/domain"
	"github.com/sktraders/tradevat-api/internal/domain/entity"
	"github.com/sktraders/tradevat-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository        = productRepo{}
	_ repository.LedgerEntryRepository    = ledgerRepo{}
	_ repository.SaleRepository           = saleRepo{}
	_ repository.ImportFactRepository     = factRepo{}
	_ repository.ClosingBalanceRepository = balanceRepo{}
	_ repository.SettlementRepository     = settlementRepo{}
	_ repository.ChallanRepository        = challanRepo{}
)

// Store holds all state. Zero value is not usable; call NewStore.
type Store struct {
	Products    map[string]*entity.Product
	Entries     []*entity.LedgerEntry
	Sales       []*entity.Sale
	SaleLines   []*entity.SaleLine
	Facts       []*entity.ImportFact
	Balances    map[entity.Period]*entity.ClosingBalance
	Settlements map[entity.Period]*entity.VATSettlement
	Challans    []*entity.TreasuryChallan
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{
		Products:    make(map[string]*entity.Product),
		Balances:    make(map[entity.Period]*entity.ClosingBalance),
		Settlements: make(map[entity.Period]*entity.VATSettlement),
	}
}

// AddProduct registers a product.
func (s *Store) AddProduct(p *entity.Product) {
	s.Products[p.ID] = p
}

// EntriesFor returns the ledger entries of one product in insertion order.
func (s *Store) EntriesFor(productID string) []*entity.LedgerEntry {
	var out []*entity.LedgerEntry
	for _, e := range s.Entries {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out
}

// Repositories (pool-bound view, same data as the tx-bound ones).

func (s *Store) ProductRepo() repository.ProductRepository          { return productRepo{s} }
func (s *Store) LedgerRepo() repository.LedgerEntryRepository       { return ledgerRepo{s} }
func (s *Store) SaleRepo() repository.SaleRepository                { return saleRepo{s} }
func (s *Store) FactRepo() repository.ImportFactRepository          { return factRepo{s} }
func (s *Store) BalanceRepo() repository.ClosingBalanceRepository   { return balanceRepo{s} }
func (s *Store) SettlementRepo() repository.SettlementRepository    { return settlementRepo{s} }
func (s *Store) ChallanRepo() repository.ChallanRepository          { return challanRepo{s} }

// Transaction runners.

func (s *Store) Run(ctx context.Context, fn func(repository.LedgerEntryRepository, repository.ProductRepository) error) error {
	return s.inTx(func() error { return fn(ledgerRepo{s}, productRepo{s}) })
}

func (s *Store) RunSale(ctx context.Context, fn func(repository.LedgerEntryRepository, repository.ProductRepository, repository.SaleRepository) error) error {
	return s.inTx(func() error { return fn(ledgerRepo{s}, productRepo{s}, saleRepo{s}) })
}

func (s *Store) RunImport(ctx context.Context, fn func(repository.LedgerEntryRepository, repository.ProductRepository, repository.ImportFactRepository, repository.ClosingBalanceRepository) error) error {
	return s.inTx(func() error { return fn(ledgerRepo{s}, productRepo{s}, factRepo{s}, balanceRepo{s}) })
}

func (s *Store) RunSettlement(ctx context.Context, fn func(repository.SaleRepository, repository.ChallanRepository, repository.ClosingBalanceRepository, repository.SettlementRepository) error) error {
	return s.inTx(func() error { return fn(saleRepo{s}, challanRepo{s}, balanceRepo{s}, settlementRepo{s}) })
}

func (s *Store) inTx(fn func() error) error {
	snap := s.snapshot()
	if err := fn(); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) snapshot() *Store {
	snap := NewStore()
	for k, v := range s.Products {
		c := *v
		snap.Products[k] = &c
	}
	for _, e := range s.Entries {
		c := *e
		snap.Entries = append(snap.Entries, &c)
	}
	for _, v := range s.Sales {
		c := *v
		snap.Sales = append(snap.Sales, &c)
	}
	for _, l := range s.SaleLines {
		c := *l
		snap.SaleLines = append(snap.SaleLines, &c)
	}
	for _, f := range s.Facts {
		c := *f
		snap.Facts = append(snap.Facts, &c)
	}
	for k, v := range s.Balances {
		c := *v
		snap.Balances[k] = &c
	}
	for k, v := range s.Settlements {
		c := *v
		snap.Settlements[k] = &c
	}
	for _, ch := range s.Challans {
		c := *ch
		snap.Challans = append(snap.Challans, &c)
	}
	return snap
}

func (s *Store) restore(snap *Store) {
	s.Products = snap.Products
	s.Entries = snap.Entries
	s.Sales = snap.Sales
	s.SaleLines = snap.SaleLines
	s.Facts = snap.Facts
	s.Balances = snap.Balances
	s.Settlements = snap.Settlements
	s.Challans = snap.Challans
}

type productRepo struct{ s *Store }

func (r productRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.Products[id], nil
}

func (r productRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.s.Products[id], nil
}

func (r productRepo) UpdateCachedStock(id string, quantity decimal.Decimal) error {
	p, ok := r.s.Products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.CachedStock = quantity
	p.UpdatedAt = time.Now()
	return nil
}

func (r productRepo) UpdateCategory(id, category string) error {
	p, ok := r.s.Products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Category = category
	p.UpdatedAt = time.Now()
	return nil
}

type ledgerRepo struct{ s *Store }

func (r ledgerRepo) Append(entry *entity.LedgerEntry) error {
	c := *entry
	r.s.Entries = append(r.s.Entries, &c)
	return nil
}

func (r ledgerRepo) SumForProduct(productID string) (repository.LedgerSums, error) {
	var sums repository.LedgerSums
	for _, e := range r.s.Entries {
		if e.ProductID != productID {
			continue
		}
		sums.SumIn = sums.SumIn.Add(e.QtyIn)
		sums.SumOut = sums.SumOut.Add(e.QtyOut)
		sums.CostIn = sums.CostIn.Add(e.QtyIn.Mul(e.UnitCost))
	}
	return sums, nil
}

func (r ledgerRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	var all []*entity.LedgerEntry
	for _, e := range r.s.Entries {
		if e.ProductID != productID {
			continue
		}
		if from != nil && e.Date.Before(*from) {
			continue
		}
		if to != nil && !e.Date.Before(*to) {
			continue
		}
		all = append(all, e)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Date.Before(all[j].Date) })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r ledgerRepo) HasEntries(productID string) (bool, error) {
	for _, e := range r.s.Entries {
		if e.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

type saleRepo struct{ s *Store }

func (r saleRepo) Create(sale *entity.Sale) error {
	for _, existing := range r.s.Sales {
		if existing.InvoiceNo == sale.InvoiceNo {
			return domain.ErrDuplicateReference
		}
	}
	c := *sale
	r.s.Sales = append(r.s.Sales, &c)
	return nil
}

func (r saleRepo) CreateLine(line *entity.SaleLine) error {
	c := *line
	r.s.SaleLines = append(r.s.SaleLines, &c)
	return nil
}

func (r saleRepo) GetByID(id string) (*entity.Sale, error) {
	for _, s := range r.s.Sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r saleRepo) GetByInvoiceNo(invoiceNo string) (*entity.Sale, error) {
	for _, s := range r.s.Sales {
		if s.InvoiceNo == invoiceNo {
			return s, nil
		}
	}
	return nil, nil
}

func (r saleRepo) GetLinesBySaleID(saleID string) ([]*entity.SaleLine, error) {
	var out []*entity.SaleLine
	for _, l := range r.s.SaleLines {
		if l.SaleID == saleID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r saleRepo) ListByPeriod(p entity.Period) ([]*entity.Sale, error) {
	from, to := p.Bounds()
	var out []*entity.Sale
	for _, s := range r.s.Sales {
		if !s.Date.Before(from) && s.Date.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

type factRepo struct{ s *Store }

func (r factRepo) GetByBOEForUpdate(boeNo string, boeItem int) (*entity.ImportFact, error) {
	for _, f := range r.s.Facts {
		if f.BOENo == boeNo && f.BOEItem == boeItem {
			return f, nil
		}
	}
	return nil, nil
}

func (r factRepo) Create(fact *entity.ImportFact) error {
	for _, f := range r.s.Facts {
		if f.BOENo == fact.BOENo && f.BOEItem == fact.BOEItem {
			return domain.ErrDuplicateReference
		}
	}
	c := *fact
	r.s.Facts = append(r.s.Facts, &c)
	return nil
}

func (r factRepo) Update(fact *entity.ImportFact) error {
	for i, f := range r.s.Facts {
		if f.ID == fact.ID {
			c := *fact
			r.s.Facts[i] = &c
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r factRepo) ListByPeriod(p entity.Period) ([]*entity.ImportFact, error) {
	from, to := p.Bounds()
	var out []*entity.ImportFact
	for _, f := range r.s.Facts {
		if !f.BOEDate.Before(from) && f.BOEDate.Before(to) {
			out = append(out, f)
		}
	}
	return out, nil
}

type balanceRepo struct{ s *Store }

func (r balanceRepo) Get(p entity.Period) (*entity.ClosingBalance, error) {
	return r.s.Balances[p], nil
}

func (r balanceRepo) GetForUpdate(p entity.Period) (*entity.ClosingBalance, error) {
	return r.s.Balances[p], nil
}

func (r balanceRepo) Create(balance *entity.ClosingBalance) error {
	if _, ok := r.s.Balances[balance.Period]; ok {
		return domain.ErrDuplicateReference
	}
	c := *balance
	r.s.Balances[balance.Period] = &c
	return nil
}

func (r balanceRepo) Update(balance *entity.ClosingBalance) error {
	if _, ok := r.s.Balances[balance.Period]; !ok {
		return domain.ErrNotFound
	}
	c := *balance
	r.s.Balances[balance.Period] = &c
	return nil
}

func (r balanceRepo) ExistsUnsettledBefore(p entity.Period) (bool, error) {
	for q, b := range r.s.Balances {
		if q.Before(p) && !b.Settled {
			return true, nil
		}
	}
	// Sales-only months have no balance row; they count as open until their
	// settlement is locked.
	for _, sale := range r.s.Sales {
		q := entity.PeriodOf(sale.Date)
		if !q.Before(p) {
			continue
		}
		if st, ok := r.s.Settlements[q]; !ok || !st.Locked {
			return true, nil
		}
	}
	return false, nil
}

type settlementRepo struct{ s *Store }

func (r settlementRepo) Get(p entity.Period) (*entity.VATSettlement, error) {
	return r.s.Settlements[p], nil
}

func (r settlementRepo) GetForUpdate(p entity.Period) (*entity.VATSettlement, error) {
	return r.s.Settlements[p], nil
}

func (r settlementRepo) Upsert(settlement *entity.VATSettlement) error {
	if existing, ok := r.s.Settlements[settlement.Period]; ok && existing.Locked {
		return nil
	}
	c := *settlement
	r.s.Settlements[settlement.Period] = &c
	return nil
}

func (r settlementRepo) MarkLocked(p entity.Period) error {
	st, ok := r.s.Settlements[p]
	if !ok {
		return domain.ErrNotFound
	}
	st.Locked = true
	st.UpdatedAt = time.Now()
	return nil
}

type challanRepo struct{ s *Store }

func (r challanRepo) Create(challan *entity.TreasuryChallan) error {
	for _, ch := range r.s.Challans {
		if ch.TokenNo == challan.TokenNo {
			return domain.ErrDuplicateReference
		}
	}
	c := *challan
	r.s.Challans = append(r.s.Challans, &c)
	return nil
}

func (r challanRepo) GetByTokenNo(tokenNo string) (*entity.TreasuryChallan, error) {
	for _, ch := range r.s.Challans {
		if ch.TokenNo == tokenNo {
			return ch, nil
		}
	}
	return nil, nil
}

func (r challanRepo) ListByPeriod(p entity.Period) ([]*entity.TreasuryChallan, error) {
	var out []*entity.TreasuryChallan
	for _, ch := range r.s.Challans {
		if ch.Year == p.Year && ch.Month == p.Month {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (r challanRepo) SumByPeriod(p entity.Period) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, ch := range r.s.Challans {
		if ch.Year == p.Year && ch.Month == p.Month {
			sum = sum.Add(ch.Amount)
		}
	}
	return sum, nil
}

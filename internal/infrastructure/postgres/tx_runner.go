package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sktraders/tradevat-api/internal/application/imports"
	"github.com/sktraders/tradevat-api/internal/application/inventory"
	"github.com/sktraders/tradevat-api/internal/application/sales"
	"github.com/sktraders/tradevat-api/internal/application/settlement"
	"github.com/sktraders/tradevat-api/internal/domain/repository"
)

// Ensure TxRunner implements every application TxRunner port.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)
var _ imports.TxRunner = (*TxRunner)(nil)
var _ settlement.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction with
// repositories bound to that transaction. Commit on success, rollback on any
// error.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner with the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run starts a transaction for ledger appends (adjustments, reconciliation).
func (r *TxRunner) Run(ctx context.Context, fn func(
	ledgerRepo repository.LedgerEntryRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewLedgerEntryRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale starts a transaction spanning a sale insert and its ledger
// appends.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	ledgerRepo repository.LedgerEntryRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewLedgerEntryRepository(tx), NewProductRepository(tx), NewSaleRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunImport starts a transaction spanning a Bill-of-Entry intake.
func (r *TxRunner) RunImport(ctx context.Context, fn func(
	ledgerRepo repository.LedgerEntryRepository,
	productRepo repository.ProductRepository,
	factRepo repository.ImportFactRepository,
	balanceRepo repository.ClosingBalanceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewLedgerEntryRepository(tx),
		NewProductRepository(tx),
		NewImportFactRepository(tx),
		NewClosingBalanceRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSettlement starts a transaction spanning a settlement compute or lock.
func (r *TxRunner) RunSettlement(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	challanRepo repository.ChallanRepository,
	balanceRepo repository.ClosingBalanceRepository,
	settlementRepo repository.SettlementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewSaleRepository(tx),
		NewChallanRepository(tx),
		NewClosingBalanceRepository(tx),
		NewSettlementRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sktraders/tradevat-api/internal/application/imports"
	"github.com/sktraders/tradevat-api/internal/application/inventory"
	"github.com/sktraders/tradevat-api/internal/application/sales"
	"github.com/sktraders/tradevat-api/internal/application/settlement"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AdjustStock  *inventory.AdjustStockUseCase
	Valuation    *inventory.ValuationUseCase
	RecordSale   *sales.RecordSaleUseCase
	RecordImport *imports.RecordImportUseCase
	Settlement   *settlement.SettlementUseCase
	Challan      *settlement.ChallanUseCase
	JWTSecret    string
}

// Router registers the API routes. Everything under /api requires a Bearer token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Inventory ledger
	inventoryHandler := NewInventoryHandler(deps.AdjustStock, deps.Valuation)
	inv := api.Group("/inventory")
	inv.Post("/adjustments", inventoryHandler.AdjustStock)
	inv.Post("/opening", inventoryHandler.RecordOpening)

	products := api.Group("/products")
	products.Get("/:id/position", inventoryHandler.GetPosition)
	products.Get("/:id/ledger", inventoryHandler.ListLedger)
	products.Post("/:id/reconcile-stock", inventoryHandler.ReconcileStock)

	// Sales
	salesHandler := NewSalesHandler(deps.RecordSale)
	salesGroup := api.Group("/sales")
	salesGroup.Post("/", salesHandler.RecordSale)
	salesGroup.Get("/:id", salesHandler.GetSale)

	// Customs imports
	importsHandler := NewImportsHandler(deps.RecordImport)
	importsGroup := api.Group("/imports")
	importsGroup.Post("/", importsHandler.RecordImport)
	importsGroup.Post("/batch", importsHandler.RecordImportBatch)

	// Treasury challans
	challanHandler := NewChallanHandler(deps.Challan)
	challans := api.Group("/challans")
	challans.Post("/", challanHandler.RecordChallan)
	challans.Get("/", challanHandler.ListChallans)

	// Monthly settlement
	settlementHandler := NewSettlementHandler(deps.Settlement)
	settlements := api.Group("/settlements")
	settlements.Post("/:year/:month/compute", settlementHandler.Compute)
	// Locking closes the books for the month; restricted to accountants.
	settlements.Post("/:year/:month/lock", RequireRole("admin", "accountant"), settlementHandler.Lock)
	settlements.Get("/:year/:month", settlementHandler.Get)

	periods := api.Group("/periods")
	periods.Get("/:year/:month/closing-balance", settlementHandler.GetClosingBalance)
	periods.Get("/:year/:month/summary", settlementHandler.GetSummary)
}

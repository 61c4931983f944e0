package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sktraders/tradevat-api/internal/application/imports"
	"github.com/sktraders/tradevat-api/internal/application/inventory"
	"github.com/sktraders/tradevat-api/internal/application/sales"
	"github.com/sktraders/tradevat-api/internal/application/settlement"
	"github.com/sktraders/tradevat-api/internal/infrastructure/postgres"
	httpRouter "github.com/sktraders/tradevat-api/internal/interfaces/http"
	"github.com/sktraders/tradevat-api/pkg/config"
	"github.com/sktraders/tradevat-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	ledgerRepo := postgres.NewLedgerEntryRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	challanRepo := postgres.NewChallanRepository(pool)
	balanceRepo := postgres.NewClosingBalanceRepository(pool)
	settlementRepo := postgres.NewSettlementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	adjustStockUC := inventory.NewAdjustStockUseCase(txRunner, productRepo)
	valuationUC := inventory.NewValuationUseCase(txRunner, ledgerRepo, productRepo)
	recordSaleUC := sales.NewRecordSaleUseCase(txRunner, productRepo, saleRepo)
	recordImportUC := imports.NewRecordImportUseCase(txRunner, productRepo)
	settlementUC := settlement.NewSettlementUseCase(txRunner, saleRepo, balanceRepo, settlementRepo)
	challanUC := settlement.NewChallanUseCase(challanRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "TradeVAT API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AdjustStock:  adjustStockUC,
		Valuation:    valuationUC,
		RecordSale:   recordSaleUC,
		RecordImport: recordImportUC,
		Settlement:   settlementUC,
		Challan:      challanUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}

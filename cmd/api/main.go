package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mahalpos/pos-api/internal/application/auth"
	appinv "github.com/mahalpos/pos-api/internal/application/inventory"
	"github.com/mahalpos/pos-api/internal/application/reports"
	"github.com/mahalpos/pos-api/internal/application/sales"
	"github.com/mahalpos/pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/mahalpos/pos-api/internal/interfaces/http"
	"github.com/mahalpos/pos-api/pkg/config"
	"github.com/mahalpos/pos-api/pkg/logger"
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

	itemRepo := postgres.NewInventoryItemRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	locationRepo := postgres.NewStorageLocationRepository(pool)
	orderRepo := postgres.NewSalesOrderRepository(pool)
	lineRepo := postgres.NewSalesLineRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)

	ledger := appinv.NewLedger(itemRepo, movementRepo, locationRepo, cfg.VAT.DefaultRate, log)
	storageUC := appinv.NewStorageUseCase(locationRepo)
	coordinator := sales.NewCoordinator(orderRepo, lineRepo, itemRepo, ledger, cfg.VAT.DefaultRate, log)
	vatReportUC := reports.NewVATReportUseCase(reportRepo, cfg.VAT.DefaultRate, cfg.VAT.Currency)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:      ledger,
		Storage:     storageUC,
		Coordinator: coordinator,
		VATReport:   vatReportUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
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

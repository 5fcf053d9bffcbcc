package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mahalpos/pos-api/internal/application/auth"
	appinv "github.com/mahalpos/pos-api/internal/application/inventory"
	"github.com/mahalpos/pos-api/internal/application/reports"
	"github.com/mahalpos/pos-api/internal/application/sales"
)

// RouterDeps holds the use cases the router wires handlers to.
type RouterDeps struct {
	Ledger      *appinv.Ledger
	Storage     *appinv.StorageUseCase
	Coordinator *sales.Coordinator
	VATReport   *reports.VATReportUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Everything below requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventory
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	inv.Get("/items", inventoryHandler.ListItems)
	inv.Post("/items", inventoryHandler.AddProducts)
	inv.Post("/items/import", inventoryHandler.ImportSpreadsheet)
	inv.Post("/items/:id/add-stock", inventoryHandler.AddStock)
	inv.Delete("/items/:id", inventoryHandler.DeleteItem)
	inv.Get("/movements", inventoryHandler.ListMovements)

	// Storage locations
	locations := protected.Group("/storage-locations")
	storageHandler := NewStorageHandler(deps.Storage)
	locations.Get("/", storageHandler.List)
	locations.Post("/", storageHandler.Create)

	// Sales
	salesGroup := protected.Group("/sales")
	salesHandler := NewSalesHandler(deps.Coordinator)
	salesGroup.Post("/receipts", salesHandler.RecordReceipt)
	salesGroup.Post("/orders", salesHandler.CreateOrder)
	salesGroup.Get("/orders", salesHandler.ListOrders)
	salesGroup.Get("/orders/:id", salesHandler.GetOrder)
	salesGroup.Post("/session-summary", salesHandler.SummarizeSession)

	// Reports
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.VATReport)
	reportsGroup.Get("/vat", reportHandler.VATReport)
}

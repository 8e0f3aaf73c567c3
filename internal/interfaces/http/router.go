package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bodegapro/bodega-api/internal/application/auth"
	"github.com/bodegapro/bodega-api/internal/application/orders"
	"github.com/bodegapro/bodega-api/internal/application/receipts"
	"github.com/bodegapro/bodega-api/internal/application/reports"
	"github.com/bodegapro/bodega-api/internal/application/transfers"
	"github.com/bodegapro/bodega-api/internal/application/usecase"
	"github.com/bodegapro/bodega-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	StockUC     *usecase.StockUseCase
	ActivityUC  *usecase.ActivityUseCase
	OrderUC     *orders.UseCase
	TransferUC  *transfers.UseCase
	ReceiptUC   *receipts.UseCase
	PDFUC       *reports.PDFUseCase
	ExcelUC     *reports.ExcelUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)

	// Stock (protegido, solo lectura)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Get("/", stockHandler.List)

	// Orders (protegido; eliminar es solo admin)
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.PDFUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", orderHandler.Update)
	ordersGroup.Delete("/:id", RequireRole(), orderHandler.Delete)
	ordersGroup.Get("/:id/pdf", orderHandler.PDF)

	// Transfers (protegido; crear requiere bodeguero o admin)
	transfersGroup := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfersGroup.Post("/", RequireRole(entity.RoleBodeguero), transferHandler.Create)
	transfersGroup.Get("/", transferHandler.List)
	transfersGroup.Get("/:id", transferHandler.GetByID)

	// Receipts (protegido; crear requiere bodeguero o admin)
	receiptsGroup := protected.Group("/receipts")
	receiptHandler := NewReceiptHandler(deps.ReceiptUC)
	receiptsGroup.Post("/", RequireRole(entity.RoleBodeguero), receiptHandler.Create)
	receiptsGroup.Get("/", receiptHandler.List)
	receiptsGroup.Get("/:id", receiptHandler.GetByID)

	// Activity (protegido, solo lectura)
	activity := protected.Group("/activity")
	activityHandler := NewActivityHandler(deps.ActivityUC)
	activity.Get("/", activityHandler.List)

	// Reports (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ExcelUC)
	reportsGroup.Get("/stock.xlsx", reportHandler.StockExcel)
}

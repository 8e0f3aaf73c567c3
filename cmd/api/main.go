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

	"github.com/bodegapro/bodega-api/internal/application/auth"
	"github.com/bodegapro/bodega-api/internal/application/orders"
	"github.com/bodegapro/bodega-api/internal/application/receipts"
	"github.com/bodegapro/bodega-api/internal/application/reports"
	"github.com/bodegapro/bodega-api/internal/application/transfers"
	"github.com/bodegapro/bodega-api/internal/application/usecase"
	infraexcel "github.com/bodegapro/bodega-api/internal/infrastructure/excel"
	infrapdf "github.com/bodegapro/bodega-api/internal/infrastructure/pdf"
	"github.com/bodegapro/bodega-api/internal/infrastructure/postgres"
	localstorage "github.com/bodegapro/bodega-api/internal/infrastructure/storage"
	httpRouter "github.com/bodegapro/bodega-api/internal/interfaces/http"
	"github.com/bodegapro/bodega-api/pkg/config"
	"github.com/bodegapro/bodega-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uploads, err := localstorage.NewLocalStorage(cfg.Storage.UploadsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de adjuntos")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	receiptRepo := postgres.NewReceiptRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	stockUC := usecase.NewStockUseCase(stockRepo)
	activityUC := usecase.NewActivityUseCase(activityRepo)

	orderUC := orders.NewUseCase(txRunner, productRepo, warehouseRepo, orderRepo, activityRepo, uploads, log)
	transferUC := transfers.NewUseCase(txRunner, productRepo, warehouseRepo, transferRepo, activityRepo, log,
		cfg.Stock.EnforceTransferFloor)
	receiptUC := receipts.NewUseCase(txRunner, productRepo, warehouseRepo, receiptRepo, activityRepo, log)

	pdfUC := reports.NewPDFUseCase(orderRepo, warehouseRepo, productRepo, infrapdf.NewMarotoPDFGenerator())
	excelUC := reports.NewExcelUseCase(stockRepo, infraexcel.NewStockExporter())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bodega Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		WarehouseUC: warehouseUC,
		StockUC:     stockUC,
		ActivityUC:  activityUC,
		OrderUC:     orderUC,
		TransferUC:  transferUC,
		ReceiptUC:   receiptUC,
		PDFUC:       pdfUC,
		ExcelUC:     excelUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/ventas-api/internal/application/inventory"
	appsales "github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/ventas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ventas-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/ventas-api/internal/interfaces/http"
	"github.com/jhoicas/ventas-api/pkg/config"
	"github.com/jhoicas/ventas-api/pkg/logger"
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

	customerRepo := postgres.NewCustomerRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	salesRepo := postgres.NewSalesTransactionRepository(pool)
	salesItemRepo := postgres.NewSalesTransactionItemRepository(pool)
	returnRepo := postgres.NewSalesReturnRepository(pool)
	returnItemRepo := postgres.NewSalesReturnItemRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockUC := inventory.NewStockUseCase(stockRepo)

	createUC := appsales.NewCreateTransactionUseCase(
		txRunner, stockUC, customerRepo, itemRepo, warehouseRepo, salesRepo,
	)
	confirmUC := appsales.NewConfirmOrderUseCase(txRunner, stockUC)
	fulfillmentUC := appsales.NewFulfillmentUseCase(txRunner, stockUC)
	paymentUC := appsales.NewUpdatePaymentUseCase(txRunner)
	itemPriceUC := appsales.NewUpdateItemPriceUseCase(txRunner)
	processReturnUC := appsales.NewProcessReturnUseCase(txRunner, stockUC)
	approveReturnUC := appsales.NewApproveReturnUseCase(returnRepo, returnItemRepo)
	queryUC := appsales.NewQueryUseCase(
		salesRepo, salesItemRepo, returnRepo, returnItemRepo, customerRepo,
	)

	// PDF: representación gráfica de la orden de venta
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	orderPDFUC := appsales.NewGenerateOrderPDFUseCase(
		salesRepo, salesItemRepo, customerRepo, itemRepo, pdfGenerator,
	)

	customerUC := usecase.NewCustomerUseCase(customerRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	itemUC := usecase.NewItemUseCase(itemRepo)

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
		SalesHandler: httpRouter.NewSalesHandler(
			createUC, confirmUC, fulfillmentUC, paymentUC, itemPriceUC, queryUC, orderPDFUC,
		),
		ReturnHandler:    httpRouter.NewReturnHandler(processReturnUC, approveReturnUC, queryUC),
		CustomerHandler:  httpRouter.NewCustomerHandler(customerUC),
		WarehouseHandler: httpRouter.NewWarehouseHandler(warehouseUC),
		ItemHandler:      httpRouter.NewItemHandler(itemUC),
		StockHandler:     httpRouter.NewStockHandler(stockUC, movementRepo),
		JWTSecret:        cfg.JWT.Secret,
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

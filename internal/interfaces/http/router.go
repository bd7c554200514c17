package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SalesHandler     *SalesHandler
	ReturnHandler    *ReturnHandler
	CustomerHandler  *CustomerHandler
	WarehouseHandler *WarehouseHandler
	ItemHandler      *ItemHandler
	StockHandler     *StockHandler
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Órdenes de venta
	sales := protected.Group("/sales")
	sales.Post("/", deps.SalesHandler.Create)
	sales.Get("/", deps.SalesHandler.List)
	sales.Get("/summary", deps.SalesHandler.Summary)
	sales.Get("/overdue", deps.SalesHandler.Overdue)
	sales.Get("/:id", deps.SalesHandler.GetByID)
	sales.Get("/:id/pdf", deps.SalesHandler.PDF)
	sales.Post("/:id/confirm", deps.SalesHandler.Confirm)
	sales.Post("/:id/process", deps.SalesHandler.StartProcessing)
	sales.Post("/:id/ship", deps.SalesHandler.Ship)
	sales.Post("/:id/deliver", deps.SalesHandler.Deliver)
	sales.Post("/:id/cancel", deps.SalesHandler.Cancel)
	sales.Put("/:id/payment", deps.SalesHandler.UpdatePayment)
	sales.Put("/:id/items/:itemId/price", deps.SalesHandler.UpdateItemPrice)

	// Devoluciones
	sales.Post("/:id/returns", deps.ReturnHandler.Process)
	sales.Get("/:id/returns", deps.ReturnHandler.ListByTransaction)
	returns := protected.Group("/returns")
	returns.Get("/summary", deps.ReturnHandler.Summary)
	returns.Get("/:id", deps.ReturnHandler.GetByID)
	returns.Put("/:id", deps.ReturnHandler.Update)
	returns.Post("/:id/approve", RequireRole("admin", "supervisor"), deps.ReturnHandler.Approve)

	// Clientes
	customers := protected.Group("/customers")
	customers.Post("/", deps.CustomerHandler.Create)
	customers.Get("/", deps.CustomerHandler.List)
	customers.Get("/:id", deps.CustomerHandler.GetByID)
	customers.Get("/:id/balance", deps.SalesHandler.OutstandingBalance)
	customers.Put("/:id", deps.CustomerHandler.Update)
	customers.Delete("/:id", RequireRole("admin"), deps.CustomerHandler.Deactivate)

	// Bodegas
	warehouses := protected.Group("/warehouses")
	warehouses.Post("/", deps.WarehouseHandler.Create)
	warehouses.Get("/", deps.WarehouseHandler.List)
	warehouses.Get("/:id", deps.WarehouseHandler.GetByID)
	warehouses.Put("/:id", deps.WarehouseHandler.Update)
	warehouses.Delete("/:id", RequireRole("admin"), deps.WarehouseHandler.Deactivate)

	// Maestro de ítems
	items := protected.Group("/items")
	items.Post("/", deps.ItemHandler.Create)
	items.Get("/", deps.ItemHandler.List)
	items.Get("/:id", deps.ItemHandler.GetByID)
	items.Put("/:id", deps.ItemHandler.Update)
	items.Delete("/:id", RequireRole("admin"), deps.ItemHandler.Deactivate)

	// Existencias y movimientos
	stock := protected.Group("/stock")
	stock.Get("/", deps.StockHandler.Available)
	stock.Get("/movements", deps.StockHandler.Movements)
	stock.Get("/movements/:reference", deps.StockHandler.MovementsByReference)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// StockHandler consultas de existencias y del libro de movimientos (protegido).
type StockHandler struct {
	stockUC *inventory.StockUseCase
	movRepo repository.StockMovementRepository
}

// NewStockHandler construye el handler.
func NewStockHandler(stockUC *inventory.StockUseCase, movRepo repository.StockMovementRepository) *StockHandler {
	return &StockHandler{stockUC: stockUC, movRepo: movRepo}
}

// Available stock disponible de un ítem en una bodega.
// GET /api/stock?item_id&warehouse_id
func (h *StockHandler) Available(c *fiber.Ctx) error {
	itemID := c.Query("item_id")
	warehouseID := c.Query("warehouse_id")
	if itemID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id y warehouse_id son requeridos"})
	}
	qty, err := h.stockUC.AvailableStock(itemID, warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"item_id": itemID, "warehouse_id": warehouseID, "quantity": qty})
}

// Movements movimientos de un ítem, opcionalmente acotados por fecha.
// GET /api/stock/movements?item_id&from&to&limit&offset
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	itemID := c.Query("item_id")
	if itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id es requerido"})
	}
	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido"})
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido"})
	}
	limit, offset := pageParams(c)
	out, err := h.movRepo.ListByItem(itemID, from, to, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MovementsByReference movimientos asociados a una orden o devolución.
// GET /api/stock/movements/:reference
func (h *StockHandler) MovementsByReference(c *fiber.Ctx) error {
	out, err := h.movRepo.ListByReference(c.Params("reference"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

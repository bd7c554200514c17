package http

import (
	"github.com/gofiber/fiber/v2"

	appsales "github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/application/dto"
)

// ReturnHandler maneja las peticiones HTTP de devoluciones (protegido).
type ReturnHandler struct {
	processUC *appsales.ProcessReturnUseCase
	approveUC *appsales.ApproveReturnUseCase
	queryUC   *appsales.QueryUseCase
}

// NewReturnHandler construye el handler.
func NewReturnHandler(
	processUC *appsales.ProcessReturnUseCase,
	approveUC *appsales.ApproveReturnUseCase,
	queryUC *appsales.QueryUseCase,
) *ReturnHandler {
	return &ReturnHandler{processUC: processUC, approveUC: approveUC, queryUC: queryUC}
}

// Process crea una devolución contra una orden despachada o entregada.
// POST /api/sales/:id/returns
func (h *ReturnHandler) Process(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ProcessReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.processUC.Execute(c.Context(), userID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene una devolución (ID interno o SRT-…) con sus líneas.
// GET /api/returns/:id
func (h *ReturnHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.queryUC.GetReturn(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByTransaction devoluciones de una orden.
// GET /api/sales/:id/returns
func (h *ReturnHandler) ListByTransaction(c *fiber.Ctx) error {
	out, err := h.queryUC.ListReturnsByTransaction(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Approve aprueba una devolución (una sola vez, sin reversa).
// POST /api/returns/:id/approve
func (h *ReturnHandler) Approve(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.approveUC.Execute(c.Context(), userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update cambia razón o cargo por reposición de una devolución sin aprobar.
// PUT /api/returns/:id
func (h *ReturnHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.approveUC.UpdateDetails(c.Context(), c.Params("id"), in.Reason, in.RestockingFeePercentage)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary agregados de devoluciones del período.
// GET /api/returns/summary?from&to
func (h *ReturnHandler) Summary(c *fiber.Ctx) error {
	from, to, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.queryUC.ReturnSummary(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appsales "github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// SalesHandler maneja las peticiones HTTP del ciclo de vida de órdenes de venta (protegido).
type SalesHandler struct {
	createUC      *appsales.CreateTransactionUseCase
	confirmUC     *appsales.ConfirmOrderUseCase
	fulfillmentUC *appsales.FulfillmentUseCase
	paymentUC     *appsales.UpdatePaymentUseCase
	itemPriceUC   *appsales.UpdateItemPriceUseCase
	queryUC       *appsales.QueryUseCase
	pdfUC         *appsales.GenerateOrderPDFUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(
	createUC *appsales.CreateTransactionUseCase,
	confirmUC *appsales.ConfirmOrderUseCase,
	fulfillmentUC *appsales.FulfillmentUseCase,
	paymentUC *appsales.UpdatePaymentUseCase,
	itemPriceUC *appsales.UpdateItemPriceUseCase,
	queryUC *appsales.QueryUseCase,
	pdfUC *appsales.GenerateOrderPDFUseCase,
) *SalesHandler {
	return &SalesHandler{
		createUC:      createUC,
		confirmUC:     confirmUC,
		fulfillmentUC: fulfillmentUC,
		paymentUC:     paymentUC,
		itemPriceUC:   itemPriceUC,
		queryUC:       queryUC,
		pdfUC:         pdfUC,
	}
}

// Create crea una orden de venta en DRAFT.
// POST /api/sales
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateSalesTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.createUC.Execute(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene una orden (ID interno o SLS-…) con sus líneas.
// GET /api/sales/:id
func (h *SalesHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.queryUC.GetTransaction(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List lista órdenes con filtros opcionales.
// GET /api/sales?customer_id&status&payment_status&from&to&limit&offset
func (h *SalesHandler) List(c *fiber.Ctx) error {
	status, paymentStatus, err := appsales.StatusFilter(c.Query("status"), c.Query("payment_status"))
	if err != nil {
		return respondError(c, err)
	}
	filter := repository.TransactionFilter{
		CustomerID:    c.Query("customer_id"),
		Status:        status,
		PaymentStatus: paymentStatus,
		Limit:         c.QueryInt("limit", 50),
		Offset:        c.QueryInt("offset", 0),
	}
	if from, err := parseDateQuery(c.Query("from")); err == nil && from != nil {
		filter.From = from
	}
	if to, err := parseDateQuery(c.Query("to")); err == nil && to != nil {
		filter.To = to
	}
	out, err := h.queryUC.ListTransactions(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Confirm confirma una orden DRAFT y compromete el inventario.
// POST /api/sales/:id/confirm
func (h *SalesHandler) Confirm(c *fiber.Ctx) error {
	userID := GetUserID(c)
	out, err := h.confirmUC.Execute(c.Context(), userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// StartProcessing pasa la orden a PROCESSING.
// POST /api/sales/:id/process
func (h *SalesHandler) StartProcessing(c *fiber.Ctx) error {
	out, err := h.fulfillmentUC.StartProcessing(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Ship marca la orden como despachada.
// POST /api/sales/:id/ship
func (h *SalesHandler) Ship(c *fiber.Ctx) error {
	out, err := h.fulfillmentUC.Ship(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deliver marca la orden como entregada.
// POST /api/sales/:id/deliver
func (h *SalesHandler) Deliver(c *fiber.Ctx) error {
	var in dto.DeliverRequest
	_ = c.BodyParser(&in) // cuerpo opcional
	out, err := h.fulfillmentUC.Deliver(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel cancela la orden y libera el inventario comprometido.
// POST /api/sales/:id/cancel
func (h *SalesHandler) Cancel(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in struct {
		Reason string `json:"reason"`
	}
	_ = c.BodyParser(&in)
	out, err := h.fulfillmentUC.Cancel(c.Context(), userID, c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdatePayment registra el monto total pagado de la orden.
// PUT /api/sales/:id/payment
func (h *SalesHandler) UpdatePayment(c *fiber.Ctx) error {
	var in dto.UpdatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.paymentUC.Execute(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateItemPrice cambia el precio de una línea (solo órdenes DRAFT).
// PUT /api/sales/:id/items/:itemId/price
func (h *SalesHandler) UpdateItemPrice(c *fiber.Ctx) error {
	var in dto.UpdateItemPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.itemPriceUC.Execute(c.Context(), c.Params("id"), c.Params("itemId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PDF devuelve la representación gráfica de la orden.
// GET /api/sales/:id/pdf
func (h *SalesHandler) PDF(c *fiber.Ctx) error {
	bytes, err := h.pdfUC.Execute(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(bytes)
}

// Summary agregados de ventas del período.
// GET /api/sales/summary?from&to
func (h *SalesHandler) Summary(c *fiber.Ctx) error {
	from, to, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.queryUC.SalesSummary(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// OutstandingBalance saldo pendiente total de un cliente.
// GET /api/customers/:id/balance
func (h *SalesHandler) OutstandingBalance(c *fiber.Ctx) error {
	balance, err := h.queryUC.OutstandingBalance(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"customer_id": c.Params("id"), "outstanding_balance": balance})
}

// Overdue lista órdenes con pagos vencidos.
// GET /api/sales/overdue
func (h *SalesHandler) Overdue(c *fiber.Ctx) error {
	out, err := h.queryUC.OverdueTransactions(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// parseDateQuery acepta fechas RFC3339 o yyyy-mm-dd. Vacío devuelve nil sin error.
func parseDateQuery(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parsePeriod(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, -1, 0)
	to := now
	if p, err := parseDateQuery(c.Query("from")); err != nil {
		return time.Time{}, time.Time{}, err
	} else if p != nil {
		from = *p
	}
	if p, err := parseDateQuery(c.Query("to")); err != nil {
		return time.Time{}, time.Time{}, err
	} else if p != nil {
		to = *p
	}
	return from, to, nil
}

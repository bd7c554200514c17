package sales_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/sales"
)

// createDraft crea una orden básica de 5 unidades y devuelve su ID interno.
func createDraft(t *testing.T, w *world) string {
	t.Helper()
	resp, err := w.createUC.Execute(context.Background(), "user-1", basicOrderRequest())
	require.NoError(t, err)
	return resp.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Confirmación: aquí (y solo aquí) se compromete el inventario.
// ──────────────────────────────────────────────────────────────────────────────

func TestConfirmOrder_CompromenteStock(t *testing.T) {
	w := newWorld()
	w.seedBasics()
	id := createDraft(t, w)

	resp, err := w.confirmUC.Execute(context.Background(), "user-1", id)
	require.NoError(t, err)

	assert.Equal(t, "CONFIRMED", resp.Status)
	assert.Equal(t, 95, w.db.stockQty("inv-1", "wh-1"), "100 - 5 vendidas")

	require.Len(t, w.db.movements, 1)
	mov := w.db.movements[0]
	assert.Equal(t, entity.MovementTypeSALE, mov.Type)
	assert.Equal(t, -5, mov.Quantity, "las salidas se registran en negativo")
	assert.Equal(t, "SLS-AAA0001", mov.Reference)
}

func TestConfirmOrder_DobleConfirmacionFalla(t *testing.T) {
	w := newWorld()
	w.seedBasics()
	id := createDraft(t, w)

	_, err := w.confirmUC.Execute(context.Background(), "user-1", id)
	require.NoError(t, err)

	_, err = w.confirmUC.Execute(context.Background(), "user-1", id)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.Equal(t, 95, w.db.stockQty("inv-1", "wh-1"), "el stock no se descuenta dos veces")
}

// El stock se relee al confirmar: si otro proceso lo agotó después de crear
// la orden, la confirmación falla.
func TestConfirmOrder_StockAgotadoEntreCrearYConfirmar(t *testing.T) {
	w := newWorld()
	w.seedBasics()
	id := createDraft(t, w)

	w.db.setStock("inv-1", "wh-1", 2)

	_, err := w.confirmUC.Execute(context.Background(), "user-1", id)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestConfirmOrder_NoExiste(t *testing.T) {
	w := newWorld()
	w.seedBasics()
	_, err := w.confirmUC.Execute(context.Background(), "user-1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Despacho y entrega
// ──────────────────────────────────────────────────────────────────────────────

func TestFulfillment_CicloCompleto(t *testing.T) {
	w := newWorld()
	w.seedBasics()
	ctx := context.Background()
	id := createDraft(t, w)

	_, err := w.confirmUC.Execute(ctx, "user-1", id)
	require.NoError(t, err)

	resp, err := w.fulfillUC.StartProcessing(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "PROCESSING", resp.Status)

	resp, err = w.fulfillUC.Ship(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "SHIPPED", resp.Status)

	resp, err = w.fulfillUC.Deliver(ctx, id, dto.DeliverRequest{})
	require.NoError(t, err)
	assert.Equal(t, "DELIVERED", resp.Status)
	assert.NotNil(t, resp.DeliveryDate)
}

func TestFulfillment_SaltarEtapasFalla(t *testing.T) {
	w := newWorld()
	w.seedBasics()
	ctx := context.Background()
	id := createDraft(t, w)

	// DRAFT no puede pasar directo a PROCESSING ni a SHIPPED.
	_, err := w.fulfillUC.StartProcessing(ctx, id)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	_, err = w.fulfillUC.Ship(ctx, id)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	assert.Equal(t, sales.StatusDRAFT, w.db.orders[id].Status, "el estado persistido no cambia")
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelación
// ──────────────────────────────────────────────────────────────────────────────

// Cancelar una orden confirmada devuelve el inventario comprometido.
func TestCancel_DespuesDeConfirmarReintegraStock(t *testing.T) {
	w := newWorld()
	w.seedBasics()
	ctx := context.Background()
	id := createDraft(t, w)

	_, err := w.confirmUC.Execute(ctx, "user-1", id)
	require.NoError(t, err)
	require.Equal(t, 95, w.db.stockQty("inv-1", "wh-1"))

	resp, err := w.fulfillUC.Cancel(ctx, "user-1", id, "cliente desistió")
	require.NoError(t, err)

	assert.Equal(t, "CANCELLED", resp.Status)
	assert.Equal(t, 100, w.db.stockQty("inv-1", "wh-1"), "el stock vuelve a su nivel original")
	assert.Contains(t, w.db.orders[id].Notes, "Cancelación: cliente desistió")

	// Un SALE de salida y un RETURN de reintegro.
	require.Len(t, w.db.movements, 2)
	assert.Equal(t, entity.MovementTypeRETURN, w.db.movements[1].Type)
	assert.Equal(t, 5, w.db.movements[1].Quantity)
}

// Cancelar en DRAFT no toca inventario: nunca se comprometió.
func TestCancel_EnDraftNoTocaStock(t *testing.T) {
	w := newWorld()
	w.seedBasics()
	id := createDraft(t, w)

	resp, err := w.fulfillUC.Cancel(context.Background(), "user-1", id, "")
	require.NoError(t, err)

	assert.Equal(t, "CANCELLED", resp.Status)
	assert.Equal(t, 100, w.db.stockQty("inv-1", "wh-1"))
	assert.Empty(t, w.db.movements)
}

func TestCancel_DespachadaFalla(t *testing.T) {
	w := newWorld()
	w.seedBasics()
	ctx := context.Background()
	id := createDraft(t, w)

	_, err := w.confirmUC.Execute(ctx, "user-1", id)
	require.NoError(t, err)
	_, err = w.fulfillUC.StartProcessing(ctx, id)
	require.NoError(t, err)
	_, err = w.fulfillUC.Ship(ctx, id)
	require.NoError(t, err)

	_, err = w.fulfillUC.Cancel(ctx, "user-1", id, "tarde")
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagos
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdatePayment_ParcialYTotal(t *testing.T) {
	w := newWorld()
	w.seedBasics()
	ctx := context.Background()
	id := createDraft(t, w) // grand_total 595

	resp, err := w.paymentUC.Execute(ctx, id, dto.UpdatePaymentRequest{AmountPaid: dec("200")})
	require.NoError(t, err)
	assert.Equal(t, "PARTIAL", resp.PaymentStatus)
	assert.True(t, dec("395").Equal(resp.BalanceDue))

	resp, err = w.paymentUC.Execute(ctx, id, dto.UpdatePaymentRequest{AmountPaid: dec("595")})
	require.NoError(t, err)
	assert.Equal(t, "PAID", resp.PaymentStatus)
	assert.True(t, resp.BalanceDue.IsZero())
}

// El sobrepago se rechaza en la capa de aplicación.
func TestUpdatePayment_SobrepagoRechazado(t *testing.T) {
	w := newWorld()
	w.seedBasics()
	id := createDraft(t, w)

	_, err := w.paymentUC.Execute(context.Background(), id, dto.UpdatePaymentRequest{AmountPaid: dec("595.01")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, w.db.orders[id].AmountPaid.IsZero())
}

// Cancelar una orden con pagos la deja REFUNDED.
func TestCancel_ConPagosQuedaRefunded(t *testing.T) {
	w := newWorld()
	w.seedBasics()
	ctx := context.Background()
	id := createDraft(t, w)

	_, err := w.paymentUC.Execute(ctx, id, dto.UpdatePaymentRequest{AmountPaid: dec("595")})
	require.NoError(t, err)

	resp, err := w.fulfillUC.Cancel(ctx, "user-1", id, "pagada por error")
	require.NoError(t, err)
	assert.Equal(t, "REFUNDED", resp.PaymentStatus)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cambio de precio de línea (solo DRAFT)
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateItemPrice_RecalculaTotales(t *testing.T) {
	w := newWorld()
	w.seedBasics()
	ctx := context.Background()

	created, err := w.createUC.Execute(ctx, "user-1", basicOrderRequest())
	require.NoError(t, err)
	itemID := created.Items[0].ID

	resp, err := w.priceUC.Execute(ctx, created.ID, itemID, dto.UpdateItemPriceRequest{UnitPrice: dec("120")})
	require.NoError(t, err)

	// 5 × 120 = 600 + 19% = 714.
	assert.True(t, dec("600").Equal(resp.Subtotal))
	assert.True(t, dec("714").Equal(resp.GrandTotal))
	assert.True(t, dec("120").Equal(w.db.orderItems[itemID].UnitPrice), "la línea persistida cambia")
}

func TestUpdateItemPrice_FueraDeDraftFalla(t *testing.T) {
	w := newWorld()
	w.seedBasics()
	ctx := context.Background()

	created, err := w.createUC.Execute(ctx, "user-1", basicOrderRequest())
	require.NoError(t, err)
	_, err = w.confirmUC.Execute(ctx, "user-1", created.ID)
	require.NoError(t, err)

	_, err = w.priceUC.Execute(ctx, created.ID, created.Items[0].ID, dto.UpdateItemPriceRequest{UnitPrice: dec("120")})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

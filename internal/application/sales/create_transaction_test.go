package sales_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
)

func basicOrderRequest() dto.CreateSalesTransactionRequest {
	return dto.CreateSalesTransactionRequest{
		CustomerID: "cust-1",
		Items: []dto.SalesItemRequest{
			{ItemID: "inv-1", WarehouseID: "wh-1", Quantity: 5},
		},
	}
}

func TestCreateTransaction_HappyPath(t *testing.T) {
	w := newWorld()
	w.seedBasics()

	resp, err := w.createUC.Execute(context.Background(), "user-1", basicOrderRequest())
	require.NoError(t, err)

	assert.Equal(t, "SLS-AAA0001", resp.TransactionID)
	assert.True(t, strings.HasPrefix(resp.InvoiceNumber, "INV-"))
	assert.Equal(t, "DRAFT", resp.Status)
	assert.Equal(t, "PENDING", resp.PaymentStatus)
	assert.Equal(t, "Comercial Andina", resp.CustomerName)

	// 5 × 100 con 19% de impuesto, sin descuento ni envío.
	assert.True(t, dec("500").Equal(resp.Subtotal), "subtotal: %s", resp.Subtotal)
	assert.True(t, dec("95").Equal(resp.TaxAmount))
	assert.True(t, dec("595").Equal(resp.GrandTotal))
	assert.True(t, dec("595").Equal(resp.BalanceDue))

	require.Len(t, resp.Items, 1)
	assert.True(t, dec("100").Equal(resp.Items[0].UnitPrice), "precio tomado del maestro")

	// Crear NO compromete inventario: ni movimientos ni descuento de stock.
	assert.Equal(t, 100, w.db.stockQty("inv-1", "wh-1"))
	assert.Empty(t, w.db.movements)

	// La dirección del cliente se usa como fallback de envío y facturación.
	stored := w.db.orders[resp.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "Calle 10 # 5-31", stored.ShippingAddress)
	assert.Equal(t, "Calle 10 # 5-31", stored.BillingAddress)
}

func TestCreateTransaction_SecuenciaConsecutiva(t *testing.T) {
	w := newWorld()
	w.seedBasics()

	first, err := w.createUC.Execute(context.Background(), "user-1", basicOrderRequest())
	require.NoError(t, err)
	second, err := w.createUC.Execute(context.Background(), "user-1", basicOrderRequest())
	require.NoError(t, err)

	assert.Equal(t, "SLS-AAA0001", first.TransactionID)
	assert.Equal(t, "SLS-AAA0002", second.TransactionID)
}

// Sin descuento explícito, la política de volumen entra sola: 10+ → 5%.
func TestCreateTransaction_DescuentoPorVolumen(t *testing.T) {
	w := newWorld()
	w.seedBasics()

	in := basicOrderRequest()
	in.Items[0].Quantity = 10

	resp, err := w.createUC.Execute(context.Background(), "user-1", in)
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	line := resp.Items[0]
	assert.True(t, dec("5").Equal(line.DiscountPercentage))
	assert.True(t, dec("50").Equal(line.DiscountAmount), "5%% de 1000")
	assert.True(t, dec("950").Equal(line.Subtotal))

	// A nivel de orden el subtotal es bruto y el descuento va aparte.
	assert.True(t, dec("1000").Equal(resp.Subtotal))
	assert.True(t, dec("50").Equal(resp.DiscountAmount))
}

// Un descuento explícito del caller (incluso en monto fijo) desactiva la política.
func TestCreateTransaction_DescuentoExplicitoDesactivaVolumen(t *testing.T) {
	w := newWorld()
	w.seedBasics()

	in := basicOrderRequest()
	in.Items[0].Quantity = 50
	in.Items[0].DiscountAmount = dec("1")

	resp, err := w.createUC.Execute(context.Background(), "user-1", in)
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].DiscountPercentage.IsZero())
	assert.True(t, dec("1").Equal(resp.Items[0].DiscountAmount))
}

func TestCreateTransaction_PrecioExplicitoSobreMaestro(t *testing.T) {
	w := newWorld()
	w.seedBasics()

	price := dec("80")
	in := basicOrderRequest()
	in.Items[0].UnitPrice = &price

	resp, err := w.createUC.Execute(context.Background(), "user-1", in)
	require.NoError(t, err)
	assert.True(t, dec("80").Equal(resp.Items[0].UnitPrice))

	// Precio cero equivale a no enviar precio: manda el maestro.
	zero := decimal.Zero
	in = basicOrderRequest()
	in.Items[0].UnitPrice = &zero
	resp, err = w.createUC.Execute(context.Background(), "user-1", in)
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(resp.Items[0].UnitPrice))
}

func TestCreateTransaction_StockInsuficiente(t *testing.T) {
	w := newWorld()
	w.seedBasics()
	w.db.setStock("inv-1", "wh-1", 3)

	_, err := w.createUC.Execute(context.Background(), "user-1", basicOrderRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	var stockErr *domain.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Available)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Empty(t, w.db.orders, "nada debe persistirse")
}

func TestCreateTransaction_Validaciones(t *testing.T) {
	w := newWorld()
	w.seedBasics()
	ctx := context.Background()

	in := basicOrderRequest()
	in.CustomerID = "no-existe"
	_, err := w.createUC.Execute(ctx, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	in = basicOrderRequest()
	in.Items[0].ItemID = "no-existe"
	_, err = w.createUC.Execute(ctx, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	in = basicOrderRequest()
	in.Items[0].WarehouseID = "no-existe"
	_, err = w.createUC.Execute(ctx, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	in = basicOrderRequest()
	in.Items = nil
	_, err = w.createUC.Execute(ctx, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = basicOrderRequest()
	in.Items[0].Quantity = 0
	_, err = w.createUC.Execute(ctx, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = basicOrderRequest()
	in.PaymentTerms = "NET_7"
	_, err = w.createUC.Execute(ctx, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = basicOrderRequest()
	in.ShippingAmount = dec("-1")
	_, err = w.createUC.Execute(ctx, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = basicOrderRequest()
	in.Items[0].SerialNumbers = []string{"SN-1", "SN-2"} // cantidad 5
	_, err = w.createUC.Execute(ctx, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Límite de crédito
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateTransaction_LimiteDeCreditoExcedido(t *testing.T) {
	w := newWorld()
	w.seedBasics()
	w.db.customers["cust-1"].CreditLimit = dec("400")

	// 5 × 100 = 500 bruto > 400 de límite, sin saldo previo.
	_, err := w.createUC.Execute(context.Background(), "user-1", basicOrderRequest())
	assert.ErrorIs(t, err, domain.ErrCreditLimitExceeded)
}

func TestCreateTransaction_LimiteConSaldoPendiente(t *testing.T) {
	w := newWorld()
	w.seedBasics()
	w.db.customers["cust-1"].CreditLimit = dec("2000")

	// Primera orden deja saldo pendiente de 595.
	_, err := w.createUC.Execute(context.Background(), "user-1", basicOrderRequest())
	require.NoError(t, err)

	// 595 pendientes + 1500 proyectados > 2000.
	in := basicOrderRequest()
	in.Items[0].Quantity = 15
	_, err = w.createUC.Execute(context.Background(), "user-1", in)
	assert.ErrorIs(t, err, domain.ErrCreditLimitExceeded)
}

// Límite cero significa crédito ilimitado, no crédito denegado.
func TestCreateTransaction_LimiteCeroEsIlimitado(t *testing.T) {
	w := newWorld()
	w.seedBasics()
	w.db.customers["cust-1"].CreditLimit = decimal.Zero

	in := basicOrderRequest()
	in.Items[0].Quantity = 90
	_, err := w.createUC.Execute(context.Background(), "user-1", in)
	assert.NoError(t, err)
}

// PREPAID no extiende crédito: el chequeo se omite por completo.
func TestCreateTransaction_PrepaidOmiteChequeoDeCredito(t *testing.T) {
	w := newWorld()
	w.seedBasics()
	w.db.customers["cust-1"].CreditLimit = dec("100")

	in := basicOrderRequest()
	in.PaymentTerms = "PREPAID"
	_, err := w.createUC.Execute(context.Background(), "user-1", in)
	assert.NoError(t, err)
}

package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/sales"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newDraftOrder() *entity.SalesTransaction {
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	tx := &entity.SalesTransaction{
		ID:            "tx-1",
		TransactionID: "SLS-AAA0001",
		CustomerID:    "cust-1",
		OrderDate:     now,
		Status:        sales.StatusDRAFT,
		PaymentStatus: sales.PaymentPENDING,
		PaymentTerms:  sales.TermsNET30,
		GrandTotal:    dec("1000"),
		AmountPaid:    decimal.Zero,
		IsActive:      true,
		CreatedAt:     now,
	}
	tx.CalculatePaymentDueDate()
	return tx
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesTransaction_CicloCompleto(t *testing.T) {
	tx := newDraftOrder()

	require.NoError(t, tx.ConfirmOrder())
	assert.Equal(t, sales.StatusCONFIRMED, tx.Status)

	require.NoError(t, tx.StartProcessing())
	require.NoError(t, tx.MarkAsShipped())

	delivered := time.Date(2024, 5, 15, 16, 30, 0, 0, time.UTC)
	require.NoError(t, tx.MarkAsDelivered(delivered))
	assert.Equal(t, sales.StatusDELIVERED, tx.Status)
	require.NotNil(t, tx.DeliveryDate)
	assert.Equal(t, delivered, *tx.DeliveryDate)
}

func TestSalesTransaction_TransicionesInvalidas(t *testing.T) {
	tx := newDraftOrder()

	// Saltarse CONFIRMED no está permitido.
	err := tx.StartProcessing()
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.Equal(t, sales.StatusDRAFT, tx.Status, "un error no debe mutar el estado")

	err = tx.MarkAsShipped()
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	// Una orden entregada es terminal.
	tx.Status = sales.StatusDELIVERED
	assert.ErrorIs(t, tx.ConfirmOrder(), domain.ErrInvalidStateTransition)
	assert.ErrorIs(t, tx.CancelOrder(), domain.ErrInvalidStateTransition)
}

func TestSalesTransaction_CancelarSinPagos(t *testing.T) {
	tx := newDraftOrder()
	require.NoError(t, tx.CancelOrder())

	assert.Equal(t, sales.StatusCANCELLED, tx.Status)
	assert.Equal(t, sales.PaymentPENDING, tx.PaymentStatus,
		"sin pagos no hay nada que reembolsar")
}

// Cancelar una orden con pagos registrados marca el pago como REFUNDED.
func TestSalesTransaction_CancelarConPagos(t *testing.T) {
	tx := newDraftOrder()
	require.NoError(t, tx.ConfirmOrder())
	require.NoError(t, tx.UpdatePayment(dec("400"), "", time.Now()))
	require.Equal(t, sales.PaymentPARTIAL, tx.PaymentStatus)

	require.NoError(t, tx.CancelOrder())
	assert.Equal(t, sales.StatusCANCELLED, tx.Status)
	assert.Equal(t, sales.PaymentREFUNDED, tx.PaymentStatus)
}

func TestSalesTransaction_CancelarDespachadaFalla(t *testing.T) {
	tx := newDraftOrder()
	tx.Status = sales.StatusSHIPPED
	assert.ErrorIs(t, tx.CancelOrder(), domain.ErrInvalidStateTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagos
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesTransaction_UpdatePayment_DerivaEstado(t *testing.T) {
	tx := newDraftOrder()
	now := tx.OrderDate.AddDate(0, 0, 1) // dentro del plazo NET_30

	require.NoError(t, tx.UpdatePayment(dec("400"), "", now))
	assert.Equal(t, sales.PaymentPARTIAL, tx.PaymentStatus)
	assert.True(t, dec("600").Equal(tx.BalanceDue()))

	// El monto es total acumulado, no incremental.
	require.NoError(t, tx.UpdatePayment(dec("1000"), "", now))
	assert.Equal(t, sales.PaymentPAID, tx.PaymentStatus)
	assert.True(t, tx.BalanceDue().IsZero())
	assert.True(t, tx.IsFullyPaid())
}

func TestSalesTransaction_UpdatePayment_VencidaPasaAOverdue(t *testing.T) {
	tx := newDraftOrder()
	afterDue := tx.PaymentDueDate.AddDate(0, 0, 5)

	require.NoError(t, tx.UpdatePayment(dec("100"), "", afterDue))
	assert.Equal(t, sales.PaymentOVERDUE, tx.PaymentStatus,
		"pago parcial pasada la fecha de vencimiento es OVERDUE")
	assert.True(t, tx.IsOverdue(afterDue))
	assert.Equal(t, 5, tx.DaysOverdue(afterDue))
}

func TestSalesTransaction_UpdatePayment_NegativoFalla(t *testing.T) {
	tx := newDraftOrder()
	err := tx.UpdatePayment(dec("-1"), "", time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, tx.AmountPaid.IsZero(), "un error no debe mutar el monto")
}

func TestSalesTransaction_UpdatePayment_AnexaNotaConTimestamp(t *testing.T) {
	tx := newDraftOrder()
	tx.Notes = "nota previa"
	now := time.Date(2024, 5, 12, 14, 30, 0, 0, time.UTC)

	require.NoError(t, tx.UpdatePayment(dec("250"), "abono transferencia", now))

	assert.Equal(t, "nota previa\n[2024-05-12 14:30:00] Payment Update: abono transferencia", tx.Notes)

	// Sin notas no se anexa nada.
	require.NoError(t, tx.UpdatePayment(dec("300"), "", now))
	assert.NotContains(t, tx.Notes, "\n\n")
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales y vencimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesTransaction_CalculateTotals(t *testing.T) {
	tx := newDraftOrder()
	tx.ShippingAmount = dec("25")

	tx.CalculateTotals(dec("1000"), dec("180.50"), dec("50"))

	assert.True(t, dec("1000").Equal(tx.Subtotal))
	assert.True(t, dec("180.50").Equal(tx.TaxAmount))
	assert.True(t, dec("50").Equal(tx.DiscountAmount))
	assert.True(t, dec("1155.50").Equal(tx.GrandTotal),
		"grand_total = subtotal - descuento + impuesto + envío")
}

func TestSalesTransaction_PaymentDueDate(t *testing.T) {
	tx := newDraftOrder()
	require.NotNil(t, tx.PaymentDueDate)
	assert.Equal(t, tx.OrderDate.AddDate(0, 0, 30), *tx.PaymentDueDate)

	// Términos inmediatos vencen el mismo día.
	tx.PaymentTerms = sales.TermsCOD
	tx.CalculatePaymentDueDate()
	assert.Equal(t, tx.OrderDate, *tx.PaymentDueDate)
}

func TestSalesTransaction_CanProcessReturn(t *testing.T) {
	tx := newDraftOrder()
	assert.False(t, tx.CanProcessReturn())

	tx.Status = sales.StatusSHIPPED
	assert.True(t, tx.CanProcessReturn())

	tx.Status = sales.StatusDELIVERED
	assert.True(t, tx.CanProcessReturn())
}

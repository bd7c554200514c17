package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus estado del cobro de una orden de venta.
// No es una máquina lineal: se deriva de amount_paid vs grand_total cada vez
// que se aplica un pago, con override a OVERDUE si está impaga y vencida, y a
// REFUNDED cuando las devoluciones acumulan el total.
type PaymentStatus string

const (
	PaymentPENDING  PaymentStatus = "PENDING"  // sin pagos
	PaymentPARTIAL  PaymentStatus = "PARTIAL"  // pago parcial
	PaymentPAID     PaymentStatus = "PAID"     // pagada en su totalidad
	PaymentOVERDUE  PaymentStatus = "OVERDUE"  // impaga y pasada la fecha de vencimiento
	PaymentREFUNDED PaymentStatus = "REFUNDED" // reembolsada por devoluciones
)

// IsValid indica si el valor es un estado de pago conocido.
func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPENDING, PaymentPARTIAL, PaymentPAID, PaymentOVERDUE, PaymentREFUNDED:
		return true
	}
	return false
}

// IsUnpaid PENDING, PARTIAL y OVERDUE cuentan como impagas.
func (p PaymentStatus) IsUnpaid() bool {
	return p == PaymentPENDING || p == PaymentPARTIAL || p == PaymentOVERDUE
}

// IsFullyPaid PAID y REFUNDED cuentan como pagadas.
func (p PaymentStatus) IsFullyPaid() bool {
	return p == PaymentPAID || p == PaymentREFUNDED
}

// DerivePaymentStatus calcula el estado de pago a partir del monto pagado,
// el total y la fecha de vencimiento. dueDate puede ser nil (sin vencimiento).
func DerivePaymentStatus(amountPaid, grandTotal decimal.Decimal, dueDate *time.Time, now time.Time) PaymentStatus {
	status := PaymentPENDING
	switch {
	case amountPaid.GreaterThanOrEqual(grandTotal):
		status = PaymentPAID
	case amountPaid.GreaterThan(decimal.Zero):
		status = PaymentPARTIAL
	}
	if status.IsUnpaid() && dueDate != nil && now.After(*dueDate) {
		status = PaymentOVERDUE
	}
	return status
}

package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/sales"
)

// SalesTransaction representa una orden de venta (raíz de agregado).
// Invariantes: grand_total = subtotal - discount + tax + shipping;
// 0 <= amount_paid <= grand_total; las transiciones de status siguen la
// máquina de estados de sales.Status. Nunca se borra físicamente (IsActive).
type SalesTransaction struct {
	ID                  string
	TransactionID       string // legible, prefijo SLS
	InvoiceNumber       string
	CustomerID          string
	OrderDate           time.Time
	DeliveryDate        *time.Time
	Status              sales.Status
	PaymentStatus       sales.PaymentStatus
	PaymentTerms        sales.PaymentTerms
	PaymentDueDate      *time.Time // derivada: order_date + días del término
	Subtotal            decimal.Decimal
	DiscountAmount      decimal.Decimal
	TaxAmount           decimal.Decimal
	ShippingAmount      decimal.Decimal
	GrandTotal          decimal.Decimal
	AmountPaid          decimal.Decimal
	ShippingAddress     string
	BillingAddress      string
	PurchaseOrderNumber string
	SalesPersonID       string
	Notes               string
	CustomerNotes       string
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
	CreatedBy           string
}

// CalculatePaymentDueDate fija la fecha de vencimiento según el término de pago.
func (t *SalesTransaction) CalculatePaymentDueDate() {
	due := t.PaymentTerms.DueDate(t.OrderDate)
	t.PaymentDueDate = &due
}

// BalanceDue saldo pendiente de pago.
func (t *SalesTransaction) BalanceDue() decimal.Decimal {
	return t.GrandTotal.Sub(t.AmountPaid)
}

// IsFullyPaid indica si el pago cubre el total.
func (t *SalesTransaction) IsFullyPaid() bool {
	return t.AmountPaid.GreaterThanOrEqual(t.GrandTotal)
}

// IsOverdue la orden está vencida si sigue impaga y pasó la fecha de vencimiento.
func (t *SalesTransaction) IsOverdue(now time.Time) bool {
	if t.PaymentDueDate == nil || t.PaymentStatus.IsFullyPaid() {
		return false
	}
	return now.After(*t.PaymentDueDate)
}

// DaysOverdue días de atraso (0 si no está vencida).
func (t *SalesTransaction) DaysOverdue(now time.Time) int {
	if !t.IsOverdue(now) {
		return 0
	}
	return int(now.Sub(*t.PaymentDueDate).Hours() / 24)
}

// UpdatePayment aplica el nuevo monto total pagado (no incremental), deriva el
// estado de pago y anexa una línea de auditoría con timestamp a Notes.
func (t *SalesTransaction) UpdatePayment(amount decimal.Decimal, notes string, now time.Time) error {
	if amount.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: el monto pagado no puede ser negativo", domain.ErrInvalidInput)
	}
	t.AmountPaid = amount
	t.PaymentStatus = sales.DerivePaymentStatus(t.AmountPaid, t.GrandTotal, t.PaymentDueDate, now)

	if notes != "" {
		line := fmt.Sprintf("[%s] Payment Update: %s", now.Format("2006-01-02 15:04:05"), notes)
		t.AppendNote(line)
	}
	return nil
}

// AppendNote anexa una línea al campo de notas.
func (t *SalesTransaction) AppendNote(line string) {
	if t.Notes == "" {
		t.Notes = line
		return
	}
	t.Notes = t.Notes + "\n" + line
}

// ConfirmOrder DRAFT → CONFIRMED.
func (t *SalesTransaction) ConfirmOrder() error {
	return t.transition(sales.StatusCONFIRMED)
}

// StartProcessing CONFIRMED → PROCESSING.
func (t *SalesTransaction) StartProcessing() error {
	return t.transition(sales.StatusPROCESSING)
}

// MarkAsShipped PROCESSING → SHIPPED.
func (t *SalesTransaction) MarkAsShipped() error {
	return t.transition(sales.StatusSHIPPED)
}

// MarkAsDelivered SHIPPED → DELIVERED y registra la fecha real de entrega.
func (t *SalesTransaction) MarkAsDelivered(deliveryDate time.Time) error {
	if err := t.transition(sales.StatusDELIVERED); err != nil {
		return err
	}
	t.DeliveryDate = &deliveryDate
	return nil
}

// CancelOrder cancela la orden. Si hay pagos registrados el estado de pago
// pasa a REFUNDED (el dinero debe devolverse).
func (t *SalesTransaction) CancelOrder() error {
	if !t.Status.CanCancel() {
		return fmt.Errorf("%w: no se puede cancelar una orden %s", domain.ErrInvalidStateTransition, t.Status)
	}
	if err := t.transition(sales.StatusCANCELLED); err != nil {
		return err
	}
	if t.AmountPaid.GreaterThan(decimal.Zero) {
		t.PaymentStatus = sales.PaymentREFUNDED
	}
	return nil
}

func (t *SalesTransaction) transition(target sales.Status) error {
	if !t.Status.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s → %s", domain.ErrInvalidStateTransition, t.Status, target)
	}
	t.Status = target
	return nil
}

// CalculateTotals fija los totales a nivel de orden y recalcula el grand_total.
func (t *SalesTransaction) CalculateTotals(subtotal, taxAmount, discountAmount decimal.Decimal) {
	t.Subtotal = subtotal
	t.TaxAmount = taxAmount
	t.DiscountAmount = discountAmount
	t.GrandTotal = sales.GrandTotal(subtotal, discountAmount, taxAmount, t.ShippingAmount)
}

// CanProcessReturn las devoluciones solo proceden desde SHIPPED o DELIVERED.
func (t *SalesTransaction) CanProcessReturn() bool {
	return t.Status.CanProcessReturn()
}

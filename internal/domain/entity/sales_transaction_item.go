package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/sales"
)

// SalesTransactionItem línea de una orden de venta. Es dueña de su economía
// unitaria (precio, costo, descuento, impuesto) y calcula sus propios totales.
// Invariante: si hay seriales, len(SerialNumbers) == Quantity.
type SalesTransactionItem struct {
	ID                 string
	TransactionID      string
	InventoryItemID    string
	WarehouseID        string
	Quantity           int
	UnitPrice          decimal.Decimal
	CostPrice          decimal.Decimal
	DiscountPercentage decimal.Decimal // 0–100; si > 0 manda sobre DiscountAmount
	DiscountAmount     decimal.Decimal
	TaxRate            decimal.Decimal // 0–100
	TaxAmount          decimal.Decimal
	Subtotal           decimal.Decimal
	Total              decimal.Decimal
	SerialNumbers      []string
	Notes              string
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
	CreatedBy          string
}

// CalculateTotals recalcula descuento, subtotal, impuesto y total de la línea.
func (i *SalesTransactionItem) CalculateTotals() {
	totals := sales.CalculateItemTotals(i.Quantity, i.UnitPrice, i.DiscountPercentage, i.DiscountAmount, i.TaxRate)
	i.DiscountAmount = totals.DiscountAmount
	i.Subtotal = totals.Subtotal
	i.TaxAmount = totals.TaxAmount
	i.Total = totals.Total
}

// ApplyBulkDiscount aplica el descuento automático por volumen si el caller no
// fijó uno explícito, y recalcula los totales.
func (i *SalesTransactionItem) ApplyBulkDiscount() {
	if !i.DiscountPercentage.IsZero() {
		return
	}
	pct := sales.BulkDiscountPercentage(i.Quantity)
	if pct.IsZero() {
		return
	}
	i.DiscountPercentage = pct
	i.CalculateTotals()
}

// UpdatePrice cambia el precio unitario y recalcula los campos derivados.
func (i *SalesTransactionItem) UpdatePrice(newUnitPrice decimal.Decimal) error {
	if newUnitPrice.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: el precio unitario no puede ser negativo", domain.ErrInvalidInput)
	}
	i.UnitPrice = newUnitPrice
	i.CalculateTotals()
	return nil
}

// ValidateSerialNumbers si hay seriales, su cantidad debe igualar Quantity.
func (i *SalesTransactionItem) ValidateSerialNumbers() error {
	if len(i.SerialNumbers) > 0 && len(i.SerialNumbers) != i.Quantity {
		return fmt.Errorf("%w: seriales (%d) no coinciden con la cantidad (%d)",
			domain.ErrInvalidInput, len(i.SerialNumbers), i.Quantity)
	}
	return nil
}

// ProfitMargin margen porcentual sobre el costo. Error si el costo es cero.
func (i *SalesTransactionItem) ProfitMargin() (decimal.Decimal, error) {
	return sales.ProfitMargin(i.UnitPrice, i.CostPrice)
}

// TotalProfit utilidad total de la línea.
func (i *SalesTransactionItem) TotalProfit() decimal.Decimal {
	return i.UnitPrice.Sub(i.CostPrice).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// EffectiveUnitPrice precio unitario efectivo después del descuento porcentual.
func (i *SalesTransactionItem) EffectiveUnitPrice() decimal.Decimal {
	if i.DiscountPercentage.GreaterThan(decimal.Zero) {
		factor := decimal.NewFromInt(1).Sub(i.DiscountPercentage.Div(decimal.NewFromInt(100)))
		return i.UnitPrice.Mul(factor)
	}
	return i.UnitPrice
}

// CanBeReturned la cantidad a devolver debe ser positiva y no exceder la vendida.
func (i *SalesTransactionItem) CanBeReturned(returnQuantity int) bool {
	return returnQuantity > 0 && returnQuantity <= i.Quantity
}

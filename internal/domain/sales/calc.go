package sales

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
)

// ItemTotals campos derivados de una línea de venta. Se calculan con precisión
// completa; el redondeo a 2 decimales ocurre solo en presentación/persistencia.
type ItemTotals struct {
	DiscountAmount decimal.Decimal
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
}

// CalculateItemTotals regla de cálculo de una línea:
//
//	base     = quantity * unit_price
//	discount = base * discount_percentage/100   (si el porcentaje > 0, manda y
//	           sobreescribe cualquier discount_amount recibido)
//	subtotal = base - discount
//	tax      = subtotal * tax_rate/100          (sobre el monto ya descontado)
//	total    = subtotal + tax
func CalculateItemTotals(quantity int, unitPrice, discountPercentage, discountAmount, taxRate decimal.Decimal) ItemTotals {
	base := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))

	if discountPercentage.GreaterThan(decimal.Zero) {
		discountAmount = base.Mul(discountPercentage).Div(decimal.NewFromInt(100))
	}
	subtotal := base.Sub(discountAmount)

	taxAmount := decimal.Zero
	if taxRate.GreaterThan(decimal.Zero) {
		taxAmount = subtotal.Mul(taxRate).Div(decimal.NewFromInt(100))
	}

	return ItemTotals{
		DiscountAmount: discountAmount,
		Subtotal:       subtotal,
		TaxAmount:      taxAmount,
		Total:          subtotal.Add(taxAmount),
	}
}

// Umbrales del descuento automático por volumen.
var (
	bulkTier50 = decimal.NewFromInt(10) // 10% para 50+ unidades
	bulkTier10 = decimal.NewFromInt(5)  // 5% para 10+ unidades
)

// BulkDiscountPercentage política de descuento por volumen cuando el caller no
// indicó descuento explícito: 50+ → 10%, 10+ → 5%, si no 0%.
func BulkDiscountPercentage(quantity int) decimal.Decimal {
	switch {
	case quantity >= 50:
		return bulkTier50
	case quantity >= 10:
		return bulkTier10
	}
	return decimal.Zero
}

// ProfitMargin margen porcentual (unit_price - cost_price) / cost_price * 100.
// Puede ser negativo. Error con cost_price cero (división indefinida).
func ProfitMargin(unitPrice, costPrice decimal.Decimal) (decimal.Decimal, error) {
	if costPrice.IsZero() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return unitPrice.Sub(costPrice).Div(costPrice).Mul(decimal.NewFromInt(100)), nil
}

// GrandTotal identidad de totales de la orden:
// grand_total = subtotal - discount + tax + shipping.
func GrandTotal(subtotal, discountAmount, taxAmount, shippingAmount decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(discountAmount).Add(taxAmount).Add(shippingAmount)
}

package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
)

// SalesReturn devolución contra una orden de venta. Es dueña de la aritmética
// de reembolso y cargo por reposición, y de la compuerta de aprobación
// (una sola vez, sin reversa).
type SalesReturn struct {
	ID                 string
	ReturnID           string // legible, prefijo SRT
	SalesTransactionID string
	ReturnDate         time.Time
	Reason             string
	ApprovedByID       string // vacío = sin aprobar
	RefundAmount       decimal.Decimal
	RestockingFee      decimal.Decimal
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
	CreatedBy          string
}

// NetRefundAmount reembolso neto = refund - restocking fee. Puede ser negativo
// cuando el cargo supera el reembolso; se conserva sin recortar (comportamiento
// original, marcado como defecto probable).
func (r *SalesReturn) NetRefundAmount() decimal.Decimal {
	return r.RefundAmount.Sub(r.RestockingFee)
}

// IsApproved la devolución está aprobada si tiene aprobador.
func (r *SalesReturn) IsApproved() bool {
	return r.ApprovedByID != ""
}

// Approve registra el aprobador. Aprobar dos veces falla; no existe des-aprobación.
func (r *SalesReturn) Approve(approvedByID string) error {
	if r.IsApproved() {
		return domain.ErrAlreadyApproved
	}
	if approvedByID == "" {
		return fmt.Errorf("%w: aprobador requerido", domain.ErrInvalidInput)
	}
	r.ApprovedByID = approvedByID
	return nil
}

// CalculateRefund fija el reembolso al valor total de los ítems devueltos.
func (r *SalesReturn) CalculateRefund(totalItemValue decimal.Decimal) error {
	if totalItemValue.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: el valor de los ítems no puede ser negativo", domain.ErrInvalidInput)
	}
	r.RefundAmount = totalItemValue
	return nil
}

// ApplyRestockingFee aplica el cargo por reposición como porcentaje del reembolso.
func (r *SalesReturn) ApplyRestockingFee(feePercentage decimal.Decimal) error {
	if feePercentage.LessThan(decimal.Zero) || feePercentage.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: el porcentaje de reposición debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	r.RestockingFee = r.RefundAmount.Mul(feePercentage).Div(decimal.NewFromInt(100))
	return nil
}

// Validate precondiciones de la devolución.
func (r *SalesReturn) Validate() error {
	if strings.TrimSpace(r.Reason) == "" {
		return fmt.Errorf("%w: la razón de la devolución es requerida", domain.ErrInvalidInput)
	}
	if r.RefundAmount.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: el reembolso no puede ser negativo", domain.ErrInvalidInput)
	}
	if r.RestockingFee.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: el cargo por reposición no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

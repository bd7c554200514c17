package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/ventas-api/internal/domain"
)

// SalesReturnItem ítem devuelto dentro de una devolución; referencia la línea
// original de la venta. Invariante (protegido por el caso de uso y la capa de
// persistencia): la suma de cantidades devueltas por línea original nunca
// excede la cantidad vendida.
type SalesReturnItem struct {
	ID            string
	SalesReturnID string
	SalesItemID   string // línea original de la venta
	Quantity      int
	Condition     string
	SerialNumbers []string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CreatedBy     string
}

// Condiciones que permiten revender el ítem. Match exacto case-insensitive,
// sin recorte de espacios: " good " no es revendible.
var resellableConditions = map[string]struct{}{
	"new":       {},
	"unopened":  {},
	"like new":  {},
	"excellent": {},
	"good":      {},
}

// ValidateQuantity la cantidad a devolver debe ser positiva y no exceder la original.
func (i *SalesReturnItem) ValidateQuantity(originalQuantity int) error {
	if i.Quantity <= 0 {
		return fmt.Errorf("%w: la cantidad a devolver debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if i.Quantity > originalQuantity {
		return fmt.Errorf("%w: la cantidad a devolver (%d) excede la original (%d)",
			domain.ErrInvalidInput, i.Quantity, originalQuantity)
	}
	return nil
}

// ValidateSerialNumbers si hay seriales, su cantidad debe igualar Quantity.
func (i *SalesReturnItem) ValidateSerialNumbers() error {
	if len(i.SerialNumbers) > 0 && len(i.SerialNumbers) != i.Quantity {
		return fmt.Errorf("%w: seriales (%d) no coinciden con la cantidad devuelta (%d)",
			domain.ErrInvalidInput, len(i.SerialNumbers), i.Quantity)
	}
	return nil
}

// ValidateSerialOwnership cada serial devuelto debe provenir de la línea
// original de la venta, sin repetidos.
func (i *SalesReturnItem) ValidateSerialOwnership(originalSerials []string) error {
	if len(i.SerialNumbers) == 0 {
		return nil
	}
	sold := make(map[string]struct{}, len(originalSerials))
	for _, s := range originalSerials {
		sold[s] = struct{}{}
	}
	seen := make(map[string]struct{}, len(i.SerialNumbers))
	for _, s := range i.SerialNumbers {
		if _, dup := seen[s]; dup {
			return fmt.Errorf("%w: serial %s repetido en la devolución", domain.ErrInvalidInput, s)
		}
		seen[s] = struct{}{}
		if _, ok := sold[s]; !ok {
			return fmt.Errorf("%w: el serial %s no pertenece a la venta original", domain.ErrInvalidInput, s)
		}
	}
	return nil
}

// ValidateCondition la condición del ítem es obligatoria.
func (i *SalesReturnItem) ValidateCondition() error {
	if strings.TrimSpace(i.Condition) == "" {
		return fmt.Errorf("%w: la condición del ítem es requerida", domain.ErrInvalidInput)
	}
	return nil
}

// IsResellable clasifica la condición contra la lista de revendibles.
func (i *SalesReturnItem) IsResellable() bool {
	_, ok := resellableConditions[strings.ToLower(i.Condition)]
	return ok
}

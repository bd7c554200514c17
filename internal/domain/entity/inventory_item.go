package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un ítem maestro del inventario (SKU).
// Cost es el costo promedio; el stock se lleva por bodega en Stock.
type InventoryItem struct {
	ID          string
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta sugerido
	Cost        decimal.Decimal // costo promedio
	TaxRate     decimal.Decimal // porcentaje 0–100
	UnitMeasure string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

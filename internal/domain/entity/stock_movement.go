package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeSALE       = "SALE"       // salida por venta confirmada
	MovementTypeRETURN     = "RETURN"     // entrada por devolución
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste manual
)

// StockMovement registro del libro de movimientos de inventario.
// Quantity es negativa en salidas y positiva en entradas.
type StockMovement struct {
	ID            string
	ItemID        string
	WarehouseID   string
	Type          string
	Quantity      int
	Reference     string // TransactionID u ReturnID legible (SLS-…/SRT-…)
	SerialNumbers []string
	Condition     string // solo en RETURN: condición reportada del ítem
	Notes         string
	CreatedAt     time.Time
	CreatedBy     string
}

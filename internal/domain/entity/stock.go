package entity

import "time"

// Stock cantidad actual de un ítem en una bodega (fila materializada,
// bloqueable con SELECT FOR UPDATE dentro de una transacción).
type Stock struct {
	ItemID      string
	WarehouseID string
	Quantity    int
	UpdatedAt   time.Time
}

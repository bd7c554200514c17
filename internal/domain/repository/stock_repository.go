package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar stock por ítem+bodega.
// Get y GetForUpdate nunca devuelven nil: si no hay fila, devuelven un Stock en cero.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	Get(itemID, warehouseID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(itemID, warehouseID string) (*entity.Stock, error)
}

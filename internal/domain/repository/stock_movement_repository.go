package repository

import (
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// StockMovementRepository define el puerto para el libro de movimientos.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByReference(reference string) ([]*entity.StockMovement, error)
}

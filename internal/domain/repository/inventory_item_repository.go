package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// InventoryItemRepository define el puerto de persistencia para el maestro de ítems.
type InventoryItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	GetBySKU(sku string) (*entity.InventoryItem, error)
	List(limit, offset int) ([]*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	Deactivate(id string) error
}

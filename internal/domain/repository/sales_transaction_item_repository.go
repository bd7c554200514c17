package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// SalesTransactionItemRepository define el puerto de persistencia para líneas de venta.
type SalesTransactionItemRepository interface {
	Create(item *entity.SalesTransactionItem) error
	GetByID(id string) (*entity.SalesTransactionItem, error)
	GetByTransaction(transactionID string) ([]*entity.SalesTransactionItem, error)
	Update(item *entity.SalesTransactionItem) error
	Deactivate(id string) error
}

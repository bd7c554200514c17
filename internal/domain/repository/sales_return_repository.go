package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// ReturnSummary agregados de devoluciones para un período.
type ReturnSummary struct {
	TotalReturns  int
	TotalRefunded decimal.Decimal
	TotalFees     decimal.Decimal
}

// SalesReturnRepository define el puerto de persistencia para devoluciones.
type SalesReturnRepository interface {
	Create(ret *entity.SalesReturn) error
	GetByID(id string) (*entity.SalesReturn, error)
	Update(ret *entity.SalesReturn) error
	ListByTransaction(salesTransactionID string) ([]*entity.SalesReturn, error)
	// GetTotalRefundAmount suma de reembolsos de todas las devoluciones activas
	// de una orden (para decidir la transición a REFUNDED).
	GetTotalRefundAmount(salesTransactionID string) (decimal.Decimal, error)
	GetReturnSummary(from, to time.Time) (*ReturnSummary, error)
}

// SalesReturnItemRepository define el puerto de persistencia para ítems devueltos.
type SalesReturnItemRepository interface {
	Create(item *entity.SalesReturnItem) error
	GetByReturn(salesReturnID string) ([]*entity.SalesReturnItem, error)
	// GetTotalReturnedQuantity suma de cantidades ya devueltas contra una línea
	// original (solo devoluciones activas). Protege la conservación de cantidades.
	GetTotalReturnedQuantity(salesItemID string) (int, error)
}

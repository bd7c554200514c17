package sales

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del caso de uso
// completo: cualquier error hace rollback de todo lo hecho dentro del scope.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		salesRepo repository.SalesTransactionRepository,
		itemRepo repository.SalesTransactionItemRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		seqRepo repository.SequenceRepository,
	) error) error

	RunReturns(ctx context.Context, fn func(
		salesRepo repository.SalesTransactionRepository,
		itemRepo repository.SalesTransactionItemRepository,
		returnRepo repository.SalesReturnRepository,
		returnItemRepo repository.SalesReturnItemRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}

// StockService contrato con el subsistema de inventario. Las variantes InTx
// reciben los repositorios de la transacción del caller para que el movimiento
// participe de la misma atomicidad (patrón RegisterSaleInTx).
type StockService interface {
	AvailableStock(itemID, warehouseID string) (int, error)
	RegisterSaleInTx(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		itemID, warehouseID string,
		quantity int,
		reference string,
		serialNumbers []string,
		notes string,
		now time.Time,
		createdBy string,
	) error
	RegisterReturnInTx(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		itemID, warehouseID string,
		quantity int,
		reference string,
		serialNumbers []string,
		condition string,
		notes string,
		now time.Time,
		createdBy string,
	) error
}

// PDFGenerator genera la representación gráfica (PDF) de una orden de venta.
type PDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, doc *OrderDocument) ([]byte, error)
}

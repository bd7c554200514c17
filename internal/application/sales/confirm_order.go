package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ConfirmOrderUseCase confirma una orden DRAFT y descuenta el inventario.
// El stock se compromete aquí, no en la creación: relectura con FOR UPDATE
// dentro de la transacción para que dos confirmaciones concurrentes no
// sobre-vendan la misma existencia.
type ConfirmOrderUseCase struct {
	txRunner TxRunner
	stockSvc StockService
}

func NewConfirmOrderUseCase(txRunner TxRunner, stockSvc StockService) *ConfirmOrderUseCase {
	return &ConfirmOrderUseCase{txRunner: txRunner, stockSvc: stockSvc}
}

// Execute pasa la orden a CONFIRMED y registra los movimientos de salida.
func (uc *ConfirmOrderUseCase) Execute(ctx context.Context, userID, transactionID string) (*dto.SalesTransactionResponse, error) {
	var (
		tx    *entity.SalesTransaction
		items []*entity.SalesTransactionItem
	)

	err := uc.txRunner.RunSales(ctx, func(
		salesRepo repository.SalesTransactionRepository,
		itemRepo repository.SalesTransactionItemRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		_ repository.SequenceRepository,
	) error {
		var err error
		tx, err = salesRepo.GetByID(transactionID)
		if err != nil {
			return err
		}
		if tx == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNotFound, transactionID)
		}
		if err := tx.ConfirmOrder(); err != nil {
			return err
		}

		items, err = itemRepo.GetByTransaction(tx.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("%w: la orden no tiene ítems", domain.ErrInvalidInput)
		}

		now := time.Now()
		for _, item := range items {
			notes := fmt.Sprintf("Venta %s", tx.TransactionID)
			if err := uc.stockSvc.RegisterSaleInTx(
				stockRepo, movRepo,
				item.InventoryItemID, item.WarehouseID, item.Quantity,
				tx.TransactionID, item.SerialNumbers, notes, now, userID,
			); err != nil {
				return err
			}
		}

		tx.UpdatedAt = now
		return salesRepo.Update(tx)
	})
	if err != nil {
		return nil, err
	}

	return toTransactionResponse(tx, "", items), nil
}

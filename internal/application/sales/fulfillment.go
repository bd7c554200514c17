package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/internal/domain/sales"
)

// FulfillmentUseCase mueve la orden por el ciclo de despacho
// (CONFIRMED -> PROCESSING -> SHIPPED -> DELIVERED) y maneja la cancelación.
type FulfillmentUseCase struct {
	txRunner TxRunner
	stockSvc StockService
}

func NewFulfillmentUseCase(txRunner TxRunner, stockSvc StockService) *FulfillmentUseCase {
	return &FulfillmentUseCase{txRunner: txRunner, stockSvc: stockSvc}
}

// StartProcessing pasa la orden de CONFIRMED a PROCESSING.
func (uc *FulfillmentUseCase) StartProcessing(ctx context.Context, transactionID string) (*dto.SalesTransactionResponse, error) {
	return uc.transition(ctx, transactionID, func(tx *entity.SalesTransaction) error {
		return tx.StartProcessing()
	})
}

// Ship marca la orden como despachada (PROCESSING -> SHIPPED).
func (uc *FulfillmentUseCase) Ship(ctx context.Context, transactionID string) (*dto.SalesTransactionResponse, error) {
	return uc.transition(ctx, transactionID, func(tx *entity.SalesTransaction) error {
		return tx.MarkAsShipped()
	})
}

// Deliver marca la orden como entregada (SHIPPED -> DELIVERED) y fija la fecha
// de entrega real. Sin fecha explícita usa el momento actual.
func (uc *FulfillmentUseCase) Deliver(ctx context.Context, transactionID string, in dto.DeliverRequest) (*dto.SalesTransactionResponse, error) {
	deliveryDate := time.Now()
	if in.DeliveryDate != nil {
		deliveryDate = *in.DeliveryDate
	}
	return uc.transition(ctx, transactionID, func(tx *entity.SalesTransaction) error {
		return tx.MarkAsDelivered(deliveryDate)
	})
}

// Cancel cancela la orden. Si el inventario ya estaba comprometido (la orden
// pasó de DRAFT) lo devuelve a la bodega con movimientos de entrada. Una orden
// con pagos registrados queda con estado de pago REFUNDED.
func (uc *FulfillmentUseCase) Cancel(ctx context.Context, userID, transactionID, reason string) (*dto.SalesTransactionResponse, error) {
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

		stockCommitted := tx.Status != sales.StatusDRAFT

		if err := tx.CancelOrder(); err != nil {
			return err
		}
		if reason != "" {
			tx.AppendNote(fmt.Sprintf("Cancelación: %s", reason))
		}

		now := time.Now()
		if stockCommitted {
			items, err = itemRepo.GetByTransaction(tx.ID)
			if err != nil {
				return err
			}
			for _, item := range items {
				notes := fmt.Sprintf("Cancelación de venta %s", tx.TransactionID)
				if err := uc.stockSvc.RegisterReturnInTx(
					stockRepo, movRepo,
					item.InventoryItemID, item.WarehouseID, item.Quantity,
					tx.TransactionID, item.SerialNumbers, "new", notes, now, userID,
				); err != nil {
					return err
				}
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

func (uc *FulfillmentUseCase) transition(ctx context.Context, transactionID string, apply func(*entity.SalesTransaction) error) (*dto.SalesTransactionResponse, error) {
	var tx *entity.SalesTransaction

	err := uc.txRunner.RunSales(ctx, func(
		salesRepo repository.SalesTransactionRepository,
		_ repository.SalesTransactionItemRepository,
		_ repository.StockRepository,
		_ repository.StockMovementRepository,
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
		if err := apply(tx); err != nil {
			return err
		}
		tx.UpdatedAt = time.Now()
		return salesRepo.Update(tx)
	})
	if err != nil {
		return nil, err
	}

	return toTransactionResponse(tx, "", nil), nil
}

package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/internal/domain/sales"
)

// ProcessReturnUseCase procesa una devolución contra una orden despachada o
// entregada: valida la conservación de cantidades y los seriales por línea,
// calcula el reembolso proporcional, aplica el cargo por reposición, reingresa
// cada ítem al inventario con su condición y reconcilia el estado de pago de
// la orden. Todo en una sola transacción de BD.
type ProcessReturnUseCase struct {
	txRunner TxRunner
	stockSvc StockService
}

func NewProcessReturnUseCase(txRunner TxRunner, stockSvc StockService) *ProcessReturnUseCase {
	return &ProcessReturnUseCase{txRunner: txRunner, stockSvc: stockSvc}
}

// Execute crea la devolución. transactionID es el ID interno de la orden.
func (uc *ProcessReturnUseCase) Execute(ctx context.Context, userID, transactionID string, in dto.ProcessReturnRequest) (*dto.SalesReturnResponse, error) {
	if in.Reason == "" {
		return nil, fmt.Errorf("%w: la razón de la devolución es requerida", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos un ítem a devolver", domain.ErrInvalidInput)
	}

	var (
		ret      *entity.SalesReturn
		retItems []*entity.SalesReturnItem
	)

	err := uc.txRunner.RunReturns(ctx, func(
		salesRepo repository.SalesTransactionRepository,
		itemRepo repository.SalesTransactionItemRepository,
		returnRepo repository.SalesReturnRepository,
		returnItemRepo repository.SalesReturnItemRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		seqRepo repository.SequenceRepository,
	) error {
		tx, err := salesRepo.GetByID(transactionID)
		if err != nil {
			return err
		}
		if tx == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNotFound, transactionID)
		}
		if !tx.CanProcessReturn() {
			return fmt.Errorf("%w: no se aceptan devoluciones de una orden %s",
				domain.ErrInvalidStateTransition, tx.Status)
		}

		now := time.Now()
		returnID, err := seqRepo.NextID(sales.PrefixReturn)
		if err != nil {
			return err
		}

		ret = &entity.SalesReturn{
			ID:                 uuid.New().String(),
			ReturnID:           returnID,
			SalesTransactionID: tx.ID,
			ReturnDate:         now,
			Reason:             in.Reason,
			IsActive:           true,
			CreatedAt:          now,
			UpdatedAt:          now,
			CreatedBy:          userID,
		}

		totalRefund := decimal.Zero
		for i := range in.Items {
			line := &in.Items[i]

			original, err := itemRepo.GetByID(line.SalesItemID)
			if err != nil {
				return err
			}
			if original == nil || original.TransactionID != tx.ID {
				return fmt.Errorf("%w: línea de venta %s no pertenece a la orden", domain.ErrNotFound, line.SalesItemID)
			}

			retItem := &entity.SalesReturnItem{
				ID:            uuid.New().String(),
				SalesReturnID: ret.ID,
				SalesItemID:   original.ID,
				Quantity:      line.Quantity,
				Condition:     line.Condition,
				SerialNumbers: line.SerialNumbers,
				IsActive:      true,
				CreatedAt:     now,
				UpdatedAt:     now,
				CreatedBy:     userID,
			}
			if err := retItem.ValidateCondition(); err != nil {
				return err
			}
			if err := retItem.ValidateSerialNumbers(); err != nil {
				return err
			}
			if err := retItem.ValidateSerialOwnership(original.SerialNumbers); err != nil {
				return err
			}

			// Conservación de cantidades: lo ya devuelto más lo solicitado no
			// puede exceder la cantidad vendida de la línea.
			alreadyReturned, err := returnItemRepo.GetTotalReturnedQuantity(original.ID)
			if err != nil {
				return err
			}
			if err := retItem.ValidateQuantity(original.Quantity - alreadyReturned); err != nil {
				return err
			}

			// Reembolso proporcional: valor unitario = total de la línea / cantidad.
			unitValue := original.Total.Div(decimal.NewFromInt(int64(original.Quantity)))
			totalRefund = totalRefund.Add(unitValue.Mul(decimal.NewFromInt(int64(line.Quantity))))

			if err := returnItemRepo.Create(retItem); err != nil {
				return err
			}
			retItems = append(retItems, retItem)

			// Todo ítem devuelto reingresa y queda en el libro de movimientos
			// con su condición; la clasificación de revendible es informativa.
			notes := fmt.Sprintf("Devolución %s de venta %s", ret.ReturnID, tx.TransactionID)
			if err := uc.stockSvc.RegisterReturnInTx(
				stockRepo, movRepo,
				original.InventoryItemID, original.WarehouseID, retItem.Quantity,
				ret.ReturnID, retItem.SerialNumbers, retItem.Condition, notes, now, userID,
			); err != nil {
				return err
			}
		}

		if err := ret.CalculateRefund(totalRefund); err != nil {
			return err
		}
		if err := ret.ApplyRestockingFee(in.RestockingFeePercentage); err != nil {
			return err
		}
		if err := returnRepo.Create(ret); err != nil {
			return err
		}

		// Reconciliación de pago: con el acumulado de reembolsos cubriendo el
		// total, la orden queda REFUNDED.
		refundedSoFar, err := returnRepo.GetTotalRefundAmount(tx.ID)
		if err != nil {
			return err
		}
		if refundedSoFar.GreaterThanOrEqual(tx.GrandTotal) && tx.PaymentStatus != sales.PaymentREFUNDED {
			if err := salesRepo.UpdatePaymentStatus(tx.ID, sales.PaymentREFUNDED, tx.AmountPaid); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toReturnResponse(ret, retItems), nil
}

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

// UpdatePaymentUseCase registra el monto total pagado de una orden y deriva
// su estado de pago. El monto es absoluto, no incremental; un monto mayor al
// grand_total se rechaza.
type UpdatePaymentUseCase struct {
	txRunner TxRunner
}

func NewUpdatePaymentUseCase(txRunner TxRunner) *UpdatePaymentUseCase {
	return &UpdatePaymentUseCase{txRunner: txRunner}
}

func (uc *UpdatePaymentUseCase) Execute(ctx context.Context, transactionID string, in dto.UpdatePaymentRequest) (*dto.SalesTransactionResponse, error) {
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
		if in.AmountPaid.GreaterThan(tx.GrandTotal) {
			return fmt.Errorf("%w: el pago (%s) excede el total de la orden (%s)",
				domain.ErrInvalidInput, in.AmountPaid.Round(2), tx.GrandTotal.Round(2))
		}

		now := time.Now()
		if err := tx.UpdatePayment(in.AmountPaid, in.Notes, now); err != nil {
			return err
		}
		tx.UpdatedAt = now
		return salesRepo.Update(tx)
	})
	if err != nil {
		return nil, err
	}

	return toTransactionResponse(tx, "", nil), nil
}

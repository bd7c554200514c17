package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// UpdateItemPriceUseCase cambia el precio unitario de una línea. Solo las
// órdenes DRAFT son editables; el cambio recalcula la línea y los totales de
// la orden en la misma transacción.
type UpdateItemPriceUseCase struct {
	txRunner TxRunner
}

func NewUpdateItemPriceUseCase(txRunner TxRunner) *UpdateItemPriceUseCase {
	return &UpdateItemPriceUseCase{txRunner: txRunner}
}

func (uc *UpdateItemPriceUseCase) Execute(ctx context.Context, transactionID, itemID string, in dto.UpdateItemPriceRequest) (*dto.SalesTransactionResponse, error) {
	var (
		tx    *entity.SalesTransaction
		items []*entity.SalesTransactionItem
	)

	err := uc.txRunner.RunSales(ctx, func(
		salesRepo repository.SalesTransactionRepository,
		itemRepo repository.SalesTransactionItemRepository,
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
		if !tx.Status.IsEditable() {
			return fmt.Errorf("%w: una orden %s no es editable", domain.ErrConflict, tx.Status)
		}

		items, err = itemRepo.GetByTransaction(tx.ID)
		if err != nil {
			return err
		}

		var target *entity.SalesTransactionItem
		for _, item := range items {
			if item.ID == itemID {
				target = item
				break
			}
		}
		if target == nil {
			return fmt.Errorf("%w: línea %s", domain.ErrNotFound, itemID)
		}

		now := time.Now()
		if err := target.UpdatePrice(in.UnitPrice); err != nil {
			return err
		}
		target.UpdatedAt = now
		if err := itemRepo.Update(target); err != nil {
			return err
		}

		subtotal := decimal.Zero
		totalTax := decimal.Zero
		totalDiscount := decimal.Zero
		for _, item := range items {
			subtotal = subtotal.Add(item.Subtotal).Add(item.DiscountAmount)
			totalTax = totalTax.Add(item.TaxAmount)
			totalDiscount = totalDiscount.Add(item.DiscountAmount)
		}
		tx.CalculateTotals(subtotal, totalTax, totalDiscount)
		tx.UpdatedAt = now
		return salesRepo.Update(tx)
	})
	if err != nil {
		return nil, err
	}

	return toTransactionResponse(tx, "", items), nil
}

package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// StockUseCase motor de movimientos de inventario para el módulo de ventas:
// salidas por venta confirmada y entradas por devolución, con bloqueo de fila
// (SELECT FOR UPDATE) dentro de la transacción del caller.
type StockUseCase struct {
	stockRepo repository.StockRepository // atado al pool, solo lecturas
}

// NewStockUseCase construye el caso de uso con un repositorio de solo lectura.
func NewStockUseCase(stockRepo repository.StockRepository) *StockUseCase {
	return &StockUseCase{stockRepo: stockRepo}
}

// AvailableStock cantidad disponible de un ítem en una bodega (0 si no hay fila).
func (uc *StockUseCase) AvailableStock(itemID, warehouseID string) (int, error) {
	stock, err := uc.stockRepo.Get(itemID, warehouseID)
	if err != nil {
		return 0, err
	}
	return stock.Quantity, nil
}

// RegisterSaleInTx descuenta stock por una venta confirmada usando los
// repositorios de la transacción del caller. Bloquea la fila, verifica
// disponibilidad y registra el movimiento SALE con referencia a la orden.
func (uc *StockUseCase) RegisterSaleInTx(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	itemID, warehouseID string,
	quantity int,
	reference string,
	serialNumbers []string,
	notes string,
	now time.Time,
	createdBy string,
) error {
	stock, err := stockRepo.GetForUpdate(itemID, warehouseID)
	if err != nil {
		return err
	}
	if stock.Quantity < quantity {
		return &domain.StockError{ItemID: itemID, WarehouseID: warehouseID, Available: stock.Quantity, Requested: quantity}
	}
	stock.Quantity -= quantity
	stock.UpdatedAt = now
	if err := stockRepo.Upsert(stock); err != nil {
		return err
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ItemID:        itemID,
		WarehouseID:   warehouseID,
		Type:          entity.MovementTypeSALE,
		Quantity:      -quantity,
		Reference:     reference,
		SerialNumbers: serialNumbers,
		Notes:         notes,
		CreatedAt:     now,
		CreatedBy:     createdBy,
	}
	return movRepo.Create(mov)
}

// RegisterReturnInTx reingresa stock por una devolución. Crea la fila de stock
// si no existe y registra el movimiento RETURN con la condición reportada.
func (uc *StockUseCase) RegisterReturnInTx(
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
) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: cantidad de devolución inválida", domain.ErrInvalidInput)
	}
	stock, err := stockRepo.GetForUpdate(itemID, warehouseID)
	if err != nil {
		return err
	}
	stock.Quantity += quantity
	stock.UpdatedAt = now
	if err := stockRepo.Upsert(stock); err != nil {
		return err
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ItemID:        itemID,
		WarehouseID:   warehouseID,
		Type:          entity.MovementTypeRETURN,
		Quantity:      quantity,
		Reference:     reference,
		SerialNumbers: serialNumbers,
		Condition:     condition,
		Notes:         notes,
		CreatedAt:     now,
		CreatedBy:     createdBy,
	}
	return movRepo.Create(mov)
}

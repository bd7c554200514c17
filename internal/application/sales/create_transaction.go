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

// CreateTransactionUseCase crea una orden de venta con sus líneas en una sola
// transacción. En creación solo se verifica disponibilidad de stock; el
// descuento real del inventario ocurre al confirmar la orden.
type CreateTransactionUseCase struct {
	txRunner      TxRunner
	stockSvc      StockService
	customerRepo  repository.CustomerRepository
	itemRepo      repository.InventoryItemRepository
	warehouseRepo repository.WarehouseRepository
	salesRepo     repository.SalesTransactionRepository
}

// NewCreateTransactionUseCase construye el caso de uso.
func NewCreateTransactionUseCase(
	txRunner TxRunner,
	stockSvc StockService,
	customerRepo repository.CustomerRepository,
	itemRepo repository.InventoryItemRepository,
	warehouseRepo repository.WarehouseRepository,
	salesRepo repository.SalesTransactionRepository,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		txRunner:      txRunner,
		stockSvc:      stockSvc,
		customerRepo:  customerRepo,
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
		salesRepo:     salesRepo,
	}
}

// Execute valida cliente, ítems, stock y crédito; asigna el ID legible (SLS)
// y el número de factura; persiste la orden en DRAFT/PENDING y sus líneas con
// totales calculados; y fija los totales a nivel de orden.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, userID string, in dto.CreateSalesTransactionRequest) (*dto.SalesTransactionResponse, error) {
	if in.CustomerID == "" {
		return nil, fmt.Errorf("%w: cliente requerido", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos un ítem", domain.ErrInvalidInput)
	}

	terms := sales.TermsIMMEDIATE
	if in.PaymentTerms != "" {
		terms = sales.PaymentTerms(in.PaymentTerms)
		if !terms.IsValid() {
			return nil, fmt.Errorf("%w: término de pago desconocido %q", domain.ErrInvalidInput, in.PaymentTerms)
		}
	}
	if in.ShippingAmount.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el costo de envío no puede ser negativo", domain.ErrInvalidInput)
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
	}

	// Resolver ítems y bodegas, y verificar disponibilidad (solo lectura).
	itemsByID := make(map[string]*entity.InventoryItem)
	for i := range in.Items {
		line := &in.Items[i]
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
		}
		invItem, err := uc.itemRepo.GetByID(line.ItemID)
		if err != nil {
			return nil, err
		}
		if invItem == nil {
			return nil, fmt.Errorf("%w: ítem %s", domain.ErrNotFound, line.ItemID)
		}
		wh, err := uc.warehouseRepo.GetByID(line.WarehouseID)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, line.WarehouseID)
		}
		itemsByID[line.ItemID] = invItem

		available, err := uc.stockSvc.AvailableStock(line.ItemID, line.WarehouseID)
		if err != nil {
			return nil, err
		}
		if available < line.Quantity {
			return nil, &domain.StockError{
				ItemID:      line.ItemID,
				WarehouseID: line.WarehouseID,
				Available:   available,
				Requested:   line.Quantity,
			}
		}
		if len(line.SerialNumbers) > 0 && len(line.SerialNumbers) != line.Quantity {
			return nil, fmt.Errorf("%w: seriales (%d) no coinciden con la cantidad (%d)",
				domain.ErrInvalidInput, len(line.SerialNumbers), line.Quantity)
		}
	}

	if terms != sales.TermsPREPAID {
		if err := uc.checkCreditLimit(customer, in, itemsByID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	orderDate := now
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}

	tx := &entity.SalesTransaction{
		ID:                  uuid.New().String(),
		CustomerID:          customer.ID,
		OrderDate:           orderDate,
		DeliveryDate:        in.DeliveryDate,
		Status:              sales.StatusDRAFT,
		PaymentStatus:       sales.PaymentPENDING,
		PaymentTerms:        terms,
		ShippingAmount:      in.ShippingAmount,
		ShippingAddress:     coalesce(in.ShippingAddress, customer.Address),
		BillingAddress:      coalesce(in.BillingAddress, customer.Address),
		PurchaseOrderNumber: in.PurchaseOrderNumber,
		SalesPersonID:       in.SalesPersonID,
		Notes:               in.Notes,
		CustomerNotes:       in.CustomerNotes,
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
		CreatedBy:           userID,
	}
	tx.CalculatePaymentDueDate()

	var created []*entity.SalesTransactionItem

	err = uc.txRunner.RunSales(ctx, func(
		salesRepo repository.SalesTransactionRepository,
		itemRepo repository.SalesTransactionItemRepository,
		_ repository.StockRepository,
		_ repository.StockMovementRepository,
		seqRepo repository.SequenceRepository,
	) error {
		transactionID, err := seqRepo.NextID(sales.PrefixTransaction)
		if err != nil {
			return err
		}
		tx.TransactionID = transactionID
		tx.InvoiceNumber = sales.InvoiceNumber(now)

		if err := salesRepo.Create(tx); err != nil {
			return err
		}

		subtotal := decimal.Zero
		totalTax := decimal.Zero
		totalDiscount := decimal.Zero
		for i := range in.Items {
			line := &in.Items[i]
			invItem := itemsByID[line.ItemID]

			unitPrice := invItem.Price
			if line.UnitPrice != nil && !line.UnitPrice.IsZero() {
				unitPrice = *line.UnitPrice
			}
			taxRate := invItem.TaxRate
			if line.TaxRate != nil {
				taxRate = *line.TaxRate
			}

			item := &entity.SalesTransactionItem{
				ID:                 uuid.New().String(),
				TransactionID:      tx.ID,
				InventoryItemID:    invItem.ID,
				WarehouseID:        line.WarehouseID,
				Quantity:           line.Quantity,
				UnitPrice:          unitPrice,
				CostPrice:          invItem.Cost,
				DiscountPercentage: line.DiscountPercentage,
				DiscountAmount:     line.DiscountAmount,
				TaxRate:            taxRate,
				SerialNumbers:      line.SerialNumbers,
				Notes:              line.Notes,
				IsActive:           true,
				CreatedAt:          now,
				UpdatedAt:          now,
				CreatedBy:          userID,
			}
			// Descuento automático por volumen solo si no hubo descuento explícito.
			if item.DiscountPercentage.IsZero() && item.DiscountAmount.IsZero() {
				item.DiscountPercentage = sales.BulkDiscountPercentage(item.Quantity)
			}
			item.CalculateTotals()

			if err := itemRepo.Create(item); err != nil {
				return err
			}
			created = append(created, item)

			// Subtotal bruto de la orden: subtotal de línea + descuento (recupera el bruto).
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

	return toTransactionResponse(tx, customer.Name, created), nil
}

// checkCreditLimit saldo pendiente + total proyectado de esta orden contra el
// límite de crédito del cliente. Límite cero = sin límite (la política exacta
// del original queda pendiente de definición de producto).
func (uc *CreateTransactionUseCase) checkCreditLimit(
	customer *entity.Customer,
	in dto.CreateSalesTransactionRequest,
	itemsByID map[string]*entity.InventoryItem,
) error {
	if !customer.CreditLimit.GreaterThan(decimal.Zero) {
		return nil
	}
	outstanding, err := uc.salesRepo.GetCustomerOutstandingBalance(customer.ID)
	if err != nil {
		return err
	}
	orderTotal := in.ShippingAmount
	for i := range in.Items {
		line := &in.Items[i]
		unitPrice := itemsByID[line.ItemID].Price
		if line.UnitPrice != nil && !line.UnitPrice.IsZero() {
			unitPrice = *line.UnitPrice
		}
		orderTotal = orderTotal.Add(unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	if outstanding.Add(orderTotal).GreaterThan(customer.CreditLimit) {
		return fmt.Errorf("%w: saldo %s + orden %s supera el límite %s", domain.ErrCreditLimitExceeded,
			outstanding.Round(2), orderTotal.Round(2), customer.CreditLimit.Round(2))
	}
	return nil
}

func coalesce(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

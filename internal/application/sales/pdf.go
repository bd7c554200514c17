package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// OrderDocument datos planos de una orden listos para render en PDF.
type OrderDocument struct {
	TransactionID  string
	InvoiceNumber  string
	Status         string
	PaymentStatus  string
	PaymentTerms   string
	OrderDate      time.Time
	PaymentDueDate *time.Time

	CustomerName    string
	CustomerTaxID   string
	CustomerEmail   string
	ShippingAddress string
	BillingAddress  string

	Lines []OrderDocumentLine

	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	ShippingAmount decimal.Decimal
	GrandTotal     decimal.Decimal
	AmountPaid     decimal.Decimal
	BalanceDue     decimal.Decimal

	Notes string
}

// OrderDocumentLine una línea de la orden en el documento.
type OrderDocumentLine struct {
	SKU       string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
}

// GenerateOrderPDFUseCase arma el documento de una orden y lo renderiza a PDF.
type GenerateOrderPDFUseCase struct {
	salesRepo    repository.SalesTransactionRepository
	itemRepo     repository.SalesTransactionItemRepository
	customerRepo repository.CustomerRepository
	invRepo      repository.InventoryItemRepository
	generator    PDFGenerator
}

func NewGenerateOrderPDFUseCase(
	salesRepo repository.SalesTransactionRepository,
	itemRepo repository.SalesTransactionItemRepository,
	customerRepo repository.CustomerRepository,
	invRepo repository.InventoryItemRepository,
	generator PDFGenerator,
) *GenerateOrderPDFUseCase {
	return &GenerateOrderPDFUseCase{
		salesRepo:    salesRepo,
		itemRepo:     itemRepo,
		customerRepo: customerRepo,
		invRepo:      invRepo,
		generator:    generator,
	}
}

// Execute devuelve los bytes del PDF de la orden.
func (uc *GenerateOrderPDFUseCase) Execute(ctx context.Context, transactionID string) ([]byte, error) {
	tx, err := uc.salesRepo.GetByID(transactionID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNotFound, transactionID)
	}

	doc := &OrderDocument{
		TransactionID:   tx.TransactionID,
		InvoiceNumber:   tx.InvoiceNumber,
		Status:          string(tx.Status),
		PaymentStatus:   string(tx.PaymentStatus),
		PaymentTerms:    string(tx.PaymentTerms),
		OrderDate:       tx.OrderDate,
		PaymentDueDate:  tx.PaymentDueDate,
		ShippingAddress: tx.ShippingAddress,
		BillingAddress:  tx.BillingAddress,
		Subtotal:        tx.Subtotal,
		DiscountAmount:  tx.DiscountAmount,
		TaxAmount:       tx.TaxAmount,
		ShippingAmount:  tx.ShippingAmount,
		GrandTotal:      tx.GrandTotal,
		AmountPaid:      tx.AmountPaid,
		BalanceDue:      tx.BalanceDue(),
		Notes:           tx.CustomerNotes,
	}

	customer, err := uc.customerRepo.GetByID(tx.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer != nil {
		doc.CustomerName = customer.Name
		doc.CustomerTaxID = customer.TaxID
		doc.CustomerEmail = customer.Email
	}

	items, err := uc.itemRepo.GetByTransaction(tx.ID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		line := OrderDocumentLine{
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.DiscountAmount,
			Tax:       item.TaxAmount,
			Total:     item.Total,
		}
		if inv, err := uc.invRepo.GetByID(item.InventoryItemID); err == nil && inv != nil {
			line.SKU = inv.SKU
			line.Name = inv.Name
		}
		doc.Lines = append(doc.Lines, line)
	}

	return uc.generator.GenerateOrderPDF(ctx, doc)
}

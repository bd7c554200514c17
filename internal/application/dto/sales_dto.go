package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesItemRequest una línea al crear una orden de venta.
// UnitPrice nulo o cero toma el precio del maestro de ítems.
type SalesItemRequest struct {
	ItemID             string           `json:"item_id" validate:"required"`
	WarehouseID        string           `json:"warehouse_id" validate:"required"`
	Quantity           int              `json:"quantity" validate:"required,min=1"`
	UnitPrice          *decimal.Decimal `json:"unit_price"`
	DiscountPercentage decimal.Decimal  `json:"discount_percentage" validate:"min=0,max=100"`
	DiscountAmount     decimal.Decimal  `json:"discount_amount"`
	TaxRate            *decimal.Decimal `json:"tax_rate" validate:"omitempty,min=0,max=100"`
	SerialNumbers      []string         `json:"serial_numbers"`
	Notes              string           `json:"notes"`
}

// CreateSalesTransactionRequest entrada para crear una orden de venta.
type CreateSalesTransactionRequest struct {
	CustomerID          string             `json:"customer_id" validate:"required"`
	Items               []SalesItemRequest `json:"items" validate:"required,min=1"`
	OrderDate           *time.Time         `json:"order_date"`
	DeliveryDate        *time.Time         `json:"delivery_date"`
	PaymentTerms        string             `json:"payment_terms"`
	ShippingAmount      decimal.Decimal    `json:"shipping_amount"`
	ShippingAddress     string             `json:"shipping_address"`
	BillingAddress      string             `json:"billing_address"`
	PurchaseOrderNumber string             `json:"purchase_order_number"`
	SalesPersonID       string             `json:"sales_person_id"`
	Notes               string             `json:"notes"`
	CustomerNotes       string             `json:"customer_notes"`
}

// UpdatePaymentRequest entrada para registrar un pago. AmountPaid es el monto
// total pagado a la fecha, no un incremento.
type UpdatePaymentRequest struct {
	AmountPaid decimal.Decimal `json:"amount_paid" validate:"required"`
	Notes      string          `json:"notes"`
}

// UpdateItemPriceRequest entrada para cambiar el precio de una línea (solo DRAFT).
type UpdateItemPriceRequest struct {
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
}

// DeliverRequest entrada opcional al marcar entrega.
type DeliverRequest struct {
	DeliveryDate *time.Time `json:"delivery_date"`
}

// SalesItemResponse una línea de la orden en respuestas.
type SalesItemResponse struct {
	ID                 string          `json:"id"`
	ItemID             string          `json:"item_id"`
	WarehouseID        string          `json:"warehouse_id"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	TaxRate            decimal.Decimal `json:"tax_rate"`
	TaxAmount          decimal.Decimal `json:"tax_amount"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	Total              decimal.Decimal `json:"total"`
	SerialNumbers      []string        `json:"serial_numbers,omitempty"`
	Notes              string          `json:"notes,omitempty"`
}

// SalesTransactionResponse salida de una orden de venta.
type SalesTransactionResponse struct {
	ID                  string              `json:"id"`
	TransactionID       string              `json:"transaction_id"`
	InvoiceNumber       string              `json:"invoice_number"`
	CustomerID          string              `json:"customer_id"`
	CustomerName        string              `json:"customer_name,omitempty"`
	OrderDate           time.Time           `json:"order_date"`
	DeliveryDate        *time.Time          `json:"delivery_date,omitempty"`
	Status              string              `json:"status"`
	PaymentStatus       string              `json:"payment_status"`
	PaymentTerms        string              `json:"payment_terms"`
	PaymentDueDate      *time.Time          `json:"payment_due_date,omitempty"`
	Subtotal            decimal.Decimal     `json:"subtotal"`
	DiscountAmount      decimal.Decimal     `json:"discount_amount"`
	TaxAmount           decimal.Decimal     `json:"tax_amount"`
	ShippingAmount      decimal.Decimal     `json:"shipping_amount"`
	GrandTotal          decimal.Decimal     `json:"grand_total"`
	AmountPaid          decimal.Decimal     `json:"amount_paid"`
	BalanceDue          decimal.Decimal     `json:"balance_due"`
	ShippingAddress     string              `json:"shipping_address,omitempty"`
	BillingAddress      string              `json:"billing_address,omitempty"`
	PurchaseOrderNumber string              `json:"purchase_order_number,omitempty"`
	Notes               string              `json:"notes,omitempty"`
	Items               []SalesItemResponse `json:"items,omitempty"`
}

// SalesTransactionListResponse lista paginada de órdenes.
type SalesTransactionListResponse struct {
	Items []SalesTransactionResponse `json:"items"`
	Page  PageResponse               `json:"page"`
}

// ReturnItemRequest una línea al procesar una devolución.
type ReturnItemRequest struct {
	SalesItemID   string   `json:"sales_item_id" validate:"required"`
	Quantity      int      `json:"quantity" validate:"required,min=1"`
	Condition     string   `json:"condition" validate:"required"`
	SerialNumbers []string `json:"serial_numbers"`
}

// ProcessReturnRequest entrada para procesar una devolución.
type ProcessReturnRequest struct {
	Reason                  string              `json:"reason" validate:"required"`
	Items                   []ReturnItemRequest `json:"items" validate:"required,min=1"`
	RestockingFeePercentage decimal.Decimal     `json:"restocking_fee_percentage" validate:"min=0,max=100"`
}

// UpdateReturnRequest cambios permitidos sobre una devolución sin aprobar.
type UpdateReturnRequest struct {
	Reason                  string           `json:"reason"`
	RestockingFeePercentage *decimal.Decimal `json:"restocking_fee_percentage" validate:"omitempty,min=0,max=100"`
}

// ReturnItemResponse una línea devuelta en respuestas.
type ReturnItemResponse struct {
	ID            string   `json:"id"`
	SalesItemID   string   `json:"sales_item_id"`
	Quantity      int      `json:"quantity"`
	Condition     string   `json:"condition"`
	Resellable    bool     `json:"resellable"`
	SerialNumbers []string `json:"serial_numbers,omitempty"`
}

// SalesReturnResponse salida de una devolución.
type SalesReturnResponse struct {
	ID                 string               `json:"id"`
	ReturnID           string               `json:"return_id"`
	SalesTransactionID string               `json:"sales_transaction_id"`
	ReturnDate         time.Time            `json:"return_date"`
	Reason             string               `json:"reason"`
	ApprovedByID       string               `json:"approved_by_id,omitempty"`
	IsApproved         bool                 `json:"is_approved"`
	RefundAmount       decimal.Decimal      `json:"refund_amount"`
	RestockingFee      decimal.Decimal      `json:"restocking_fee"`
	NetRefundAmount    decimal.Decimal      `json:"net_refund_amount"`
	Items              []ReturnItemResponse `json:"items,omitempty"`
}

// SalesSummaryResponse agregados de ventas de un período.
type SalesSummaryResponse struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	TotalOrders   int             `json:"total_orders"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
}

// ReturnSummaryResponse agregados de devoluciones de un período.
type ReturnSummaryResponse struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	TotalReturns  int             `json:"total_returns"`
	TotalRefunded decimal.Decimal `json:"total_refunded"`
	TotalFees     decimal.Decimal `json:"total_fees"`
}

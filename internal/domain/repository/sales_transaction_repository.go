package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/sales"
)

// TransactionFilter filtros para listar órdenes de venta.
type TransactionFilter struct {
	CustomerID    string
	Status        sales.Status
	PaymentStatus sales.PaymentStatus
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}

// SalesSummary agregados de ventas para un período. La forma se consume tal
// cual viene de la consulta, sin recálculo local.
type SalesSummary struct {
	TotalOrders   int
	TotalRevenue  decimal.Decimal
	TotalTax      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalPaid     decimal.Decimal
}

// SalesTransactionRepository define el puerto de persistencia para órdenes de venta.
type SalesTransactionRepository interface {
	Create(tx *entity.SalesTransaction) error
	GetByID(id string) (*entity.SalesTransaction, error)
	GetByTransactionID(transactionID string) (*entity.SalesTransaction, error)
	Update(tx *entity.SalesTransaction) error
	List(filter TransactionFilter) ([]*entity.SalesTransaction, error)
	// ListOverdue órdenes impagas cuya fecha de vencimiento ya pasó a la fecha
	// dada, sin importar el payment_status persistido (OVERDUE se deriva).
	ListOverdue(asOf time.Time, limit, offset int) ([]*entity.SalesTransaction, error)
	// UpdatePaymentStatus actualiza solo el estado de pago (usado por devoluciones).
	UpdatePaymentStatus(id string, status sales.PaymentStatus, amountPaid decimal.Decimal) error
	// GetCustomerOutstandingBalance suma de saldos (grand_total - amount_paid)
	// de las órdenes impagas y activas del cliente.
	GetCustomerOutstandingBalance(customerID string) (decimal.Decimal, error)
	GetSalesSummary(from, to time.Time) (*SalesSummary, error)
}

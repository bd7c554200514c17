package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/internal/domain/sales"
)

var _ repository.SalesTransactionRepository = (*SalesTransactionRepo)(nil)

// SalesTransactionRepo implementación de SalesTransactionRepository (usable con pool o tx).
type SalesTransactionRepo struct {
	q Querier
}

// NewSalesTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesTransactionRepository(q Querier) *SalesTransactionRepo {
	return &SalesTransactionRepo{q: q}
}

const salesTransactionColumns = `
	id, transaction_id, invoice_number, customer_id, order_date, delivery_date,
	status, payment_status, payment_terms, payment_due_date,
	subtotal, discount_amount, tax_amount, shipping_amount, grand_total, amount_paid,
	shipping_address, billing_address, purchase_order_number, sales_person_id,
	notes, customer_notes, is_active, created_at, updated_at, created_by`

// Create persiste una orden de venta nueva.
func (r *SalesTransactionRepo) Create(t *entity.SalesTransaction) error {
	query := `
		INSERT INTO sales_transactions (` + salesTransactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.TransactionID, t.InvoiceNumber, t.CustomerID, t.OrderDate, t.DeliveryDate,
		t.Status, t.PaymentStatus, t.PaymentTerms, t.PaymentDueDate,
		t.Subtotal, t.DiscountAmount, t.TaxAmount, t.ShippingAmount, t.GrandTotal, t.AmountPaid,
		t.ShippingAddress, t.BillingAddress, t.PurchaseOrderNumber, t.SalesPersonID,
		t.Notes, t.CustomerNotes, t.IsActive, t.CreatedAt, t.UpdatedAt, t.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sales transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por su ID interno.
func (r *SalesTransactionRepo) GetByID(id string) (*entity.SalesTransaction, error) {
	query := `SELECT ` + salesTransactionColumns + ` FROM sales_transactions WHERE id = $1 AND is_active`
	return r.getOne(query, id)
}

// GetByTransactionID obtiene una orden por su ID legible (SLS-…).
func (r *SalesTransactionRepo) GetByTransactionID(transactionID string) (*entity.SalesTransaction, error) {
	query := `SELECT ` + salesTransactionColumns + ` FROM sales_transactions WHERE transaction_id = $1 AND is_active`
	return r.getOne(query, transactionID)
}

func (r *SalesTransactionRepo) getOne(query string, arg any) (*entity.SalesTransaction, error) {
	var t entity.SalesTransaction
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&t.ID, &t.TransactionID, &t.InvoiceNumber, &t.CustomerID, &t.OrderDate, &t.DeliveryDate,
		&t.Status, &t.PaymentStatus, &t.PaymentTerms, &t.PaymentDueDate,
		&t.Subtotal, &t.DiscountAmount, &t.TaxAmount, &t.ShippingAmount, &t.GrandTotal, &t.AmountPaid,
		&t.ShippingAddress, &t.BillingAddress, &t.PurchaseOrderNumber, &t.SalesPersonID,
		&t.Notes, &t.CustomerNotes, &t.IsActive, &t.CreatedAt, &t.UpdatedAt, &t.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales transaction: %w", err)
	}
	return &t, nil
}

// Update persiste los campos mutables de la orden.
func (r *SalesTransactionRepo) Update(t *entity.SalesTransaction) error {
	query := `
		UPDATE sales_transactions SET
			delivery_date = $2, status = $3, payment_status = $4, payment_due_date = $5,
			subtotal = $6, discount_amount = $7, tax_amount = $8, shipping_amount = $9,
			grand_total = $10, amount_paid = $11, shipping_address = $12, billing_address = $13,
			notes = $14, customer_notes = $15, is_active = $16, updated_at = $17
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		t.ID, t.DeliveryDate, t.Status, t.PaymentStatus, t.PaymentDueDate,
		t.Subtotal, t.DiscountAmount, t.TaxAmount, t.ShippingAmount,
		t.GrandTotal, t.AmountPaid, t.ShippingAddress, t.BillingAddress,
		t.Notes, t.CustomerNotes, t.IsActive, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sales transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista órdenes con filtros opcionales, más recientes primero.
func (r *SalesTransactionRepo) List(filter repository.TransactionFilter) ([]*entity.SalesTransaction, error) {
	query := `
		SELECT ` + salesTransactionColumns + `
		FROM sales_transactions
		WHERE is_active
		  AND ($1 = '' OR customer_id = $1)
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR payment_status = $3)
		  AND ($4::timestamptz IS NULL OR order_date >= $4)
		  AND ($5::timestamptz IS NULL OR order_date <= $5)
		ORDER BY order_date DESC, created_at DESC
		LIMIT $6 OFFSET $7`
	rows, err := r.q.Query(context.Background(), query,
		filter.CustomerID, string(filter.Status), string(filter.PaymentStatus),
		filter.From, filter.To, filter.Limit, filter.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list sales transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesTransaction
	for rows.Next() {
		var t entity.SalesTransaction
		if err := rows.Scan(
			&t.ID, &t.TransactionID, &t.InvoiceNumber, &t.CustomerID, &t.OrderDate, &t.DeliveryDate,
			&t.Status, &t.PaymentStatus, &t.PaymentTerms, &t.PaymentDueDate,
			&t.Subtotal, &t.DiscountAmount, &t.TaxAmount, &t.ShippingAmount, &t.GrandTotal, &t.AmountPaid,
			&t.ShippingAddress, &t.BillingAddress, &t.PurchaseOrderNumber, &t.SalesPersonID,
			&t.Notes, &t.CustomerNotes, &t.IsActive, &t.CreatedAt, &t.UpdatedAt, &t.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan sales transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// ListOverdue órdenes impagas con vencimiento anterior a asOf. Filtra por la
// fecha, no por el payment_status persistido: una orden que pasó su fecha sin
// ningún abono sigue guardada como PENDING.
func (r *SalesTransactionRepo) ListOverdue(asOf time.Time, limit, offset int) ([]*entity.SalesTransaction, error) {
	query := `
		SELECT ` + salesTransactionColumns + `
		FROM sales_transactions
		WHERE is_active
		  AND status <> 'CANCELLED'
		  AND payment_status IN ('PENDING', 'PARTIAL', 'OVERDUE')
		  AND payment_due_date IS NOT NULL
		  AND payment_due_date < $1
		ORDER BY payment_due_date ASC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, asOf, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list overdue transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesTransaction
	for rows.Next() {
		var t entity.SalesTransaction
		if err := rows.Scan(
			&t.ID, &t.TransactionID, &t.InvoiceNumber, &t.CustomerID, &t.OrderDate, &t.DeliveryDate,
			&t.Status, &t.PaymentStatus, &t.PaymentTerms, &t.PaymentDueDate,
			&t.Subtotal, &t.DiscountAmount, &t.TaxAmount, &t.ShippingAmount, &t.GrandTotal, &t.AmountPaid,
			&t.ShippingAddress, &t.BillingAddress, &t.PurchaseOrderNumber, &t.SalesPersonID,
			&t.Notes, &t.CustomerNotes, &t.IsActive, &t.CreatedAt, &t.UpdatedAt, &t.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan sales transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// UpdatePaymentStatus actualiza solo el estado de pago y el monto pagado.
func (r *SalesTransactionRepo) UpdatePaymentStatus(id string, status sales.PaymentStatus, amountPaid decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sales_transactions SET payment_status = $2, amount_paid = $3, updated_at = now() WHERE id = $1`,
		id, status, amountPaid,
	)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetCustomerOutstandingBalance suma de saldos de las órdenes impagas y activas del cliente.
func (r *SalesTransactionRepo) GetCustomerOutstandingBalance(customerID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(grand_total - amount_paid), 0)
		FROM sales_transactions
		WHERE customer_id = $1 AND is_active
		  AND status <> 'CANCELLED'
		  AND payment_status IN ('PENDING', 'PARTIAL', 'OVERDUE')`
	var balance decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, customerID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("get outstanding balance: %w", err)
	}
	return balance, nil
}

// GetSalesSummary agregados de ventas del período (órdenes no canceladas).
func (r *SalesTransactionRepo) GetSalesSummary(from, to time.Time) (*repository.SalesSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(grand_total), 0),
		       COALESCE(SUM(tax_amount), 0),
		       COALESCE(SUM(discount_amount), 0),
		       COALESCE(SUM(amount_paid), 0)
		FROM sales_transactions
		WHERE is_active AND status <> 'CANCELLED'
		  AND order_date >= $1 AND order_date <= $2`
	var s repository.SalesSummary
	err := r.q.QueryRow(context.Background(), query, from, to).Scan(
		&s.TotalOrders, &s.TotalRevenue, &s.TotalTax, &s.TotalDiscount, &s.TotalPaid,
	)
	if err != nil {
		return nil, fmt.Errorf("get sales summary: %w", err)
	}
	return &s, nil
}

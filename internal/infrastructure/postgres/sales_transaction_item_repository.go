package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.SalesTransactionItemRepository = (*SalesTransactionItemRepo)(nil)

// SalesTransactionItemRepo implementación de SalesTransactionItemRepository (usable con pool o tx).
type SalesTransactionItemRepo struct {
	q Querier
}

// NewSalesTransactionItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesTransactionItemRepository(q Querier) *SalesTransactionItemRepo {
	return &SalesTransactionItemRepo{q: q}
}

const salesItemColumns = `
	id, transaction_id, inventory_item_id, warehouse_id, quantity,
	unit_price, cost_price, discount_percentage, discount_amount,
	tax_rate, tax_amount, subtotal, total, serial_numbers, notes,
	is_active, created_at, updated_at, created_by`

// Create persiste una línea de venta.
func (r *SalesTransactionItemRepo) Create(i *entity.SalesTransactionItem) error {
	query := `
		INSERT INTO sales_transaction_items (` + salesItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		i.ID, i.TransactionID, i.InventoryItemID, i.WarehouseID, i.Quantity,
		i.UnitPrice, i.CostPrice, i.DiscountPercentage, i.DiscountAmount,
		i.TaxRate, i.TaxAmount, i.Subtotal, i.Total, i.SerialNumbers, i.Notes,
		i.IsActive, i.CreatedAt, i.UpdatedAt, i.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert sales item: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID.
func (r *SalesTransactionItemRepo) GetByID(id string) (*entity.SalesTransactionItem, error) {
	query := `SELECT ` + salesItemColumns + ` FROM sales_transaction_items WHERE id = $1 AND is_active`
	var i entity.SalesTransactionItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&i.ID, &i.TransactionID, &i.InventoryItemID, &i.WarehouseID, &i.Quantity,
		&i.UnitPrice, &i.CostPrice, &i.DiscountPercentage, &i.DiscountAmount,
		&i.TaxRate, &i.TaxAmount, &i.Subtotal, &i.Total, &i.SerialNumbers, &i.Notes,
		&i.IsActive, &i.CreatedAt, &i.UpdatedAt, &i.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales item: %w", err)
	}
	return &i, nil
}

// GetByTransaction líneas activas de una orden, en orden de creación.
func (r *SalesTransactionItemRepo) GetByTransaction(transactionID string) ([]*entity.SalesTransactionItem, error) {
	query := `
		SELECT ` + salesItemColumns + `
		FROM sales_transaction_items
		WHERE transaction_id = $1 AND is_active
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list sales items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesTransactionItem
	for rows.Next() {
		var i entity.SalesTransactionItem
		if err := rows.Scan(
			&i.ID, &i.TransactionID, &i.InventoryItemID, &i.WarehouseID, &i.Quantity,
			&i.UnitPrice, &i.CostPrice, &i.DiscountPercentage, &i.DiscountAmount,
			&i.TaxRate, &i.TaxAmount, &i.Subtotal, &i.Total, &i.SerialNumbers, &i.Notes,
			&i.IsActive, &i.CreatedAt, &i.UpdatedAt, &i.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan sales item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// Update persiste los campos mutables de la línea.
func (r *SalesTransactionItemRepo) Update(i *entity.SalesTransactionItem) error {
	query := `
		UPDATE sales_transaction_items SET
			unit_price = $2, discount_percentage = $3, discount_amount = $4,
			tax_rate = $5, tax_amount = $6, subtotal = $7, total = $8,
			notes = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		i.ID, i.UnitPrice, i.DiscountPercentage, i.DiscountAmount,
		i.TaxRate, i.TaxAmount, i.Subtotal, i.Total, i.Notes, i.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sales item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate borrado lógico de una línea.
func (r *SalesTransactionItemRepo) Deactivate(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sales_transaction_items SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate sales item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

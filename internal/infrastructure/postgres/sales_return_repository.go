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
)

var _ repository.SalesReturnRepository = (*SalesReturnRepo)(nil)

// SalesReturnRepo implementación de SalesReturnRepository (usable con pool o tx).
type SalesReturnRepo struct {
	q Querier
}

// NewSalesReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesReturnRepository(q Querier) *SalesReturnRepo {
	return &SalesReturnRepo{q: q}
}

const salesReturnColumns = `
	id, return_id, sales_transaction_id, return_date, reason, approved_by_id,
	refund_amount, restocking_fee, is_active, created_at, updated_at, created_by`

// Create persiste una devolución nueva.
func (r *SalesReturnRepo) Create(ret *entity.SalesReturn) error {
	query := `
		INSERT INTO sales_returns (` + salesReturnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.ReturnID, ret.SalesTransactionID, ret.ReturnDate, ret.Reason, ret.ApprovedByID,
		ret.RefundAmount, ret.RestockingFee, ret.IsActive, ret.CreatedAt, ret.UpdatedAt, ret.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sales return: %w", err)
	}
	return nil
}

// GetByID obtiene una devolución por ID interno o por su ID legible (SRT-…).
func (r *SalesReturnRepo) GetByID(id string) (*entity.SalesReturn, error) {
	query := `
		SELECT ` + salesReturnColumns + `
		FROM sales_returns WHERE (id = $1 OR return_id = $1) AND is_active`
	var ret entity.SalesReturn
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&ret.ID, &ret.ReturnID, &ret.SalesTransactionID, &ret.ReturnDate, &ret.Reason, &ret.ApprovedByID,
		&ret.RefundAmount, &ret.RestockingFee, &ret.IsActive, &ret.CreatedAt, &ret.UpdatedAt, &ret.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales return: %w", err)
	}
	return &ret, nil
}

// Update persiste los campos mutables de la devolución.
func (r *SalesReturnRepo) Update(ret *entity.SalesReturn) error {
	query := `
		UPDATE sales_returns SET
			reason = $2, approved_by_id = $3, refund_amount = $4,
			restocking_fee = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.Reason, ret.ApprovedByID, ret.RefundAmount,
		ret.RestockingFee, ret.IsActive, ret.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sales return: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByTransaction devoluciones activas de una orden, más recientes primero.
func (r *SalesReturnRepo) ListByTransaction(salesTransactionID string) ([]*entity.SalesReturn, error) {
	query := `
		SELECT ` + salesReturnColumns + `
		FROM sales_returns
		WHERE sales_transaction_id = $1 AND is_active
		ORDER BY return_date DESC`
	rows, err := r.q.Query(context.Background(), query, salesTransactionID)
	if err != nil {
		return nil, fmt.Errorf("list sales returns: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesReturn
	for rows.Next() {
		var ret entity.SalesReturn
		if err := rows.Scan(
			&ret.ID, &ret.ReturnID, &ret.SalesTransactionID, &ret.ReturnDate, &ret.Reason, &ret.ApprovedByID,
			&ret.RefundAmount, &ret.RestockingFee, &ret.IsActive, &ret.CreatedAt, &ret.UpdatedAt, &ret.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan sales return: %w", err)
		}
		list = append(list, &ret)
	}
	return list, rows.Err()
}

// GetTotalRefundAmount suma de reembolsos de las devoluciones activas de una orden.
func (r *SalesReturnRepo) GetTotalRefundAmount(salesTransactionID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(refund_amount), 0) FROM sales_returns WHERE sales_transaction_id = $1 AND is_active`,
		salesTransactionID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get total refund amount: %w", err)
	}
	return total, nil
}

// GetReturnSummary agregados de devoluciones del período.
func (r *SalesReturnRepo) GetReturnSummary(from, to time.Time) (*repository.ReturnSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(refund_amount), 0),
		       COALESCE(SUM(restocking_fee), 0)
		FROM sales_returns
		WHERE is_active AND return_date >= $1 AND return_date <= $2`
	var s repository.ReturnSummary
	if err := r.q.QueryRow(context.Background(), query, from, to).Scan(
		&s.TotalReturns, &s.TotalRefunded, &s.TotalFees,
	); err != nil {
		return nil, fmt.Errorf("get return summary: %w", err)
	}
	return &s, nil
}

var _ repository.SalesReturnItemRepository = (*SalesReturnItemRepo)(nil)

// SalesReturnItemRepo implementación de SalesReturnItemRepository (usable con pool o tx).
type SalesReturnItemRepo struct {
	q Querier
}

// NewSalesReturnItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesReturnItemRepository(q Querier) *SalesReturnItemRepo {
	return &SalesReturnItemRepo{q: q}
}

// Create persiste una línea devuelta.
func (r *SalesReturnItemRepo) Create(item *entity.SalesReturnItem) error {
	query := `
		INSERT INTO sales_return_items
			(id, sales_return_id, sales_item_id, quantity, condition, serial_numbers,
			 is_active, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SalesReturnID, item.SalesItemID, item.Quantity, item.Condition, item.SerialNumbers,
		item.IsActive, item.CreatedAt, item.UpdatedAt, item.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert return item: %w", err)
	}
	return nil
}

// GetByReturn líneas activas de una devolución.
func (r *SalesReturnItemRepo) GetByReturn(salesReturnID string) ([]*entity.SalesReturnItem, error) {
	query := `
		SELECT id, sales_return_id, sales_item_id, quantity, condition, serial_numbers,
		       is_active, created_at, updated_at, created_by
		FROM sales_return_items
		WHERE sales_return_id = $1 AND is_active
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, salesReturnID)
	if err != nil {
		return nil, fmt.Errorf("list return items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesReturnItem
	for rows.Next() {
		var item entity.SalesReturnItem
		if err := rows.Scan(
			&item.ID, &item.SalesReturnID, &item.SalesItemID, &item.Quantity, &item.Condition, &item.SerialNumbers,
			&item.IsActive, &item.CreatedAt, &item.UpdatedAt, &item.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan return item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// GetTotalReturnedQuantity suma de cantidades ya devueltas contra una línea
// original, considerando solo devoluciones activas.
func (r *SalesReturnItemRepo) GetTotalReturnedQuantity(salesItemID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0)
		 FROM sales_return_items ri
		 JOIN sales_returns sr ON sr.id = ri.sales_return_id
		 WHERE ri.sales_item_id = $1 AND ri.is_active AND sr.is_active`,
		salesItemID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("get total returned quantity: %w", err)
	}
	return total, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appsales "github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ appsales.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSales inicia una transacción con los repos del ciclo de vida de la orden
// y hace Commit o Rollback según el resultado de fn.
func (r *TxRunner) RunSales(ctx context.Context, fn func(
	salesRepo repository.SalesTransactionRepository,
	itemRepo repository.SalesTransactionItemRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewSalesTransactionRepository(tx),
		NewSalesTransactionItemRepository(tx),
		NewStockRepository(tx),
		NewStockMovementRepository(tx),
		NewSequenceRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunReturns inicia una transacción con los repos del flujo de devoluciones.
func (r *TxRunner) RunReturns(ctx context.Context, fn func(
	salesRepo repository.SalesTransactionRepository,
	itemRepo repository.SalesTransactionItemRepository,
	returnRepo repository.SalesReturnRepository,
	returnItemRepo repository.SalesReturnItemRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewSalesTransactionRepository(tx),
		NewSalesTransactionItemRepository(tx),
		NewSalesReturnRepository(tx),
		NewSalesReturnItemRepository(tx),
		NewStockRepository(tx),
		NewStockMovementRepository(tx),
		NewSequenceRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

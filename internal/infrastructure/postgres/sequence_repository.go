package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/internal/domain/sales"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo asigna IDs legibles (SLS-AAA0001, SRT-AAA0001) sobre una tabla
// de contadores por prefijo. El bloqueo de fila (FOR UPDATE) serializa las
// asignaciones concurrentes; usar siempre dentro de una transacción.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar la tx del caller.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// NextID toma el último ID emitido para el prefijo, calcula el siguiente y lo
// persiste antes de devolverlo.
func (r *SequenceRepo) NextID(prefix string) (string, error) {
	ctx := context.Background()

	// Asegurar la fila del contador; DO NOTHING si otro proceso ya la creó.
	if _, err := r.q.Exec(ctx,
		`INSERT INTO id_sequences (prefix, last_id) VALUES ($1, '') ON CONFLICT (prefix) DO NOTHING`,
		prefix,
	); err != nil {
		return "", fmt.Errorf("ensure sequence row: %w", err)
	}

	var lastID string
	if err := r.q.QueryRow(ctx,
		`SELECT last_id FROM id_sequences WHERE prefix = $1 FOR UPDATE`,
		prefix,
	).Scan(&lastID); err != nil {
		return "", fmt.Errorf("lock sequence row: %w", err)
	}

	// NextID arranca la secuencia desde el comienzo si last_id está vacío.
	next := sales.NextID(lastID, prefix)

	if _, err := r.q.Exec(ctx,
		`UPDATE id_sequences SET last_id = $2, updated_at = now() WHERE prefix = $1`,
		prefix, next,
	); err != nil {
		return "", fmt.Errorf("advance sequence: %w", err)
	}
	return next, nil
}

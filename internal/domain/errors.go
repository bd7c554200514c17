package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrConflict               = errors.New("conflicto con el estado actual")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrInvalidStateTransition = errors.New("transición de estado no permitida")
	ErrCreditLimitExceeded    = errors.New("límite de crédito excedido")
	ErrAlreadyApproved        = errors.New("devolución ya aprobada")
)

// StockError detalla un faltante de stock: qué ítem, en qué bodega,
// cuánto hay y cuánto se pidió. errors.Is(err, ErrInsufficientStock) == true.
type StockError struct {
	ItemID      string
	WarehouseID string
	Available   int
	Requested   int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("stock insuficiente para ítem %s en bodega %s: disponible %d, solicitado %d",
		e.ItemID, e.WarehouseID, e.Available, e.Requested)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente. CreditLimit cero = sin límite de crédito
// (la comparación contra el saldo pendiente solo aplica con límite > 0).
type Customer struct {
	ID          string
	Name        string
	TaxID       string
	Email       string
	Phone       string
	Address     string
	CreditLimit decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

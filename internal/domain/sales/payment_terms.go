package sales

import "time"

// PaymentTerms término de pago acordado con el cliente.
type PaymentTerms string

const (
	TermsIMMEDIATE PaymentTerms = "IMMEDIATE"
	TermsNET15     PaymentTerms = "NET_15"
	TermsNET30     PaymentTerms = "NET_30"
	TermsNET45     PaymentTerms = "NET_45"
	TermsNET60     PaymentTerms = "NET_60"
	TermsNET90     PaymentTerms = "NET_90"
	TermsCOD       PaymentTerms = "COD"
	TermsPREPAID   PaymentTerms = "PREPAID"
)

// termDays días de plazo por término. IMMEDIATE, COD y PREPAID vencen el mismo día.
var termDays = map[PaymentTerms]int{
	TermsIMMEDIATE: 0,
	TermsNET15:     15,
	TermsNET30:     30,
	TermsNET45:     45,
	TermsNET60:     60,
	TermsNET90:     90,
	TermsCOD:       0,
	TermsPREPAID:   0,
}

// IsValid verifica que el término pertenezca al conjunto cerrado.
func (t PaymentTerms) IsValid() bool {
	_, ok := termDays[t]
	return ok
}

// Days número de días hasta el vencimiento.
func (t PaymentTerms) Days() int {
	return termDays[t]
}

// DueDate fecha de vencimiento: order_date + días del término.
func (t PaymentTerms) DueDate(orderDate time.Time) time.Time {
	return orderDate.AddDate(0, 0, t.Days())
}

// RequiresCreditCheck los términos NET extienden crédito al cliente.
func (t PaymentTerms) RequiresCreditCheck() bool {
	switch t {
	case TermsNET15, TermsNET30, TermsNET45, TermsNET60, TermsNET90:
		return true
	}
	return false
}

// Package sales contiene los value objects y la lógica pura del ciclo de vida
// de una orden de venta: máquinas de estado, términos de pago, cálculo de
// totales por línea y secuencias de identificadores legibles (SLS/SRT).
package sales

// Status estado del ciclo de vida de una orden de venta.
type Status string

const (
	StatusDRAFT      Status = "DRAFT"      // en edición
	StatusCONFIRMED  Status = "CONFIRMED"  // confirmada, stock asignado
	StatusPROCESSING Status = "PROCESSING" // en preparación
	StatusSHIPPED    Status = "SHIPPED"    // despachada
	StatusDELIVERED  Status = "DELIVERED"  // entregada (terminal)
	StatusCANCELLED  Status = "CANCELLED"  // cancelada (terminal)
)

// validTransitions tabla estática de transiciones permitidas (origen → destinos).
var validTransitions = map[Status][]Status{
	StatusDRAFT:      {StatusCONFIRMED, StatusCANCELLED},
	StatusCONFIRMED:  {StatusPROCESSING, StatusCANCELLED},
	StatusPROCESSING: {StatusSHIPPED, StatusCANCELLED},
	StatusSHIPPED:    {StatusDELIVERED},
	StatusDELIVERED:  {},
	StatusCANCELLED:  {},
}

// IsValid verifica que el estado pertenezca al conjunto cerrado.
func (s Status) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo consulta la tabla de transiciones.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal indica si el estado no admite más transiciones.
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0 && s.IsValid()
}

// IsEditable solo DRAFT permite agregar/quitar ítems o cambiar precios.
func (s Status) IsEditable() bool {
	return s == StatusDRAFT
}

// CanCancel solo DRAFT, CONFIRMED y PROCESSING son cancelables.
func (s Status) CanCancel() bool {
	return s == StatusDRAFT || s == StatusCONFIRMED || s == StatusPROCESSING
}

// CanProcessReturn las devoluciones solo proceden desde SHIPPED o DELIVERED.
func (s Status) CanProcessReturn() bool {
	return s == StatusSHIPPED || s == StatusDELIVERED
}

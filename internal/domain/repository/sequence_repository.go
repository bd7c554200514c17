package repository

// SequenceRepository asigna identificadores legibles por prefijo (SLS-, SRT-).
// La implementación debe ser atómica frente a llamadas concurrentes.
type SequenceRepository interface {
	NextID(prefix string) (string, error)
}

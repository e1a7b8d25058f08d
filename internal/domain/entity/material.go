package entity

import "time"

// Estados del catálogo de materiales. Solo los materiales activos
// participan en el cálculo de necesidades.
const (
	MaterialStatusActive   = "active"
	MaterialStatusInactive = "inactive"
)

// Material es una entrada del catálogo de materiales (material_catalog).
// Dato de referencia: el motor de necesidades solo lo lee.
type Material struct {
	ID          string
	AccountID   string
	Code        string
	Name        string
	UnitMeasure string // "un", "kg", "m", etc.
	Status      string // active | inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive indica si el material participa en el netting.
func (m *Material) IsActive() bool {
	return m.Status == MaterialStatusActive
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un período de necesidades. pending es el único estado abierto;
// ordered indica orden de compra emitida; received es terminal.
const (
	RequirementStatusPending  = "pending"
	RequirementStatusOrdered  = "ordered"
	RequirementStatusReceived = "received"
)

// RequirementPeriod es un registro persistido de necesidades de un material
// para un período (material_requirements_periods). Invariante: a lo sumo un
// registro pending por material y cuenta; el motor de unificación lo garantiza.
type RequirementPeriod struct {
	ID               string
	AccountID        string
	MaterialID       string
	PeriodStart      time.Time
	PeriodEnd        time.Time
	QuantityNeeded   decimal.Decimal
	QuantityOrdered  decimal.Decimal
	QuantityReceived decimal.Decimal
	Status           string // pending | ordered | received
	PlansCount       int
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// InTransit devuelve la cantidad pedida y aún no recibida de este registro.
// Solo aplica a registros en estado ordered.
func (r *RequirementPeriod) InTransit() decimal.Decimal {
	if r.Status != RequirementStatusOrdered {
		return decimal.Zero
	}
	rest := r.QuantityOrdered.Sub(r.QuantityReceived)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}

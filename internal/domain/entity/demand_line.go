package entity

import "time"

// Estados accionables de una línea de plan de asignación. Una línea ya
// cumplida (fulfilled) o cancelada no genera demanda.
const (
	DemandStatusPending  = "pending"
	DemandStatusNotified = "notified"
)

// ActionableDemandStatuses son los estados que generan demanda de materiales.
var ActionableDemandStatuses = []string{DemandStatusPending, DemandStatusNotified}

// DemandLine es una línea programada de un plan de asignación
// (allocation_plan_details unida a su plan padre para obtener el producto).
// Efímera: se deriva del store en cada corrida y nunca se muta.
type DemandLine struct {
	ID               string
	AccountID        string
	PlanID           string
	ProductID        string // resuelto vía allocation_plans; vacío si el plan no existe
	ScheduledDate    time.Time
	Status           string
	OriginNodeID     string // vacío si la línea no tiene nodo de origen
	OriginPanelistID string // panelista explícito en la línea; vacío si no hay
}

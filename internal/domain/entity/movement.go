package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de materiales.
const (
	MovementTypeReceipt    = "receipt"    // entrada (recepción de PO o de envío)
	MovementTypeDispatch   = "dispatch"   // salida del regulador hacia panelista
	MovementTypeAdjustment = "adjustment" // ajuste manual de stock
)

// Tipos de ubicación referenciados por un movimiento.
const (
	LocationTypeRegulator = "regulator"
	LocationTypePanelist  = "panelist"
)

// Tipos de referencia de un movimiento.
const (
	ReferenceTypeShipment    = "shipment"
	ReferenceTypeRequirement = "requirement"
	ReferenceTypeManual      = "manual"
)

// Movement es un registro de auditoría de movimientos de materiales
// (material_movements). Solo se apendiza, nunca se muta.
type Movement struct {
	ID               string
	AccountID        string
	MaterialID       string
	MovementType     string // receipt | dispatch | adjustment
	Quantity         decimal.Decimal
	FromLocationType string // regulator | panelist | vacío
	FromLocationID   string
	ToLocationType   string
	ToLocationID     string
	ReferenceID      string
	ReferenceType    string // shipment | requirement | manual
	Notes            string
	CreatedBy        string
	CreatedAt        time.Time
}

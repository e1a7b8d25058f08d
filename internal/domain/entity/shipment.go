package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un envío a panelista. pending es el único estado abierto; al
// confirmarse (sent) se aplican los movimientos de stock y el envío se
// elimina, quedando los movimientos como rastro de auditoría.
const (
	ShipmentStatusPending   = "pending"
	ShipmentStatusSent      = "sent"
	ShipmentStatusCancelled = "cancelled"
)

// Shipment es un envío consolidado de materiales a un panelista
// (material_shipments). Invariante: a lo sumo un envío pending por
// panelista y cuenta.
type Shipment struct {
	ID             string
	AccountID      string
	ShipmentNumber string
	PanelistID     string
	Status         string // pending | sent | cancelled
	ExpectedDate   *time.Time
	ShipmentDate   *time.Time
	TrackingNumber string
	TotalItems     int
	Notes          string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Items          []ShipmentItem
}

// ShipmentItem es una línea de material dentro de un envío
// (material_shipment_items).
type ShipmentItem struct {
	ID           string
	AccountID    string
	ShipmentID   string
	MaterialID   string
	QuantitySent decimal.Decimal
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegulatorStockDTO stock del regulador para un material con sus niveles.
type RegulatorStockDTO struct {
	MaterialID  string           `json:"material_id"`
	Quantity    decimal.Decimal  `json:"quantity"`
	MinStock    *decimal.Decimal `json:"min_stock,omitempty"`
	MaxStock    *decimal.Decimal `json:"max_stock,omitempty"`
	LastUpdated time.Time        `json:"last_updated"`
}

// PanelistStockDTO stock de un material en poder de un panelista.
type PanelistStockDTO struct {
	PanelistID  string          `json:"panelist_id"`
	MaterialID  string          `json:"material_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	LastUpdated time.Time       `json:"last_updated"`
}

// UpsertRegulatorStockRequest ajuste manual del stock del regulador.
type UpsertRegulatorStockRequest struct {
	MaterialID string           `json:"material_id" validate:"required"`
	Quantity   decimal.Decimal  `json:"quantity"`
	MinStock   *decimal.Decimal `json:"min_stock"`
	MaxStock   *decimal.Decimal `json:"max_stock"`
	Notes      string           `json:"notes"`
}

// MovementDTO registro del log de movimientos.
type MovementDTO struct {
	ID               string          `json:"id"`
	MaterialID       string          `json:"material_id"`
	MovementType     string          `json:"movement_type"`
	Quantity         decimal.Decimal `json:"quantity"`
	FromLocationType string          `json:"from_location_type,omitempty"`
	FromLocationID   string          `json:"from_location_id,omitempty"`
	ToLocationType   string          `json:"to_location_type,omitempty"`
	ToLocationID     string          `json:"to_location_id,omitempty"`
	ReferenceID      string          `json:"reference_id,omitempty"`
	ReferenceType    string          `json:"reference_type,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// StockAlertDTO alerta de stock registrada.
type StockAlertDTO struct {
	ID               string          `json:"id"`
	MaterialID       string          `json:"material_id"`
	AlertType        string          `json:"alert_type"`
	CurrentQuantity  decimal.Decimal `json:"current_quantity"`
	ExpectedQuantity decimal.Decimal `json:"expected_quantity"`
	ReferenceID      string          `json:"reference_id,omitempty"`
	ReferenceType    string          `json:"reference_type,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// MaterialDTO entrada del catálogo de materiales.
type MaterialDTO struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	UnitMeasure string `json:"unit_measure"`
	Status      string `json:"status"`
}

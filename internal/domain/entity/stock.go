package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialStock es el stock del regulador (pool central) para un material,
// con niveles mínimo y máximo configurados (material_stocks).
type MaterialStock struct {
	ID          string
	AccountID   string
	MaterialID  string
	Quantity    decimal.Decimal
	MinStock    *decimal.Decimal // nil = sin mínimo configurado
	MaxStock    *decimal.Decimal
	LastUpdated time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MinLevel devuelve el nivel mínimo configurado, o cero si no hay.
func (s *MaterialStock) MinLevel() decimal.Decimal {
	if s == nil || s.MinStock == nil {
		return decimal.Zero
	}
	return *s.MinStock
}

// PanelistStock es el stock de un material en poder de un panelista
// (panelist_material_stocks). Pool independiente del stock del regulador.
type PanelistStock struct {
	ID          string
	AccountID   string
	PanelistID  string
	MaterialID  string
	Quantity    decimal.Decimal
	LastUpdated time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

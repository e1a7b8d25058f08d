package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de alerta de stock. regulator_insufficient se genera al confirmar un
// envío con más cantidad que el stock disponible del regulador; no bloquea.
const (
	AlertTypeRegulatorInsufficient = "regulator_insufficient"
	AlertTypeBelowMinimum          = "below_minimum"
)

// StockAlert es un registro de alerta de stock (stock_alerts). Advertencia
// blanda: las operaciones que la generan continúan su curso.
type StockAlert struct {
	ID               string
	AccountID        string
	MaterialID       string
	AlertType        string
	CurrentQuantity  decimal.Decimal
	ExpectedQuantity decimal.Decimal
	ReferenceID      string
	ReferenceType    string
	Notes            string
	CreatedAt        time.Time
}

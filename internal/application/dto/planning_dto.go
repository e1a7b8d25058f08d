package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// dateLayout es el formato de fechas de la API de planificación (solo día).
const dateLayout = "2006-01-02"

// PeriodRequest ventana [start_date, end_date] inclusive para el cálculo de
// necesidades y para las propuestas de envío.
type PeriodRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// Window parsea la ventana. La validación de formato ya pasó por validator;
// aquí solo se convierte y se verifica el orden.
func (r PeriodRequest) Window() (start, end time.Time, ok bool) {
	start, err1 := time.Parse(dateLayout, r.StartDate)
	end, err2 := time.Parse(dateLayout, r.EndDate)
	if err1 != nil || err2 != nil || end.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// RequirementDTO es un período de necesidades con la cantidad neta a tiempo
// de decisión (net_quantity nunca se persiste, se calcula en cada lectura).
type RequirementDTO struct {
	ID               string          `json:"id"`
	MaterialID       string          `json:"material_id"`
	MaterialCode     string          `json:"material_code"`
	MaterialName     string          `json:"material_name"`
	UnitMeasure      string          `json:"unit_measure"`
	PeriodStart      string          `json:"period_start"`
	PeriodEnd        string          `json:"period_end"`
	QuantityNeeded   decimal.Decimal `json:"quantity_needed"`
	QuantityOrdered  decimal.Decimal `json:"quantity_ordered"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	NetQuantity      decimal.Decimal `json:"net_quantity"`
	Status           string          `json:"status"`
	PlansCount       int             `json:"plans_count"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// NodeMaterialDTO cantidad de un material para un nodo.
type NodeMaterialDTO struct {
	MaterialID     string          `json:"material_id"`
	MaterialCode   string          `json:"material_code"`
	MaterialName   string          `json:"material_name"`
	UnitMeasure    string          `json:"unit_measure"`
	QuantityNeeded decimal.Decimal `json:"quantity_needed"`
}

// NodeRequirementDTO desglose informativo de necesidades por nodo/panelista.
type NodeRequirementDTO struct {
	NodeID           string            `json:"node_id"`
	NodeName         string            `json:"node_name"`
	PanelistID       string            `json:"panelist_id,omitempty"`
	PanelistName     string            `json:"panelist_name,omitempty"`
	AssignmentStatus string            `json:"assignment_status"`
	Materials        []NodeMaterialDTO `json:"materials"`
	TotalQuantity    decimal.Decimal   `json:"total_quantity"`
}

// ProposedShipmentDTO envío propuesto para un nodo con panelista resuelto.
type ProposedShipmentDTO struct {
	NodeID           string            `json:"node_id"`
	NodeName         string            `json:"node_name"`
	PanelistID       string            `json:"panelist_id,omitempty"`
	PanelistName     string            `json:"panelist_name,omitempty"`
	PanelistCode     string            `json:"panelist_code,omitempty"`
	AssignmentStatus string            `json:"assignment_status"`
	Materials        []NodeMaterialDTO `json:"materials"`
	TotalQuantity    decimal.Decimal   `json:"total_quantity"`
	TotalItems       int               `json:"total_items"`
}

// ProposeShipmentsResponse respuesta de proposeShipments: las propuestas y
// el reporte informativo por nodo.
type ProposeShipmentsResponse struct {
	Proposals        []ProposedShipmentDTO `json:"proposals"`
	NodeRequirements []NodeRequirementDTO  `json:"node_requirements"`
}

// CommitShipmentsRequest conjunto de propuestas a consolidar.
type CommitShipmentsRequest struct {
	Proposals []ProposalInput `json:"proposals" validate:"required,min=1,dive"`
}

// ProposalInput propuesta aceptada por el usuario para un panelista.
type ProposalInput struct {
	NodeID     string              `json:"node_id"`
	PanelistID string              `json:"panelist_id" validate:"required"`
	Materials  []ProposalItemInput `json:"materials" validate:"required,min=1,dive"`
}

// ProposalItemInput línea de material de una propuesta.
type ProposalItemInput struct {
	MaterialID string          `json:"material_id" validate:"required"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// MarkAsOrderedRequest cantidad pedida; nil usa quantity_needed del registro.
type MarkAsOrderedRequest struct {
	Quantity *decimal.Decimal `json:"quantity"`
}

// ReceivePORequest cantidad recibida de una orden de compra.
type ReceivePORequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// ConfirmShipmentRequest confirmación de un envío: los ítems confirmados con
// sus cantidades finales y la fecha de despacho. Ítems del envío ausentes de
// la lista se re-emiten en un nuevo envío pendiente.
type ConfirmShipmentRequest struct {
	SentDate string             `json:"sent_date" validate:"required,datetime=2006-01-02"`
	Items    []ConfirmItemInput `json:"items" validate:"required,min=1,dive"`
}

// ConfirmItemInput ítem confirmado de un envío.
type ConfirmItemInput struct {
	ItemID     string          `json:"item_id" validate:"required"`
	MaterialID string          `json:"material_id" validate:"required"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// ConfirmShipmentResult resultado de confirmar un envío: ítems despachados y,
// si hubo ítems removidos, el id del nuevo envío pendiente re-emitido.
type ConfirmShipmentResult struct {
	SentDate           time.Time `json:"sent_date"`
	ConfirmedItems     int       `json:"confirmed_items"`
	ReissuedShipmentID string    `json:"reissued_shipment_id,omitempty"`
}

// ShipmentDTO envío persistido con sus ítems.
type ShipmentDTO struct {
	ID             string            `json:"id"`
	ShipmentNumber string            `json:"shipment_number,omitempty"`
	PanelistID     string            `json:"panelist_id"`
	Status         string            `json:"status"`
	ExpectedDate   *time.Time        `json:"expected_date,omitempty"`
	TrackingNumber string            `json:"tracking_number,omitempty"`
	TotalItems     int               `json:"total_items"`
	Notes          string            `json:"notes,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	Items          []ShipmentItemDTO `json:"items"`
}

// ShipmentItemDTO línea de un envío persistido.
type ShipmentItemDTO struct {
	ID           string          `json:"id"`
	MaterialID   string          `json:"material_id"`
	QuantitySent decimal.Decimal `json:"quantity_sent"`
}

// BalancePreviewDTO resultado opaco del balanceo de carga entre nodos.
type BalancePreviewDTO struct {
	MovementsCount int     `json:"movements_count"`
	StddevBefore   float64 `json:"stddev_before"`
	StddevAfter    float64 `json:"stddev_after"`
	MatrixBefore   any     `json:"matrix_before"`
	MatrixAfter    any     `json:"matrix_after"`
}

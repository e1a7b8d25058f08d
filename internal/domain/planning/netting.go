package planning

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// Estados de asignación de panelista para un nodo.
const (
	AssignmentAssigned = "assigned"
	AssignmentPending  = "pending"
)

// ReferenceSet agrupa los datos de referencia que necesita una corrida del
// calculador: BOM, catálogo de materiales activos, topología y los pools de
// stock. Se construye una sola vez por corrida y es de solo lectura.
type ReferenceSet struct {
	// BomByProduct: product_id → líneas BOM del producto.
	BomByProduct map[string][]entity.BomLine
	// Materials: material_id → entrada activa del catálogo. Materiales
	// inactivos no aparecen y por lo tanto no participan.
	Materials map[string]*entity.Material
	// Nodes: node_id → nodo.
	Nodes map[string]*entity.Node
	// PanelistByNode: node_id → panelista actualmente asignado al nodo.
	PanelistByNode map[string]*entity.Panelist
	// PanelistByID: panelist_id → panelista (para resolver el panelista
	// explícito de una línea).
	PanelistByID map[string]*entity.Panelist
	// PanelistStock: (panelist_id, material_id) → cantidad en poder del panelista.
	PanelistStock map[StockKey]decimal.Decimal
	// RegulatorStock: material_id → stock del regulador con niveles mín/máx.
	RegulatorStock map[string]*entity.MaterialStock
}

// StockKey identifica un pool de stock de panelista.
type StockKey struct {
	PanelistID string
	MaterialID string
}

// ResolvePanelist aplica la prioridad de resolución de panelista de una
// línea: (1) panelista explícito en la línea, (2) panelista asignado al
// nodo de origen, (3) ninguno.
func (rs *ReferenceSet) ResolvePanelist(line entity.DemandLine) *entity.Panelist {
	if line.OriginPanelistID != "" {
		if p, ok := rs.PanelistByID[line.OriginPanelistID]; ok {
			return p
		}
	}
	if line.OriginNodeID != "" {
		if p, ok := rs.PanelistByNode[line.OriginNodeID]; ok {
			return p
		}
	}
	return nil
}

// panelistStockFor devuelve el stock del panelista resuelto de la línea para
// un material, o cero si la línea no resuelve panelista.
func (rs *ReferenceSet) panelistStockFor(line entity.DemandLine, materialID string) decimal.Decimal {
	p := rs.ResolvePanelist(line)
	if p == nil {
		return decimal.Zero
	}
	return rs.PanelistStock[StockKey{PanelistID: p.ID, MaterialID: materialID}]
}

// MaterialRequirement es la necesidad neta de un material para un período.
// Efímera: el motor de unificación la persiste como RequirementPeriod.
type MaterialRequirement struct {
	MaterialID     string
	MaterialCode   string
	MaterialName   string
	UnitMeasure    string
	QuantityNeeded decimal.Decimal
	ShipmentsCount int // líneas de plan distintas que aportan demanda
	PlansCount     int // planes distintos que aportan demanda
	PeriodStart    time.Time
	PeriodEnd      time.Time
}

// SafetyNeed calcula el faltante de stock de seguridad del regulador:
// max(0, min_stock − cantidad actual). Cero si no hay mínimo configurado.
func SafetyNeed(stock *entity.MaterialStock) decimal.Decimal {
	if stock == nil {
		return decimal.Zero
	}
	need := stock.MinLevel().Sub(stock.Quantity)
	if need.IsNegative() {
		return decimal.Zero
	}
	return need
}

// NetQuantity calcula la cantidad neta a decisión de compra:
// max(0, necesidad − stock regulador − cantidad en tránsito).
// Nunca se persiste; se calcula en cada lectura.
func NetQuantity(needed, regulatorQty, inTransit decimal.Decimal) decimal.Decimal {
	net := needed.Sub(regulatorQty).Sub(inTransit)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// MaterialRequirements expande cada línea de demanda vía BOM a cantidades
// por material, descuenta por línea el stock del panelista resuelto y suma
// el faltante de stock de seguridad del regulador. Las líneas sin producto o
// sin BOM no aportan demanda. Devuelve solo materiales con cantidad > 0,
// ordenados por cantidad descendente.
//
// El descuento es por línea: contribución = max(0, bom − stock panelista).
// Nota: el stock regulador y lo ya pedido NO se descuentan aquí; eso ocurre
// a tiempo de decisión (NetQuantity) porque cambian continuamente mientras
// el registro del período debe ser una foto estable de la demanda total.
func MaterialRequirements(lines []entity.DemandLine, refs *ReferenceSet, periodStart, periodEnd time.Time) []MaterialRequirement {
	type acc struct {
		quantity decimal.Decimal
		lines    map[string]struct{}
		plans    map[string]struct{}
	}
	needed := make(map[string]*acc)

	for _, line := range lines {
		if line.ProductID == "" {
			continue
		}
		for _, bom := range refs.BomByProduct[line.ProductID] {
			if _, ok := refs.Materials[bom.MaterialID]; !ok {
				continue // material inactivo o desconocido
			}
			contribution := bom.Quantity.Sub(refs.panelistStockFor(line, bom.MaterialID))
			if contribution.IsNegative() {
				contribution = decimal.Zero
			}
			a := needed[bom.MaterialID]
			if a == nil {
				a = &acc{
					quantity: decimal.Zero,
					lines:    make(map[string]struct{}),
					plans:    make(map[string]struct{}),
				}
				needed[bom.MaterialID] = a
			}
			a.quantity = a.quantity.Add(contribution)
			a.lines[line.ID] = struct{}{}
			a.plans[line.PlanID] = struct{}{}
		}
	}

	requirements := make([]MaterialRequirement, 0, len(needed))
	for materialID, a := range needed {
		material := refs.Materials[materialID]
		total := a.quantity.Add(SafetyNeed(refs.RegulatorStock[materialID]))
		if !total.IsPositive() {
			continue // demanda neta cero: se omite del resultado
		}
		requirements = append(requirements, MaterialRequirement{
			MaterialID:     materialID,
			MaterialCode:   material.Code,
			MaterialName:   material.Name,
			UnitMeasure:    unitOrDefault(material.UnitMeasure),
			QuantityNeeded: total,
			ShipmentsCount: len(a.lines),
			PlansCount:     len(a.plans),
			PeriodStart:    periodStart,
			PeriodEnd:      periodEnd,
		})
	}

	sort.SliceStable(requirements, func(i, j int) bool {
		return requirements[i].QuantityNeeded.GreaterThan(requirements[j].QuantityNeeded)
	})
	return requirements
}

// NodeMaterial es la cantidad de un material que un nodo necesita recibir.
type NodeMaterial struct {
	MaterialID     string
	MaterialCode   string
	MaterialName   string
	UnitMeasure    string
	QuantityNeeded decimal.Decimal
}

// NodeRequirement es el desglose informativo de necesidades por nodo y
// panelista. Las cantidades son el bruto derivado del BOM, sin descontar
// stock del panelista (vista "qué debe recibir cada panelista").
type NodeRequirement struct {
	NodeID           string
	NodeName         string
	PanelistID       string
	PanelistName     string
	PanelistCode     string
	AssignmentStatus string // assigned | pending
	Materials        []NodeMaterial
	TotalQuantity    decimal.Decimal
}

// NodeRequirements agrupa las líneas de demanda por nodo de origen con el
// panelista resuelto por la prioridad de ResolvePanelist. Líneas sin nodo no
// aportan. Nodos sin cantidad total positiva se omiten. Ordena por cantidad
// total descendente.
func NodeRequirements(lines []entity.DemandLine, refs *ReferenceSet) []NodeRequirement {
	grouped := groupByNode(lines, refs)

	requirements := make([]NodeRequirement, 0, len(grouped))
	for _, g := range grouped {
		if !g.total.IsPositive() {
			continue
		}
		requirements = append(requirements, NodeRequirement{
			NodeID:           g.node.ID,
			NodeName:         g.node.AutoID,
			PanelistID:       panelistID(g.panelist),
			PanelistName:     panelistName(g.panelist),
			PanelistCode:     panelistCode(g.panelist),
			AssignmentStatus: assignmentStatus(g.panelist),
			Materials:        g.materials(),
			TotalQuantity:    g.total,
		})
	}

	sort.SliceStable(requirements, func(i, j int) bool {
		return requirements[i].TotalQuantity.GreaterThan(requirements[j].TotalQuantity)
	})
	return requirements
}

// ProposedShipment es un envío propuesto para un nodo: qué debe moverse
// físicamente hacia su panelista. Cantidades brutas del BOM,
// deliberadamente sin descontar el stock que el panelista ya posee.
type ProposedShipment struct {
	NodeID           string
	NodeName         string
	PanelistID       string
	PanelistName     string
	PanelistCode     string
	AssignmentStatus string // assigned | pending
	Materials        []NodeMaterial
	TotalQuantity    decimal.Decimal
	TotalItems       int
}

// BuildProposedShipments produce un envío propuesto por nodo. Los nodos sin
// panelista resoluble se devuelven con estado pending: se reportan pero el
// commit los rechaza. Ordena por nombre de panelista (o de nodo).
func BuildProposedShipments(lines []entity.DemandLine, refs *ReferenceSet) []ProposedShipment {
	grouped := groupByNode(lines, refs)

	shipments := make([]ProposedShipment, 0, len(grouped))
	for _, g := range grouped {
		if !g.total.IsPositive() {
			continue
		}
		materials := g.materials()
		shipments = append(shipments, ProposedShipment{
			NodeID:           g.node.ID,
			NodeName:         g.node.AutoID,
			PanelistID:       panelistID(g.panelist),
			PanelistName:     panelistName(g.panelist),
			PanelistCode:     panelistCode(g.panelist),
			AssignmentStatus: assignmentStatus(g.panelist),
			Materials:        materials,
			TotalQuantity:    g.total,
			TotalItems:       len(materials),
		})
	}

	sort.SliceStable(shipments, func(i, j int) bool {
		return displayName(shipments[i].PanelistName, shipments[i].NodeName) <
			displayName(shipments[j].PanelistName, shipments[j].NodeName)
	})
	return shipments
}

// nodeGroup acumula cantidades brutas de materiales para un nodo.
type nodeGroup struct {
	node      *entity.Node
	panelist  *entity.Panelist
	byID      map[string]decimal.Decimal
	order     []string
	total     decimal.Decimal
	materials func() []NodeMaterial
}

func groupByNode(lines []entity.DemandLine, refs *ReferenceSet) []*nodeGroup {
	byNode := make(map[string]*nodeGroup)
	var order []string

	for _, line := range lines {
		if line.ProductID == "" || line.OriginNodeID == "" {
			continue
		}
		node, ok := refs.Nodes[line.OriginNodeID]
		if !ok {
			continue
		}
		g := byNode[line.OriginNodeID]
		if g == nil {
			g = &nodeGroup{
				node:     node,
				panelist: refs.ResolvePanelist(line),
				byID:     make(map[string]decimal.Decimal),
				total:    decimal.Zero,
			}
			byNode[line.OriginNodeID] = g
			order = append(order, line.OriginNodeID)
		}
		for _, bom := range refs.BomByProduct[line.ProductID] {
			if _, ok := refs.Materials[bom.MaterialID]; !ok {
				continue
			}
			if _, seen := g.byID[bom.MaterialID]; !seen {
				g.order = append(g.order, bom.MaterialID)
			}
			g.byID[bom.MaterialID] = g.byID[bom.MaterialID].Add(bom.Quantity)
			g.total = g.total.Add(bom.Quantity)
		}
	}

	groups := make([]*nodeGroup, 0, len(byNode))
	for _, nodeID := range order {
		g := byNode[nodeID]
		g.materials = materialsBuilder(g, refs)
		groups = append(groups, g)
	}
	return groups
}

func materialsBuilder(g *nodeGroup, refs *ReferenceSet) func() []NodeMaterial {
	return func() []NodeMaterial {
		out := make([]NodeMaterial, 0, len(g.byID))
		for _, materialID := range g.order {
			material := refs.Materials[materialID]
			out = append(out, NodeMaterial{
				MaterialID:     materialID,
				MaterialCode:   material.Code,
				MaterialName:   material.Name,
				UnitMeasure:    unitOrDefault(material.UnitMeasure),
				QuantityNeeded: g.byID[materialID],
			})
		}
		return out
	}
}

func unitOrDefault(unit string) string {
	if unit == "" {
		return "un"
	}
	return unit
}

func panelistID(p *entity.Panelist) string {
	if p == nil {
		return ""
	}
	return p.ID
}

func panelistName(p *entity.Panelist) string {
	if p == nil {
		return ""
	}
	return p.Name
}

func panelistCode(p *entity.Panelist) string {
	if p == nil {
		return ""
	}
	return p.PanelistCode
}

func assignmentStatus(p *entity.Panelist) string {
	if p == nil {
		return AssignmentPending
	}
	return AssignmentAssigned
}

func displayName(panelist, node string) string {
	if panelist != "" {
		return panelist
	}
	return node
}

package planning

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	domplanning "github.com/jhoicas/logistica-api/internal/domain/planning"
)

// -----------------------------------------------------------------------------
// Carga de referencias: el índice PanelistByID se alimenta de dos fuentes
// paralelas (panelistas asignados a nodos y panelistas explícitos de línea).
// -----------------------------------------------------------------------------

func TestReferenceLoader_IndexaPanelistasDeNodoYDeLinea(t *testing.T) {
	bom := &fakeBomRepo{lines: []entity.BomLine{
		{AccountID: "acc-1", ProductID: "prod-1", MaterialID: "mat-a", Quantity: decimal.NewFromInt(1)},
	}}
	materials := &fakeMaterialRepo{materials: map[string]*entity.Material{
		"mat-a": {ID: "mat-a", AccountID: "acc-1", Code: "TAG-001", Name: "Etiqueta", UnitMeasure: "un", Status: entity.MaterialStatusActive},
	}}
	nodes := &fakeNodeRepo{nodes: make(map[string]*entity.Node)}
	panelists := &fakePanelistRepo{panelists: make(map[string]*entity.Panelist)}
	stocks := &fakeStockRepo{stocks: make(map[string]*entity.MaterialStock)}
	panStock := &fakePanelistStockRepo{stocks: make(map[panelistStockKey]*entity.PanelistStock)}

	// Muchas líneas con ambos orígenes a la vez, para que los dos fetches de
	// panelistas tengan trabajo real en la misma corrida.
	lines := make([]entity.DemandLine, 0, 40)
	for i := 0; i < 20; i++ {
		nodeID := fmt.Sprintf("node-%02d", i)
		nodePan := fmt.Sprintf("pan-nodo-%02d", i)
		linePan := fmt.Sprintf("pan-linea-%02d", i)

		nodes.nodes[nodeID] = &entity.Node{ID: nodeID, AccountID: "acc-1", AutoID: fmt.Sprintf("N-%02d", i)}
		panelists.panelists[nodePan] = &entity.Panelist{ID: nodePan, AccountID: "acc-1", Name: "Nodo " + nodeID, NodeID: nodeID}
		panelists.panelists[linePan] = &entity.Panelist{ID: linePan, AccountID: "acc-1", Name: "Línea " + nodeID}
		panStock.stocks[panelistStockKey{linePan, "mat-a"}] = &entity.PanelistStock{
			AccountID: "acc-1", PanelistID: linePan, MaterialID: "mat-a", Quantity: decimal.NewFromInt(3),
		}

		lines = append(lines,
			entity.DemandLine{ID: fmt.Sprintf("ln-%02d", i), AccountID: "acc-1", PlanID: "plan-1", ProductID: "prod-1", OriginNodeID: nodeID},
			entity.DemandLine{ID: fmt.Sprintf("lp-%02d", i), AccountID: "acc-1", PlanID: "plan-1", ProductID: "prod-1", OriginPanelistID: linePan},
		)
	}

	loader := NewReferenceLoader(bom, materials, nodes, panelists, stocks, panStock)
	refs, err := loader.Load(context.Background(), "acc-1", lines)
	require.NoError(t, err)

	// Ambas fuentes terminan en el mismo índice por ID.
	assert.Len(t, refs.PanelistByID, 40)
	assert.Len(t, refs.PanelistByNode, 20)
	for i := 0; i < 20; i++ {
		require.Contains(t, refs.PanelistByID, fmt.Sprintf("pan-nodo-%02d", i))
		require.Contains(t, refs.PanelistByID, fmt.Sprintf("pan-linea-%02d", i))
	}

	// El stock de panelista se carga para los IDs ya indexados.
	key := domplanning.StockKey{PanelistID: "pan-linea-07", MaterialID: "mat-a"}
	assert.True(t, refs.PanelistStock[key].Equal(decimal.NewFromInt(3)), "stock = %s", refs.PanelistStock[key])
}

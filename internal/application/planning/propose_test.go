package planning

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	domplanning "github.com/jhoicas/logistica-api/internal/domain/planning"
)

func newProposeUC(t *testing.T, demand *fakeDemandRepo) *ProposeShipmentsUseCase {
	t.Helper()
	bom := &fakeBomRepo{lines: []entity.BomLine{
		{AccountID: "acc-1", ProductID: "prod-1", MaterialID: "mat-a", Quantity: decimal.NewFromInt(2)},
	}}
	materials := &fakeMaterialRepo{materials: map[string]*entity.Material{
		"mat-a": {ID: "mat-a", AccountID: "acc-1", Code: "TAG-001", Name: "Etiqueta", UnitMeasure: "un", Status: entity.MaterialStatusActive},
	}}
	nodes := &fakeNodeRepo{nodes: map[string]*entity.Node{
		"node-1": {ID: "node-1", AccountID: "acc-1", AutoID: "N-001"},
		"node-2": {ID: "node-2", AccountID: "acc-1", AutoID: "N-002"},
	}}
	panelists := &fakePanelistRepo{panelists: map[string]*entity.Panelist{
		"pan-1": {ID: "pan-1", AccountID: "acc-1", Name: "Ana", PanelistCode: "P-001", NodeID: "node-1"},
	}}
	refLoader := NewReferenceLoader(bom, materials, nodes, panelists,
		&fakeStockRepo{}, &fakePanelistStockRepo{})
	return NewProposeShipmentsUseCase(NewDemandScanner(demand, 100), refLoader, testLogger())
}

func TestPropose_UnaPropuestaPorNodo(t *testing.T) {
	demand := &fakeDemandRepo{lines: []entity.DemandLine{
		{ID: "l1", AccountID: "acc-1", PlanID: "p1", ProductID: "prod-1", ScheduledDate: day(2026, 1, 10), OriginNodeID: "node-1"},
		{ID: "l2", AccountID: "acc-1", PlanID: "p2", ProductID: "prod-1", ScheduledDate: day(2026, 1, 12), OriginNodeID: "node-1"},
		{ID: "l3", AccountID: "acc-1", PlanID: "p3", ProductID: "prod-1", ScheduledDate: day(2026, 1, 15), OriginNodeID: "node-2"},
	}}
	uc := newProposeUC(t, demand)

	out, err := uc.Propose(context.Background(), "acc-1", day(2026, 1, 1), day(2026, 1, 31))

	require.NoError(t, err)
	require.Len(t, out.Proposals, 2)
	require.Len(t, out.NodeRequirements, 2)

	byNode := make(map[string]int)
	for i, p := range out.Proposals {
		byNode[p.NodeID] = i
	}
	p1 := out.Proposals[byNode["node-1"]]
	assert.Equal(t, "pan-1", p1.PanelistID)
	assert.Equal(t, domplanning.AssignmentAssigned, p1.AssignmentStatus)
	require.Len(t, p1.Materials, 1)
	// 2 líneas × 2 un BOM, bruto sin descuentos.
	assert.True(t, p1.Materials[0].QuantityNeeded.Equal(decimal.NewFromInt(4)))

	p2 := out.Proposals[byNode["node-2"]]
	assert.Empty(t, p2.PanelistID)
	assert.Equal(t, domplanning.AssignmentPending, p2.AssignmentStatus)
}

func TestPropose_SinDemandaDevuelveListasVacias(t *testing.T) {
	uc := newProposeUC(t, &fakeDemandRepo{})

	out, err := uc.Propose(context.Background(), "acc-1", day(2026, 1, 1), day(2026, 1, 31))

	require.NoError(t, err)
	assert.Empty(t, out.Proposals)
	assert.Empty(t, out.NodeRequirements)
}

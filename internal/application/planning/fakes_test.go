package planning

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
	"github.com/jhoicas/logistica-api/pkg/logger"
)

// -----------------------------------------------------------------------------
// Fakes en memoria para los casos de uso. Implementan los puertos de dominio
// sobre mapas; el fakeTxRunner ejecuta las funciones directamente sobre los
// mismos fakes (las pruebas verifican semántica, no aislamiento de tx).
// -----------------------------------------------------------------------------

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// --- demanda ---

type fakeDemandRepo struct {
	lines     []entity.DemandLine
	failNext  int // fallas transitorias a inyectar antes de responder
	pageCalls int
}

func (f *fakeDemandRepo) ListScheduledPage(_ context.Context, accountID string, start, end time.Time, afterID string, limit int) ([]entity.DemandLine, error) {
	f.pageCalls++
	if f.failNext > 0 {
		f.failNext--
		return nil, errTransient
	}
	matched := make([]entity.DemandLine, 0)
	for _, l := range f.lines {
		if l.AccountID != accountID || l.ID <= afterID {
			continue
		}
		if l.ScheduledDate.Before(start) || l.ScheduledDate.After(end) {
			continue
		}
		matched = append(matched, l)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// --- referencias ---

type fakeBomRepo struct{ lines []entity.BomLine }

func (f *fakeBomRepo) ListByProducts(_ context.Context, accountID string, productIDs []string) ([]entity.BomLine, error) {
	wanted := toSet(productIDs)
	out := make([]entity.BomLine, 0)
	for _, l := range f.lines {
		if l.AccountID != accountID {
			continue
		}
		if _, ok := wanted[l.ProductID]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeMaterialRepo struct{ materials map[string]*entity.Material }

func (f *fakeMaterialRepo) ListActiveByIDs(_ context.Context, ids []string) ([]*entity.Material, error) {
	out := make([]*entity.Material, 0)
	for _, id := range ids {
		if m, ok := f.materials[id]; ok && m.IsActive() {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMaterialRepo) ListByAccount(_ context.Context, accountID, status string) ([]*entity.Material, error) {
	out := make([]*entity.Material, 0)
	for _, m := range f.materials {
		if m.AccountID == accountID && (status == "" || m.Status == status) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeNodeRepo struct{ nodes map[string]*entity.Node }

func (f *fakeNodeRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.Node, error) {
	out := make([]*entity.Node, 0)
	for _, id := range ids {
		if n, ok := f.nodes[id]; ok {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakePanelistRepo struct{ panelists map[string]*entity.Panelist }

func (f *fakePanelistRepo) ListByNodes(_ context.Context, accountID string, nodeIDs []string) ([]*entity.Panelist, error) {
	wanted := toSet(nodeIDs)
	out := make([]*entity.Panelist, 0)
	for _, p := range f.panelists {
		if p.AccountID != accountID || p.NodeID == "" {
			continue
		}
		if _, ok := wanted[p.NodeID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePanelistRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.Panelist, error) {
	out := make([]*entity.Panelist, 0)
	for _, id := range ids {
		if p, ok := f.panelists[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePanelistRepo) GetByID(_ context.Context, id string) (*entity.Panelist, error) {
	return f.panelists[id], nil
}

// --- stock ---

type fakeStockRepo struct{ stocks map[string]*entity.MaterialStock } // material_id → stock

func (f *fakeStockRepo) ListByAccount(_ context.Context, accountID string) ([]*entity.MaterialStock, error) {
	out := make([]*entity.MaterialStock, 0)
	for _, s := range f.stocks {
		if s.AccountID == accountID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) ListByMaterials(_ context.Context, accountID string, materialIDs []string) ([]*entity.MaterialStock, error) {
	out := make([]*entity.MaterialStock, 0)
	for _, id := range materialIDs {
		if s, ok := f.stocks[id]; ok && s.AccountID == accountID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) GetForUpdate(_ context.Context, accountID, materialID string) (*entity.MaterialStock, error) {
	if s, ok := f.stocks[materialID]; ok && s.AccountID == accountID {
		copied := *s
		return &copied, nil
	}
	return &entity.MaterialStock{AccountID: accountID, MaterialID: materialID, Quantity: decimal.Zero}, nil
}

func (f *fakeStockRepo) Upsert(_ context.Context, stock *entity.MaterialStock) error {
	if f.stocks == nil {
		f.stocks = make(map[string]*entity.MaterialStock)
	}
	copied := *stock
	f.stocks[stock.MaterialID] = &copied
	return nil
}

type panelistStockKey struct{ panelistID, materialID string }

type fakePanelistStockRepo struct {
	stocks map[panelistStockKey]*entity.PanelistStock
}

func (f *fakePanelistStockRepo) ListByAccount(_ context.Context, accountID string) ([]*entity.PanelistStock, error) {
	out := make([]*entity.PanelistStock, 0)
	for _, s := range f.stocks {
		if s.AccountID == accountID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakePanelistStockRepo) ListByPanelists(_ context.Context, accountID string, panelistIDs []string) ([]*entity.PanelistStock, error) {
	wanted := toSet(panelistIDs)
	out := make([]*entity.PanelistStock, 0)
	for _, s := range f.stocks {
		if s.AccountID != accountID {
			continue
		}
		if _, ok := wanted[s.PanelistID]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakePanelistStockRepo) GetForUpdate(_ context.Context, accountID, panelistID, materialID string) (*entity.PanelistStock, error) {
	if s, ok := f.stocks[panelistStockKey{panelistID, materialID}]; ok && s.AccountID == accountID {
		copied := *s
		return &copied, nil
	}
	return &entity.PanelistStock{AccountID: accountID, PanelistID: panelistID, MaterialID: materialID, Quantity: decimal.Zero}, nil
}

func (f *fakePanelistStockRepo) Upsert(_ context.Context, stock *entity.PanelistStock) error {
	if f.stocks == nil {
		f.stocks = make(map[panelistStockKey]*entity.PanelistStock)
	}
	copied := *stock
	f.stocks[panelistStockKey{stock.PanelistID, stock.MaterialID}] = &copied
	return nil
}

// --- necesidades ---

type fakeRequirementRepo struct {
	periods map[string]*entity.RequirementPeriod
}

func (f *fakeRequirementRepo) ListPendingForUpdate(_ context.Context, accountID, materialID string) ([]*entity.RequirementPeriod, error) {
	out := make([]*entity.RequirementPeriod, 0)
	for _, p := range f.periods {
		if p.AccountID == accountID && p.MaterialID == materialID && p.Status == entity.RequirementStatusPending {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRequirementRepo) Insert(_ context.Context, req *entity.RequirementPeriod) error {
	if f.periods == nil {
		f.periods = make(map[string]*entity.RequirementPeriod)
	}
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	copied := *req
	f.periods[req.ID] = &copied
	return nil
}

func (f *fakeRequirementRepo) DeleteByIDs(_ context.Context, accountID string, ids []string) error {
	for _, id := range ids {
		if p, ok := f.periods[id]; ok && p.AccountID == accountID {
			delete(f.periods, id)
		}
	}
	return nil
}

func (f *fakeRequirementRepo) GetByID(_ context.Context, accountID, id string) (*entity.RequirementPeriod, error) {
	if p, ok := f.periods[id]; ok && p.AccountID == accountID {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeRequirementRepo) GetByIDForUpdate(ctx context.Context, accountID, id string) (*entity.RequirementPeriod, error) {
	return f.GetByID(ctx, accountID, id)
}

func (f *fakeRequirementRepo) Update(_ context.Context, req *entity.RequirementPeriod) error {
	copied := *req
	f.periods[req.ID] = &copied
	return nil
}

func (f *fakeRequirementRepo) Delete(_ context.Context, accountID, id string) error {
	if p, ok := f.periods[id]; ok && p.AccountID == accountID {
		delete(f.periods, id)
	}
	return nil
}

func (f *fakeRequirementRepo) ListOpenByPeriod(_ context.Context, accountID string, start, end time.Time) ([]*entity.RequirementPeriod, error) {
	out := make([]*entity.RequirementPeriod, 0)
	for _, p := range f.periods {
		if p.AccountID != accountID || p.Status == entity.RequirementStatusReceived {
			continue
		}
		if p.PeriodEnd.Before(start) || p.PeriodStart.After(end) {
			continue
		}
		copied := *p
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRequirementRepo) InTransitByMaterial(_ context.Context, accountID string, materialIDs []string) (map[string]decimal.Decimal, error) {
	wanted := toSet(materialIDs)
	out := make(map[string]decimal.Decimal)
	for _, p := range f.periods {
		if p.AccountID != accountID {
			continue
		}
		if _, ok := wanted[p.MaterialID]; !ok {
			continue
		}
		if rest := p.InTransit(); rest.IsPositive() {
			out[p.MaterialID] = out[p.MaterialID].Add(rest)
		}
	}
	return out, nil
}

// pendingFor devuelve los registros pending de un material (solo pruebas).
func (f *fakeRequirementRepo) pendingFor(materialID string) []*entity.RequirementPeriod {
	out := make([]*entity.RequirementPeriod, 0)
	for _, p := range f.periods {
		if p.MaterialID == materialID && p.Status == entity.RequirementStatusPending {
			out = append(out, p)
		}
	}
	return out
}

// --- envíos ---

type fakeShipmentRepo struct {
	shipments map[string]*entity.Shipment
}

func (f *fakeShipmentRepo) ListPendingByPanelistForUpdate(_ context.Context, accountID, panelistID string) ([]*entity.Shipment, error) {
	out := make([]*entity.Shipment, 0)
	for _, s := range f.shipments {
		if s.AccountID == accountID && s.PanelistID == panelistID && s.Status == entity.ShipmentStatusPending {
			copied := *s
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeShipmentRepo) Insert(_ context.Context, shipment *entity.Shipment) error {
	if f.shipments == nil {
		f.shipments = make(map[string]*entity.Shipment)
	}
	if shipment.ID == "" {
		shipment.ID = uuid.New().String()
	}
	copied := *shipment
	copied.Items = append([]entity.ShipmentItem(nil), shipment.Items...)
	f.shipments[shipment.ID] = &copied
	return nil
}

func (f *fakeShipmentRepo) DeleteWithItems(_ context.Context, accountID string, ids []string) error {
	for _, id := range ids {
		if s, ok := f.shipments[id]; ok && s.AccountID == accountID {
			delete(f.shipments, id)
		}
	}
	return nil
}

func (f *fakeShipmentRepo) GetByID(_ context.Context, accountID, id string) (*entity.Shipment, error) {
	if s, ok := f.shipments[id]; ok && s.AccountID == accountID {
		copied := *s
		copied.Items = append([]entity.ShipmentItem(nil), s.Items...)
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeShipmentRepo) GetByIDForUpdate(ctx context.Context, accountID, id string) (*entity.Shipment, error) {
	return f.GetByID(ctx, accountID, id)
}

func (f *fakeShipmentRepo) ListByAccount(_ context.Context, accountID string) ([]*entity.Shipment, error) {
	out := make([]*entity.Shipment, 0)
	for _, s := range f.shipments {
		if s.AccountID == accountID {
			copied := *s
			copied.Items = append([]entity.ShipmentItem(nil), s.Items...)
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// pendingFor devuelve los envíos pending de un panelista (solo pruebas).
func (f *fakeShipmentRepo) pendingFor(panelistID string) []*entity.Shipment {
	out := make([]*entity.Shipment, 0)
	for _, s := range f.shipments {
		if s.PanelistID == panelistID && s.Status == entity.ShipmentStatusPending {
			out = append(out, s)
		}
	}
	return out
}

// --- movimientos y alertas ---

type fakeMovementRepo struct{ movements []*entity.Movement }

func (f *fakeMovementRepo) Create(_ context.Context, movement *entity.Movement) error {
	copied := *movement
	f.movements = append(f.movements, &copied)
	return nil
}

func (f *fakeMovementRepo) ListByAccount(_ context.Context, accountID string, limit, offset int) ([]*entity.Movement, error) {
	out := make([]*entity.Movement, 0)
	for _, m := range f.movements {
		if m.AccountID == accountID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeAlertRepo struct{ alerts []*entity.StockAlert }

func (f *fakeAlertRepo) Create(_ context.Context, alert *entity.StockAlert) error {
	copied := *alert
	f.alerts = append(f.alerts, &copied)
	return nil
}

func (f *fakeAlertRepo) ListByAccount(_ context.Context, accountID string, limit, offset int) ([]*entity.StockAlert, error) {
	out := make([]*entity.StockAlert, 0)
	for _, a := range f.alerts {
		if a.AccountID == accountID {
			out = append(out, a)
		}
	}
	return out, nil
}

// --- tx runner ---

type fakeTxRunner struct {
	reqRepo           *fakeRequirementRepo
	stockRepo         *fakeStockRepo
	panelistStockRepo *fakePanelistStockRepo
	shipRepo          *fakeShipmentRepo
	movRepo           *fakeMovementRepo
	alertRepo         *fakeAlertRepo
}

func (f *fakeTxRunner) RunRequirements(ctx context.Context, fn func(
	repository.RequirementRepository,
	repository.StockRepository,
	repository.MovementRepository,
) error) error {
	return fn(f.reqRepo, f.stockRepo, f.movRepo)
}

func (f *fakeTxRunner) RunShipments(ctx context.Context, fn func(
	repository.ShipmentRepository,
	repository.StockRepository,
	repository.PanelistStockRepository,
	repository.MovementRepository,
	repository.AlertRepository,
) error) error {
	return fn(f.shipRepo, f.stockRepo, f.panelistStockRepo, f.movRepo, f.alertRepo)
}

// --- utilitarios ---

func toSet(ids []string) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

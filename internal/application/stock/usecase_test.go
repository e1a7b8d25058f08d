package stock

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
	"github.com/jhoicas/logistica-api/pkg/logger"
)

type fakeStockRepo struct {
	stocks map[string]*entity.MaterialStock
}

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
	copied := *stock
	f.stocks[stock.MaterialID] = &copied
	return nil
}

type fakePanelistStockRepo struct{}

func (f *fakePanelistStockRepo) ListByAccount(context.Context, string) ([]*entity.PanelistStock, error) {
	return nil, nil
}

func (f *fakePanelistStockRepo) ListByPanelists(context.Context, string, []string) ([]*entity.PanelistStock, error) {
	return nil, nil
}

func (f *fakePanelistStockRepo) GetForUpdate(context.Context, string, string, string) (*entity.PanelistStock, error) {
	return nil, nil
}

func (f *fakePanelistStockRepo) Upsert(context.Context, *entity.PanelistStock) error { return nil }

type fakeMovementRepo struct{ movements []*entity.Movement }

func (f *fakeMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	f.movements = append(f.movements, m)
	return nil
}

func (f *fakeMovementRepo) ListByAccount(context.Context, string, int, int) ([]*entity.Movement, error) {
	return f.movements, nil
}

type fakeAlertRepo struct{ alerts []*entity.StockAlert }

func (f *fakeAlertRepo) Create(_ context.Context, a *entity.StockAlert) error {
	f.alerts = append(f.alerts, a)
	return nil
}

func (f *fakeAlertRepo) ListByAccount(context.Context, string, int, int) ([]*entity.StockAlert, error) {
	return f.alerts, nil
}

type fakeTxRunner struct {
	stockRepo *fakeStockRepo
	movRepo   *fakeMovementRepo
	alertRepo *fakeAlertRepo
}

func (f *fakeTxRunner) RunStock(ctx context.Context, fn func(
	repository.StockRepository,
	repository.MovementRepository,
	repository.AlertRepository,
) error) error {
	return fn(f.stockRepo, f.movRepo, f.alertRepo)
}

func newEnv(t *testing.T) (*UseCase, *fakeStockRepo, *fakeMovementRepo, *fakeAlertRepo) {
	t.Helper()
	stocks := &fakeStockRepo{stocks: make(map[string]*entity.MaterialStock)}
	movs := &fakeMovementRepo{}
	alerts := &fakeAlertRepo{}
	tx := &fakeTxRunner{stockRepo: stocks, movRepo: movs, alertRepo: alerts}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := NewUseCase(tx, stocks, &fakePanelistStockRepo{}, movs, alerts, log)
	return uc, stocks, movs, alerts
}

// -----------------------------------------------------------------------------
// Ajuste manual del regulador
// -----------------------------------------------------------------------------

func TestUpsertRegulatorStock_CreaFilaYMovimientoDeAjuste(t *testing.T) {
	uc, stocks, movs, alerts := newEnv(t)

	out, err := uc.UpsertRegulatorStock(context.Background(), "acc-1", "user-1", &dto.UpsertRegulatorStockRequest{
		MaterialID: "mat-a",
		Quantity:   decimal.NewFromInt(10),
	})

	require.NoError(t, err)
	assert.True(t, out.Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, stocks.stocks["mat-a"].Quantity.Equal(decimal.NewFromInt(10)))

	require.Len(t, movs.movements, 1)
	m := movs.movements[0]
	assert.Equal(t, entity.MovementTypeAdjustment, m.MovementType)
	assert.True(t, m.Quantity.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, entity.ReferenceTypeManual, m.ReferenceType)
	assert.Empty(t, alerts.alerts)
}

func TestUpsertRegulatorStock_SinCambioDeCantidadNoRegistraMovimiento(t *testing.T) {
	uc, stocks, movs, _ := newEnv(t)
	stocks.stocks["mat-a"] = &entity.MaterialStock{
		AccountID: "acc-1", MaterialID: "mat-a", Quantity: decimal.NewFromInt(10),
	}

	min := decimal.NewFromInt(2)
	_, err := uc.UpsertRegulatorStock(context.Background(), "acc-1", "user-1", &dto.UpsertRegulatorStockRequest{
		MaterialID: "mat-a",
		Quantity:   decimal.NewFromInt(10),
		MinStock:   &min,
	})

	require.NoError(t, err)
	// Solo cambian los niveles: no hay delta, no hay movimiento.
	assert.Empty(t, movs.movements)
	require.NotNil(t, stocks.stocks["mat-a"].MinStock)
	assert.True(t, stocks.stocks["mat-a"].MinStock.Equal(min))
}

func TestUpsertRegulatorStock_BajoElMinimoGeneraAlerta(t *testing.T) {
	uc, _, _, alerts := newEnv(t)

	min := decimal.NewFromInt(5)
	_, err := uc.UpsertRegulatorStock(context.Background(), "acc-1", "user-1", &dto.UpsertRegulatorStockRequest{
		MaterialID: "mat-a",
		Quantity:   decimal.NewFromInt(2),
		MinStock:   &min,
	})

	require.NoError(t, err)
	require.Len(t, alerts.alerts, 1)
	a := alerts.alerts[0]
	assert.Equal(t, entity.AlertTypeBelowMinimum, a.AlertType)
	assert.True(t, a.CurrentQuantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, a.ExpectedQuantity.Equal(min))
}

func TestUpsertRegulatorStock_RechazaCantidadNegativa(t *testing.T) {
	uc, _, _, _ := newEnv(t)

	_, err := uc.UpsertRegulatorStock(context.Background(), "acc-1", "user-1", &dto.UpsertRegulatorStockRequest{
		MaterialID: "mat-a",
		Quantity:   decimal.NewFromInt(-1),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpsertRegulatorStock_RechazaMaxMenorQueMin(t *testing.T) {
	uc, _, _, _ := newEnv(t)

	min := decimal.NewFromInt(10)
	max := decimal.NewFromInt(5)
	_, err := uc.UpsertRegulatorStock(context.Background(), "acc-1", "user-1", &dto.UpsertRegulatorStockRequest{
		MaterialID: "mat-a",
		Quantity:   decimal.NewFromInt(7),
		MinStock:   &min,
		MaxStock:   &max,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpsertRegulatorStock_AjusteNegativoSaleDelRegulador(t *testing.T) {
	uc, stocks, movs, _ := newEnv(t)
	stocks.stocks["mat-a"] = &entity.MaterialStock{
		AccountID: "acc-1", MaterialID: "mat-a", Quantity: decimal.NewFromInt(10),
	}

	_, err := uc.UpsertRegulatorStock(context.Background(), "acc-1", "user-1", &dto.UpsertRegulatorStockRequest{
		MaterialID: "mat-a",
		Quantity:   decimal.NewFromInt(4),
	})

	require.NoError(t, err)
	require.Len(t, movs.movements, 1)
	m := movs.movements[0]
	assert.True(t, m.Quantity.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, entity.LocationTypeRegulator, m.FromLocationType)
	assert.Empty(t, m.ToLocationType)
}

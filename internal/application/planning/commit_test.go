package planning

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

func newCommitUC(t *testing.T) (*CommitShipmentsUseCase, *fakeShipmentRepo) {
	t.Helper()
	shipRepo := &fakeShipmentRepo{shipments: make(map[string]*entity.Shipment)}
	tx := &fakeTxRunner{
		shipRepo:          shipRepo,
		stockRepo:         &fakeStockRepo{},
		panelistStockRepo: &fakePanelistStockRepo{},
		movRepo:           &fakeMovementRepo{},
		alertRepo:         &fakeAlertRepo{},
	}
	return NewCommitShipmentsUseCase(tx, testLogger()), shipRepo
}

func proposal(panelistID string, quantities map[string]int64) dto.ProposalInput {
	p := dto.ProposalInput{NodeID: "node-1", PanelistID: panelistID}
	for materialID, qty := range quantities {
		p.Materials = append(p.Materials, dto.ProposalItemInput{
			MaterialID: materialID,
			Quantity:   decimal.NewFromInt(qty),
		})
	}
	return p
}

// -----------------------------------------------------------------------------
// Consolidación
// -----------------------------------------------------------------------------

func TestCommit_CreaEnvioPendientePorPanelista(t *testing.T) {
	uc, shipRepo := newCommitUC(t)

	out, err := uc.Commit(context.Background(), "acc-1", "user-1", &dto.CommitShipmentsRequest{
		Proposals: []dto.ProposalInput{proposal("pan-1", map[string]int64{"mat-a": 5})},
	})

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, entity.ShipmentStatusPending, out[0].Status)
	assert.Equal(t, "pan-1", out[0].PanelistID)
	assert.NotEmpty(t, out[0].ShipmentNumber)
	require.Len(t, shipRepo.pendingFor("pan-1"), 1)
}

func TestCommit_FusionaConEnvioPendienteExistente(t *testing.T) {
	uc, shipRepo := newCommitUC(t)

	// Primer commit: {mat-a: 5}.
	_, err := uc.Commit(context.Background(), "acc-1", "user-1", &dto.CommitShipmentsRequest{
		Proposals: []dto.ProposalInput{proposal("pan-1", map[string]int64{"mat-a": 5})},
	})
	require.NoError(t, err)

	// Segundo commit: {mat-a: 3, mat-b: 2} → un solo envío {mat-a: 8, mat-b: 2}.
	out, err := uc.Commit(context.Background(), "acc-1", "user-1", &dto.CommitShipmentsRequest{
		Proposals: []dto.ProposalInput{{
			NodeID:     "node-1",
			PanelistID: "pan-1",
			Materials: []dto.ProposalItemInput{
				{MaterialID: "mat-a", Quantity: decimal.NewFromInt(3)},
				{MaterialID: "mat-b", Quantity: decimal.NewFromInt(2)},
			},
		}},
	})
	require.NoError(t, err)

	pending := shipRepo.pendingFor("pan-1")
	require.Len(t, pending, 1, "a lo sumo un envío pending por panelista")
	require.Len(t, out, 1)
	require.Len(t, out[0].Items, 2)

	byMaterial := make(map[string]decimal.Decimal)
	for _, item := range out[0].Items {
		byMaterial[item.MaterialID] = item.QuantitySent
	}
	assert.True(t, byMaterial["mat-a"].Equal(decimal.NewFromInt(8)), "mat-a = %s", byMaterial["mat-a"])
	assert.True(t, byMaterial["mat-b"].Equal(decimal.NewFromInt(2)), "mat-b = %s", byMaterial["mat-b"])
}

func TestCommit_PanelistasDistintosNoSeMezclan(t *testing.T) {
	uc, shipRepo := newCommitUC(t)

	_, err := uc.Commit(context.Background(), "acc-1", "user-1", &dto.CommitShipmentsRequest{
		Proposals: []dto.ProposalInput{
			proposal("pan-1", map[string]int64{"mat-a": 5}),
			proposal("pan-2", map[string]int64{"mat-a": 7}),
		},
	})
	require.NoError(t, err)

	assert.Len(t, shipRepo.pendingFor("pan-1"), 1)
	assert.Len(t, shipRepo.pendingFor("pan-2"), 1)
}

// -----------------------------------------------------------------------------
// Validación todo-o-nada
// -----------------------------------------------------------------------------

func TestCommit_RechazaLoteConPropuestaSinPanelista(t *testing.T) {
	uc, shipRepo := newCommitUC(t)

	_, err := uc.Commit(context.Background(), "acc-1", "user-1", &dto.CommitShipmentsRequest{
		Proposals: []dto.ProposalInput{
			proposal("pan-1", map[string]int64{"mat-a": 5}),
			proposal("", map[string]int64{"mat-a": 3}), // sin panelista
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingPanelist)
	// La validación corre antes de cualquier escritura: ni la propuesta
	// válida se persiste.
	assert.Empty(t, shipRepo.pendingFor("pan-1"))
}

func TestCommit_RechazaCantidadNoPositiva(t *testing.T) {
	uc, _ := newCommitUC(t)

	_, err := uc.Commit(context.Background(), "acc-1", "user-1", &dto.CommitShipmentsRequest{
		Proposals: []dto.ProposalInput{proposal("pan-1", map[string]int64{"mat-a": 0})},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCommit_RechazaPropuestaSinMateriales(t *testing.T) {
	uc, _ := newCommitUC(t)

	_, err := uc.Commit(context.Background(), "acc-1", "user-1", &dto.CommitShipmentsRequest{
		Proposals: []dto.ProposalInput{{NodeID: "node-1", PanelistID: "pan-1"}},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

package planning

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	domplanning "github.com/jhoicas/logistica-api/internal/domain/planning"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
	"github.com/jhoicas/logistica-api/pkg/logger"
)

// CalculateUseCase calcula las necesidades de materiales de una ventana de
// fechas y las unifica contra los períodos pendientes persistidos. Corridas
// repetidas sobre la misma ventana no duplican necesidades: después de cada
// corrida queda a lo sumo un registro pending por material.
type CalculateUseCase struct {
	scanner      *DemandScanner
	refLoader    *ReferenceLoader
	txRunner     TxRunner
	reqRepo      repository.RequirementRepository
	stockRepo    repository.StockRepository
	materialRepo repository.MaterialRepository
	log          *logger.Logger
}

// NewCalculateUseCase construye el caso de uso.
func NewCalculateUseCase(
	scanner *DemandScanner,
	refLoader *ReferenceLoader,
	txRunner TxRunner,
	reqRepo repository.RequirementRepository,
	stockRepo repository.StockRepository,
	materialRepo repository.MaterialRepository,
	log *logger.Logger,
) *CalculateUseCase {
	return &CalculateUseCase{
		scanner:      scanner,
		refLoader:    refLoader,
		txRunner:     txRunner,
		reqRepo:      reqRepo,
		stockRepo:    stockRepo,
		materialRepo: materialRepo,
		log:          log,
	}
}

// Calculate escanea la demanda de [start, end], calcula la necesidad neta
// por material y unifica cada una contra los registros pending existentes.
// Devuelve los períodos abiertos de la ventana con su cantidad neta.
func (uc *CalculateUseCase) Calculate(ctx context.Context, accountID string, start, end time.Time) ([]dto.RequirementDTO, error) {
	lines, err := uc.scanner.ScanAll(ctx, accountID, start, end)
	if err != nil {
		return nil, err
	}
	uc.log.Debug().
		Str("account_id", accountID).
		Int("lines", len(lines)).
		Msg("escaneo de demanda completado")

	refs, err := uc.refLoader.Load(ctx, accountID, lines)
	if err != nil {
		return nil, err
	}

	requirements := domplanning.MaterialRequirements(lines, refs, start, end)

	for _, req := range requirements {
		if err := uc.unify(ctx, accountID, req); err != nil {
			return nil, err
		}
	}
	uc.log.Info().
		Str("account_id", accountID).
		Int("materials", len(requirements)).
		Msg("necesidades unificadas")

	return uc.ListRequirements(ctx, accountID, start, end)
}

// unify reconcilia la necesidad recién calculada de un material con los
// registros pending existentes, en UNA transacción: bloquea los pendientes,
// combina período (min/max) y cantidades (suma), borra los viejos e inserta
// exactamente un reemplazo. Un pending cuyo período coincide con la ventana
// de la corrida es el resultado de una corrida anterior sobre la misma
// ventana: se reemplaza en vez de sumarse, así recalcular no duplica. El
// bloqueo de fila serializa corridas concurrentes sobre el mismo material;
// materiales distintos no contienden.
func (uc *CalculateUseCase) unify(ctx context.Context, accountID string, req domplanning.MaterialRequirement) error {
	return uc.txRunner.RunRequirements(ctx, func(
		reqRepo repository.RequirementRepository,
		_ repository.StockRepository,
		_ repository.MovementRepository,
	) error {
		pending, err := reqRepo.ListPendingForUpdate(ctx, accountID, req.MaterialID)
		if err != nil {
			return err
		}

		unified := &entity.RequirementPeriod{
			ID:             uuid.New().String(),
			AccountID:      accountID,
			MaterialID:     req.MaterialID,
			PeriodStart:    req.PeriodStart,
			PeriodEnd:      req.PeriodEnd,
			QuantityNeeded: req.QuantityNeeded,
			Status:         entity.RequirementStatusPending,
			PlansCount:     req.PlansCount,
		}

		if len(pending) > 0 {
			ids := make([]string, 0, len(pending))
			for _, p := range pending {
				ids = append(ids, p.ID)
				if p.PeriodStart.Equal(req.PeriodStart) && p.PeriodEnd.Equal(req.PeriodEnd) {
					continue // misma ventana: la corrida nueva lo reemplaza
				}
				if p.PeriodStart.Before(unified.PeriodStart) {
					unified.PeriodStart = p.PeriodStart
				}
				if p.PeriodEnd.After(unified.PeriodEnd) {
					unified.PeriodEnd = p.PeriodEnd
				}
				unified.QuantityNeeded = unified.QuantityNeeded.Add(p.QuantityNeeded)
				unified.PlansCount += p.PlansCount
			}
			if err := reqRepo.DeleteByIDs(ctx, accountID, ids); err != nil {
				return err
			}
		}

		return reqRepo.Insert(ctx, unified)
	})
}

// ListRequirements lista los períodos abiertos (pending y ordered) que tocan
// la ventana, con la cantidad neta a tiempo de decisión:
// max(0, necesidad − stock regulador − en tránsito). El neto nunca se
// persiste.
func (uc *CalculateUseCase) ListRequirements(ctx context.Context, accountID string, start, end time.Time) ([]dto.RequirementDTO, error) {
	periods, err := uc.reqRepo.ListOpenByPeriod(ctx, accountID, start, end)
	if err != nil {
		return nil, err
	}
	if len(periods) == 0 {
		return []dto.RequirementDTO{}, nil
	}

	materialIDs := make([]string, 0, len(periods))
	seen := make(map[string]struct{})
	for _, p := range periods {
		if _, ok := seen[p.MaterialID]; !ok {
			seen[p.MaterialID] = struct{}{}
			materialIDs = append(materialIDs, p.MaterialID)
		}
	}

	stocks, err := uc.stockRepo.ListByMaterials(ctx, accountID, materialIDs)
	if err != nil {
		return nil, err
	}
	stockByMaterial := make(map[string]decimal.Decimal, len(stocks))
	for _, s := range stocks {
		stockByMaterial[s.MaterialID] = s.Quantity
	}

	inTransit, err := uc.reqRepo.InTransitByMaterial(ctx, accountID, materialIDs)
	if err != nil {
		return nil, err
	}

	materials, err := uc.materialRepo.ListActiveByIDs(ctx, materialIDs)
	if err != nil {
		return nil, err
	}
	materialByID := make(map[string]*entity.Material, len(materials))
	for _, m := range materials {
		materialByID[m.ID] = m
	}

	out := make([]dto.RequirementDTO, 0, len(periods))
	for _, p := range periods {
		d := requirementDTO(p, stockByMaterial[p.MaterialID], inTransit[p.MaterialID])
		if m, ok := materialByID[p.MaterialID]; ok {
			d.MaterialCode = m.Code
			d.MaterialName = m.Name
			d.UnitMeasure = m.UnitMeasure
		}
		out = append(out, d)
	}
	return out, nil
}

func requirementDTO(p *entity.RequirementPeriod, regulatorQty, inTransit decimal.Decimal) dto.RequirementDTO {
	return dto.RequirementDTO{
		ID:               p.ID,
		MaterialID:       p.MaterialID,
		PeriodStart:      p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:        p.PeriodEnd.Format("2006-01-02"),
		QuantityNeeded:   p.QuantityNeeded,
		QuantityOrdered:  p.QuantityOrdered,
		QuantityReceived: p.QuantityReceived,
		NetQuantity:      domplanning.NetQuantity(p.QuantityNeeded, regulatorQty, inTransit),
		Status:           p.Status,
		PlansCount:       p.PlansCount,
		Notes:            p.Notes,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

package stock

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
	"github.com/jhoicas/logistica-api/pkg/logger"
)

// UseCase agrupa las operaciones de consulta y ajuste manual sobre los
// pools de stock (regulador y panelistas), el log de movimientos y las
// alertas.
type UseCase struct {
	txRunner          TxRunner
	stockRepo         repository.StockRepository
	panelistStockRepo repository.PanelistStockRepository
	movRepo           repository.MovementRepository
	alertRepo         repository.AlertRepository
	log               *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	panelistStockRepo repository.PanelistStockRepository,
	movRepo repository.MovementRepository,
	alertRepo repository.AlertRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:          txRunner,
		stockRepo:         stockRepo,
		panelistStockRepo: panelistStockRepo,
		movRepo:           movRepo,
		alertRepo:         alertRepo,
		log:               log,
	}
}

// ListRegulatorStocks lista el stock del regulador de la cuenta.
func (uc *UseCase) ListRegulatorStocks(ctx context.Context, accountID string) ([]dto.RegulatorStockDTO, error) {
	stocks, err := uc.stockRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RegulatorStockDTO, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, dto.RegulatorStockDTO{
			MaterialID:  s.MaterialID,
			Quantity:    s.Quantity,
			MinStock:    s.MinStock,
			MaxStock:    s.MaxStock,
			LastUpdated: s.LastUpdated,
		})
	}
	return out, nil
}

// UpsertRegulatorStock fija la cantidad y los niveles mín/máx del regulador
// para un material. La diferencia contra la cantidad anterior queda como
// movimiento de ajuste; si la cantidad resultante cae bajo el mínimo se
// registra una alerta blanda.
func (uc *UseCase) UpsertRegulatorStock(ctx context.Context, accountID, userID string, req *dto.UpsertRegulatorStockRequest) (*dto.RegulatorStockDTO, error) {
	if req.Quantity.IsNegative() {
		return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}
	if req.MinStock != nil && req.MaxStock != nil && req.MaxStock.LessThan(*req.MinStock) {
		return nil, fmt.Errorf("%w: max_stock no puede ser menor que min_stock", domain.ErrInvalidInput)
	}

	var result *entity.MaterialStock
	err := uc.txRunner.RunStock(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.MovementRepository,
		alertRepo repository.AlertRepository,
	) error {
		stock, err := stockRepo.GetForUpdate(ctx, accountID, req.MaterialID)
		if err != nil {
			return err
		}
		previous := stock.Quantity

		stock.AccountID = accountID
		stock.MaterialID = req.MaterialID
		stock.Quantity = req.Quantity
		stock.MinStock = req.MinStock
		stock.MaxStock = req.MaxStock
		if err := stockRepo.Upsert(ctx, stock); err != nil {
			return err
		}

		delta := req.Quantity.Sub(previous)
		if !delta.IsZero() {
			movement := &entity.Movement{
				ID:             uuid.New().String(),
				AccountID:      accountID,
				MaterialID:     req.MaterialID,
				MovementType:   entity.MovementTypeAdjustment,
				Quantity:       delta.Abs(),
				ToLocationType: entity.LocationTypeRegulator,
				ReferenceType:  entity.ReferenceTypeManual,
				Notes:          req.Notes,
				CreatedBy:      userID,
			}
			if delta.IsNegative() {
				movement.FromLocationType = entity.LocationTypeRegulator
				movement.ToLocationType = ""
			}
			if err := movRepo.Create(ctx, movement); err != nil {
				return err
			}
		}

		if min := stock.MinLevel(); min.IsPositive() && stock.Quantity.LessThan(min) {
			alert := &entity.StockAlert{
				ID:               uuid.New().String(),
				AccountID:        accountID,
				MaterialID:       req.MaterialID,
				AlertType:        entity.AlertTypeBelowMinimum,
				CurrentQuantity:  stock.Quantity,
				ExpectedQuantity: min,
				ReferenceType:    entity.ReferenceTypeManual,
				Notes:            "stock bajo el mínimo tras ajuste manual",
			}
			if err := alertRepo.Create(ctx, alert); err != nil {
				return err
			}
		}
		result = stock
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("account_id", accountID).
		Str("material_id", req.MaterialID).
		Str("quantity", result.Quantity.String()).
		Msg("stock del regulador ajustado")

	return &dto.RegulatorStockDTO{
		MaterialID:  result.MaterialID,
		Quantity:    result.Quantity,
		MinStock:    result.MinStock,
		MaxStock:    result.MaxStock,
		LastUpdated: result.LastUpdated,
	}, nil
}

// ListPanelistStocks lista el stock en poder de los panelistas de la cuenta.
func (uc *UseCase) ListPanelistStocks(ctx context.Context, accountID string) ([]dto.PanelistStockDTO, error) {
	stocks, err := uc.panelistStockRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PanelistStockDTO, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, dto.PanelistStockDTO{
			PanelistID:  s.PanelistID,
			MaterialID:  s.MaterialID,
			Quantity:    s.Quantity,
			LastUpdated: s.LastUpdated,
		})
	}
	return out, nil
}

// ListMovements lista el log de movimientos, más recientes primero.
func (uc *UseCase) ListMovements(ctx context.Context, accountID string, limit, offset int) ([]dto.MovementDTO, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	movements, err := uc.movRepo.ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementDTO{
			ID:               m.ID,
			MaterialID:       m.MaterialID,
			MovementType:     m.MovementType,
			Quantity:         m.Quantity,
			FromLocationType: m.FromLocationType,
			FromLocationID:   m.FromLocationID,
			ToLocationType:   m.ToLocationType,
			ToLocationID:     m.ToLocationID,
			ReferenceID:      m.ReferenceID,
			ReferenceType:    m.ReferenceType,
			Notes:            m.Notes,
			CreatedAt:        m.CreatedAt,
		})
	}
	return out, nil
}

// ListAlerts lista las alertas de stock, más recientes primero.
func (uc *UseCase) ListAlerts(ctx context.Context, accountID string, limit, offset int) ([]dto.StockAlertDTO, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	alerts, err := uc.alertRepo.ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockAlertDTO, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.StockAlertDTO{
			ID:               a.ID,
			MaterialID:       a.MaterialID,
			AlertType:        a.AlertType,
			CurrentQuantity:  a.CurrentQuantity,
			ExpectedQuantity: a.ExpectedQuantity,
			ReferenceID:      a.ReferenceID,
			ReferenceType:    a.ReferenceType,
			Notes:            a.Notes,
			CreatedAt:        a.CreatedAt,
		})
	}
	return out, nil
}

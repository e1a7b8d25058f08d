package planning

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
	"github.com/jhoicas/logistica-api/pkg/logger"
)

// RequirementActionsUseCase implementa las acciones de ciclo de vida sobre
// los períodos de necesidades: marcar como pedido, recibir la orden de
// compra y eliminar.
type RequirementActionsUseCase struct {
	txRunner TxRunner
	reqRepo  repository.RequirementRepository
	log      *logger.Logger
}

// NewRequirementActionsUseCase construye el caso de uso.
func NewRequirementActionsUseCase(txRunner TxRunner, reqRepo repository.RequirementRepository, log *logger.Logger) *RequirementActionsUseCase {
	return &RequirementActionsUseCase{txRunner: txRunner, reqRepo: reqRepo, log: log}
}

// MarkAsOrdered transiciona un registro pending → ordered con la cantidad
// pedida. Si quantity es nil se usa quantity_needed del registro. Solo los
// registros pending admiten la transición.
func (uc *RequirementActionsUseCase) MarkAsOrdered(ctx context.Context, accountID, id string, quantity *decimal.Decimal) (*entity.RequirementPeriod, error) {
	var result *entity.RequirementPeriod
	err := uc.txRunner.RunRequirements(ctx, func(
		reqRepo repository.RequirementRepository,
		_ repository.StockRepository,
		_ repository.MovementRepository,
	) error {
		req, err := reqRepo.GetByIDForUpdate(ctx, accountID, id)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Status != entity.RequirementStatusPending {
			return fmt.Errorf("%w: solo registros pending pueden marcarse como pedidos (estado actual: %s)", domain.ErrInvalidTransition, req.Status)
		}

		ordered := req.QuantityNeeded
		if quantity != nil {
			ordered = *quantity
		}
		if !ordered.IsPositive() {
			return fmt.Errorf("%w: la cantidad pedida debe ser positiva", domain.ErrInvalidInput)
		}

		req.QuantityOrdered = ordered
		req.Status = entity.RequirementStatusOrdered
		if err := reqRepo.Update(ctx, req); err != nil {
			return err
		}
		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("account_id", accountID).
		Str("requirement_id", id).
		Str("quantity_ordered", result.QuantityOrdered.String()).
		Msg("necesidad marcada como pedida")
	return result, nil
}

// ReceivePO registra la recepción de una orden de compra: transiciona
// ordered → received, incrementa el stock del regulador y apendiza el
// movimiento de entrada, todo en una transacción.
func (uc *RequirementActionsUseCase) ReceivePO(ctx context.Context, accountID, userID, id string, quantity decimal.Decimal) (*entity.RequirementPeriod, error) {
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad recibida debe ser positiva", domain.ErrInvalidInput)
	}

	var result *entity.RequirementPeriod
	err := uc.txRunner.RunRequirements(ctx, func(
		reqRepo repository.RequirementRepository,
		stockRepo repository.StockRepository,
		movRepo repository.MovementRepository,
	) error {
		req, err := reqRepo.GetByIDForUpdate(ctx, accountID, id)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Status != entity.RequirementStatusOrdered {
			return fmt.Errorf("%w: solo registros ordered pueden recibirse (estado actual: %s)", domain.ErrInvalidTransition, req.Status)
		}

		req.QuantityReceived = req.QuantityReceived.Add(quantity)
		req.Status = entity.RequirementStatusReceived
		if err := reqRepo.Update(ctx, req); err != nil {
			return err
		}

		stock, err := stockRepo.GetForUpdate(ctx, accountID, req.MaterialID)
		if err != nil {
			return err
		}
		stock.AccountID = accountID
		stock.MaterialID = req.MaterialID
		stock.Quantity = stock.Quantity.Add(quantity)
		if err := stockRepo.Upsert(ctx, stock); err != nil {
			return err
		}

		movement := &entity.Movement{
			ID:             uuid.New().String(),
			AccountID:      accountID,
			MaterialID:     req.MaterialID,
			MovementType:   entity.MovementTypeReceipt,
			Quantity:       quantity,
			ToLocationType: entity.LocationTypeRegulator,
			ReferenceID:    req.ID,
			ReferenceType:  entity.ReferenceTypeRequirement,
			Notes:          "recepción de orden de compra",
			CreatedBy:      userID,
		}
		if err := movRepo.Create(ctx, movement); err != nil {
			return err
		}
		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("account_id", accountID).
		Str("requirement_id", id).
		Str("material_id", result.MaterialID).
		Str("quantity_received", quantity.String()).
		Msg("orden de compra recibida")
	return result, nil
}

// Delete elimina un registro de necesidades desde cualquier estado. No deja
// tombstone: la próxima corrida del calculador regenera lo pendiente.
func (uc *RequirementActionsUseCase) Delete(ctx context.Context, accountID, id string) error {
	req, err := uc.reqRepo.GetByID(ctx, accountID, id)
	if err != nil {
		return err
	}
	if req == nil {
		return domain.ErrNotFound
	}
	if err := uc.reqRepo.Delete(ctx, accountID, id); err != nil {
		return err
	}
	uc.log.Info().
		Str("account_id", accountID).
		Str("requirement_id", id).
		Str("status", req.Status).
		Msg("necesidad eliminada")
	return nil
}

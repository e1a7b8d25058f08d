package planning

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
	"github.com/jhoicas/logistica-api/pkg/logger"
)

// ShipmentActionsUseCase implementa las acciones sobre envíos persistidos:
// confirmar despacho, eliminar y listar.
type ShipmentActionsUseCase struct {
	txRunner TxRunner
	shipRepo repository.ShipmentRepository
	log      *logger.Logger
}

// NewShipmentActionsUseCase construye el caso de uso.
func NewShipmentActionsUseCase(txRunner TxRunner, shipRepo repository.ShipmentRepository, log *logger.Logger) *ShipmentActionsUseCase {
	return &ShipmentActionsUseCase{txRunner: txRunner, shipRepo: shipRepo, log: log}
}

// Confirm despacha un envío pendiente: por cada ítem confirmado decrementa el
// stock del regulador (piso en cero, con alerta blanda si no alcanza),
// incrementa el stock del panelista y apendiza los movimientos de salida y
// entrada. Los ítems del envío ausentes de la confirmación se re-emiten en un
// nuevo envío pendiente. El envío confirmado se elimina; los movimientos
// quedan como rastro de auditoría.
func (uc *ShipmentActionsUseCase) Confirm(ctx context.Context, accountID, userID, id string, req *dto.ConfirmShipmentRequest) (*dto.ConfirmShipmentResult, error) {
	sentDate, err := time.Parse("2006-01-02", req.SentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha de despacho inválida: %s", domain.ErrInvalidInput, req.SentDate)
	}
	for _, item := range req.Items {
		if !item.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: cantidad no positiva para el ítem %s", domain.ErrInvalidInput, item.ItemID)
		}
	}

	result := &dto.ConfirmShipmentResult{SentDate: sentDate}
	err = uc.txRunner.RunShipments(ctx, func(
		shipRepo repository.ShipmentRepository,
		stockRepo repository.StockRepository,
		panelistStockRepo repository.PanelistStockRepository,
		movRepo repository.MovementRepository,
		alertRepo repository.AlertRepository,
	) error {
		shipment, err := shipRepo.GetByIDForUpdate(ctx, accountID, id)
		if err != nil {
			return err
		}
		if shipment == nil {
			return domain.ErrNotFound
		}
		if shipment.Status != entity.ShipmentStatusPending {
			return fmt.Errorf("%w: solo envíos pending pueden confirmarse (estado actual: %s)", domain.ErrInvalidTransition, shipment.Status)
		}

		confirmed := make(map[string]dto.ConfirmItemInput, len(req.Items))
		for _, item := range req.Items {
			if _, dup := confirmed[item.ItemID]; dup {
				return fmt.Errorf("%w: ítem %s repetido en la confirmación", domain.ErrInvalidInput, item.ItemID)
			}
			confirmed[item.ItemID] = item
		}

		var remaining []entity.ShipmentItem
		for _, item := range shipment.Items {
			input, ok := confirmed[item.ID]
			if !ok {
				remaining = append(remaining, item)
				continue
			}
			delete(confirmed, item.ID)
			if err := uc.dispatchItem(ctx, stockRepo, panelistStockRepo, movRepo, alertRepo, shipment, item.MaterialID, input.Quantity, userID); err != nil {
				return err
			}
			result.ConfirmedItems++
		}
		for itemID := range confirmed {
			return fmt.Errorf("%w: el ítem %s no pertenece al envío", domain.ErrInvalidInput, itemID)
		}

		// El envío confirmado desaparece; lo no despachado se re-emite como
		// un nuevo envío pendiente del mismo panelista.
		if err := shipRepo.DeleteWithItems(ctx, accountID, []string{shipment.ID}); err != nil {
			return err
		}
		if len(remaining) > 0 {
			reissued := &entity.Shipment{
				ID:         uuid.New().String(),
				AccountID:  accountID,
				PanelistID: shipment.PanelistID,
				Status:     entity.ShipmentStatusPending,
				Notes:      "re-emitido desde " + shipment.ShipmentNumber,
				CreatedBy:  userID,
			}
			reissued.ShipmentNumber = shipmentNumber(reissued.ID)
			for _, item := range remaining {
				reissued.Items = append(reissued.Items, entity.ShipmentItem{
					ID:           uuid.New().String(),
					AccountID:    accountID,
					ShipmentID:   reissued.ID,
					MaterialID:   item.MaterialID,
					QuantitySent: item.QuantitySent,
					Notes:        item.Notes,
				})
			}
			reissued.TotalItems = len(reissued.Items)
			if err := shipRepo.Insert(ctx, reissued); err != nil {
				return err
			}
			result.ReissuedShipmentID = reissued.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("account_id", accountID).
		Str("shipment_id", id).
		Int("confirmed_items", result.ConfirmedItems).
		Str("reissued_shipment_id", result.ReissuedShipmentID).
		Msg("envío confirmado")
	return result, nil
}

// dispatchItem aplica el despacho de un material: regulador −qty (piso en
// cero), panelista +qty, movimientos de salida y entrada. Si el regulador no
// cubre la cantidad se registra una alerta blanda y el despacho continúa.
func (uc *ShipmentActionsUseCase) dispatchItem(
	ctx context.Context,
	stockRepo repository.StockRepository,
	panelistStockRepo repository.PanelistStockRepository,
	movRepo repository.MovementRepository,
	alertRepo repository.AlertRepository,
	shipment *entity.Shipment,
	materialID string,
	quantity decimal.Decimal,
	userID string,
) error {
	stock, err := stockRepo.GetForUpdate(ctx, shipment.AccountID, materialID)
	if err != nil {
		return err
	}
	if stock.Quantity.LessThan(quantity) {
		alert := &entity.StockAlert{
			ID:               uuid.New().String(),
			AccountID:        shipment.AccountID,
			MaterialID:       materialID,
			AlertType:        entity.AlertTypeRegulatorInsufficient,
			CurrentQuantity:  stock.Quantity,
			ExpectedQuantity: quantity,
			ReferenceID:      shipment.ID,
			ReferenceType:    entity.ReferenceTypeShipment,
			Notes:            "stock del regulador insuficiente al confirmar envío",
		}
		if err := alertRepo.Create(ctx, alert); err != nil {
			return err
		}
	}
	stock.AccountID = shipment.AccountID
	stock.MaterialID = materialID
	stock.Quantity = stock.Quantity.Sub(quantity)
	if stock.Quantity.IsNegative() {
		stock.Quantity = decimal.Zero
	}
	if err := stockRepo.Upsert(ctx, stock); err != nil {
		return err
	}

	panelistStock, err := panelistStockRepo.GetForUpdate(ctx, shipment.AccountID, shipment.PanelistID, materialID)
	if err != nil {
		return err
	}
	panelistStock.AccountID = shipment.AccountID
	panelistStock.PanelistID = shipment.PanelistID
	panelistStock.MaterialID = materialID
	panelistStock.Quantity = panelistStock.Quantity.Add(quantity)
	if err := panelistStockRepo.Upsert(ctx, panelistStock); err != nil {
		return err
	}

	movements := []*entity.Movement{
		{
			ID:               uuid.New().String(),
			AccountID:        shipment.AccountID,
			MaterialID:       materialID,
			MovementType:     entity.MovementTypeDispatch,
			Quantity:         quantity,
			FromLocationType: entity.LocationTypeRegulator,
			ToLocationType:   entity.LocationTypePanelist,
			ToLocationID:     shipment.PanelistID,
			ReferenceID:      shipment.ID,
			ReferenceType:    entity.ReferenceTypeShipment,
			CreatedBy:        userID,
		},
		{
			ID:               uuid.New().String(),
			AccountID:        shipment.AccountID,
			MaterialID:       materialID,
			MovementType:     entity.MovementTypeReceipt,
			Quantity:         quantity,
			FromLocationType: entity.LocationTypeRegulator,
			ToLocationType:   entity.LocationTypePanelist,
			ToLocationID:     shipment.PanelistID,
			ReferenceID:      shipment.ID,
			ReferenceType:    entity.ReferenceTypeShipment,
			CreatedBy:        userID,
		},
	}
	for _, m := range movements {
		if err := movRepo.Create(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// Delete elimina un envío pendiente con sus ítems. Los envíos confirmados ya
// no existen como filas, solo como movimientos.
func (uc *ShipmentActionsUseCase) Delete(ctx context.Context, accountID, id string) error {
	shipment, err := uc.shipRepo.GetByID(ctx, accountID, id)
	if err != nil {
		return err
	}
	if shipment == nil {
		return domain.ErrNotFound
	}
	if err := uc.shipRepo.DeleteWithItems(ctx, accountID, []string{id}); err != nil {
		return err
	}
	uc.log.Info().
		Str("account_id", accountID).
		Str("shipment_id", id).
		Msg("envío eliminado")
	return nil
}

// List devuelve los envíos de la cuenta con sus ítems, más recientes primero.
func (uc *ShipmentActionsUseCase) List(ctx context.Context, accountID string) ([]dto.ShipmentDTO, error) {
	shipments, err := uc.shipRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ShipmentDTO, 0, len(shipments))
	for _, s := range shipments {
		out = append(out, shipmentDTO(s))
	}
	return out, nil
}

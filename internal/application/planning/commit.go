package planning

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
	"github.com/jhoicas/logistica-api/pkg/logger"
)

// CommitShipmentsUseCase consolida las propuestas aceptadas en envíos
// persistidos, manteniendo a lo sumo un envío pendiente por panelista:
// las cantidades de los envíos pendientes existentes se fusionan con
// las nuevas en una sola operación delete+insert transaccional.
type CommitShipmentsUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewCommitShipmentsUseCase construye el caso de uso.
func NewCommitShipmentsUseCase(txRunner TxRunner, log *logger.Logger) *CommitShipmentsUseCase {
	return &CommitShipmentsUseCase{txRunner: txRunner, log: log}
}

// Commit valida TODAS las propuestas antes de escribir nada y luego
// consolida por panelista. Una propuesta sin panelista hace fallar el lote
// completo (todo o nada).
func (uc *CommitShipmentsUseCase) Commit(ctx context.Context, accountID, userID string, req *dto.CommitShipmentsRequest) ([]dto.ShipmentDTO, error) {
	if err := validateProposals(req.Proposals); err != nil {
		return nil, err
	}

	results := make([]dto.ShipmentDTO, 0, len(req.Proposals))
	for _, proposal := range req.Proposals {
		shipment, err := uc.consolidate(ctx, accountID, userID, proposal)
		if err != nil {
			return results, fmt.Errorf("consolidando envío del panelista %s: %w", proposal.PanelistID, err)
		}
		results = append(results, shipmentDTO(shipment))
	}
	return results, nil
}

// consolidate fusiona los envíos pendientes existentes del panelista con la
// propuesta nueva en un único envío pendiente, dentro de una transacción con
// bloqueo de filas para serializar commits concurrentes sobre el mismo
// panelista.
func (uc *CommitShipmentsUseCase) consolidate(ctx context.Context, accountID, userID string, proposal dto.ProposalInput) (*entity.Shipment, error) {
	var result *entity.Shipment
	err := uc.txRunner.RunShipments(ctx, func(
		shipRepo repository.ShipmentRepository,
		_ repository.StockRepository,
		_ repository.PanelistStockRepository,
		_ repository.MovementRepository,
		_ repository.AlertRepository,
	) error {
		existing, err := shipRepo.ListPendingByPanelistForUpdate(ctx, accountID, proposal.PanelistID)
		if err != nil {
			return err
		}

		// Las cantidades existentes van primero para preservar el orden de
		// los ítems ya comprometidos; lo nuevo se suma o se apendiza.
		merged := make(map[string]decimal.Decimal)
		var order []string
		notes := make(map[string]string)
		for _, s := range existing {
			for _, item := range s.Items {
				if _, seen := merged[item.MaterialID]; !seen {
					order = append(order, item.MaterialID)
					notes[item.MaterialID] = item.Notes
				}
				merged[item.MaterialID] = merged[item.MaterialID].Add(item.QuantitySent)
			}
		}
		for _, m := range proposal.Materials {
			if _, seen := merged[m.MaterialID]; !seen {
				order = append(order, m.MaterialID)
			}
			merged[m.MaterialID] = merged[m.MaterialID].Add(m.Quantity)
		}

		if len(existing) > 0 {
			ids := make([]string, 0, len(existing))
			for _, s := range existing {
				ids = append(ids, s.ID)
			}
			if err := shipRepo.DeleteWithItems(ctx, accountID, ids); err != nil {
				return err
			}
		}

		shipment := &entity.Shipment{
			ID:         uuid.New().String(),
			AccountID:  accountID,
			PanelistID: proposal.PanelistID,
			Status:     entity.ShipmentStatusPending,
			CreatedBy:  userID,
		}
		shipment.ShipmentNumber = shipmentNumber(shipment.ID)
		for _, materialID := range order {
			shipment.Items = append(shipment.Items, entity.ShipmentItem{
				ID:           uuid.New().String(),
				AccountID:    accountID,
				ShipmentID:   shipment.ID,
				MaterialID:   materialID,
				QuantitySent: merged[materialID],
				Notes:        notes[materialID],
			})
		}
		shipment.TotalItems = len(shipment.Items)

		if err := shipRepo.Insert(ctx, shipment); err != nil {
			return err
		}

		uc.log.Info().
			Str("account_id", accountID).
			Str("panelist_id", proposal.PanelistID).
			Int("merged_shipments", len(existing)).
			Int("items", shipment.TotalItems).
			Msg("envío pendiente consolidado")

		result = shipment
		return nil
	})
	return result, err
}

// validateProposals valida el lote completo antes de cualquier escritura.
func validateProposals(proposals []dto.ProposalInput) error {
	for _, p := range proposals {
		if p.PanelistID == "" {
			return fmt.Errorf("%w: el nodo %s no tiene panelista asignado", domain.ErrMissingPanelist, p.NodeID)
		}
		if len(p.Materials) == 0 {
			return fmt.Errorf("%w: la propuesta del panelista %s no tiene materiales", domain.ErrInvalidInput, p.PanelistID)
		}
		for _, m := range p.Materials {
			if m.MaterialID == "" {
				return fmt.Errorf("%w: material sin id en la propuesta del panelista %s", domain.ErrInvalidInput, p.PanelistID)
			}
			if !m.Quantity.IsPositive() {
				return fmt.Errorf("%w: cantidad no positiva para el material %s", domain.ErrInvalidInput, m.MaterialID)
			}
		}
	}
	return nil
}

// shipmentNumber deriva un número corto legible del id del envío.
func shipmentNumber(id string) string {
	return "ENV-" + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8])
}

func shipmentDTO(s *entity.Shipment) dto.ShipmentDTO {
	out := dto.ShipmentDTO{
		ID:             s.ID,
		ShipmentNumber: s.ShipmentNumber,
		PanelistID:     s.PanelistID,
		Status:         s.Status,
		ExpectedDate:   s.ExpectedDate,
		TrackingNumber: s.TrackingNumber,
		TotalItems:     s.TotalItems,
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
		Items:          make([]dto.ShipmentItemDTO, 0, len(s.Items)),
	}
	for _, item := range s.Items {
		out.Items = append(out.Items, dto.ShipmentItemDTO{
			ID:           item.ID,
			MaterialID:   item.MaterialID,
			QuantitySent: item.QuantitySent,
		})
	}
	return out
}

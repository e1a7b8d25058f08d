package planning

import (
	"context"
	"time"

	"github.com/jhoicas/logistica-api/internal/application/dto"
	domplanning "github.com/jhoicas/logistica-api/internal/domain/planning"
	"github.com/jhoicas/logistica-api/pkg/logger"
)

// ProposeShipmentsUseCase calcula los envíos propuestos por nodo y el
// reporte informativo de necesidades por nodo/panelista para una ventana.
// No escribe nada: las propuestas son efímeras hasta el commit.
type ProposeShipmentsUseCase struct {
	scanner   *DemandScanner
	refLoader *ReferenceLoader
	log       *logger.Logger
}

// NewProposeShipmentsUseCase construye el caso de uso.
func NewProposeShipmentsUseCase(scanner *DemandScanner, refLoader *ReferenceLoader, log *logger.Logger) *ProposeShipmentsUseCase {
	return &ProposeShipmentsUseCase{scanner: scanner, refLoader: refLoader, log: log}
}

// Propose escanea la demanda de [start, end] y devuelve un envío propuesto
// por nodo (cantidades brutas BOM: qué debe moverse físicamente) más el
// desglose informativo por nodo. Los nodos sin panelista resoluble vienen
// con assignment_status pending y serán rechazados por el commit.
func (uc *ProposeShipmentsUseCase) Propose(ctx context.Context, accountID string, start, end time.Time) (*dto.ProposeShipmentsResponse, error) {
	lines, err := uc.scanner.ScanAll(ctx, accountID, start, end)
	if err != nil {
		return nil, err
	}
	refs, err := uc.refLoader.Load(ctx, accountID, lines)
	if err != nil {
		return nil, err
	}

	proposals := domplanning.BuildProposedShipments(lines, refs)
	report := domplanning.NodeRequirements(lines, refs)

	uc.log.Debug().
		Str("account_id", accountID).
		Int("proposals", len(proposals)).
		Msg("envíos propuestos calculados")

	resp := &dto.ProposeShipmentsResponse{
		Proposals:        make([]dto.ProposedShipmentDTO, 0, len(proposals)),
		NodeRequirements: make([]dto.NodeRequirementDTO, 0, len(report)),
	}
	for _, p := range proposals {
		resp.Proposals = append(resp.Proposals, dto.ProposedShipmentDTO{
			NodeID:           p.NodeID,
			NodeName:         p.NodeName,
			PanelistID:       p.PanelistID,
			PanelistName:     p.PanelistName,
			PanelistCode:     p.PanelistCode,
			AssignmentStatus: p.AssignmentStatus,
			Materials:        nodeMaterialDTOs(p.Materials),
			TotalQuantity:    p.TotalQuantity,
			TotalItems:       p.TotalItems,
		})
	}
	for _, r := range report {
		resp.NodeRequirements = append(resp.NodeRequirements, dto.NodeRequirementDTO{
			NodeID:           r.NodeID,
			NodeName:         r.NodeName,
			PanelistID:       r.PanelistID,
			PanelistName:     r.PanelistName,
			AssignmentStatus: r.AssignmentStatus,
			Materials:        nodeMaterialDTOs(r.Materials),
			TotalQuantity:    r.TotalQuantity,
		})
	}
	return resp, nil
}

func nodeMaterialDTOs(materials []domplanning.NodeMaterial) []dto.NodeMaterialDTO {
	out := make([]dto.NodeMaterialDTO, 0, len(materials))
	for _, m := range materials {
		out = append(out, dto.NodeMaterialDTO{
			MaterialID:     m.MaterialID,
			MaterialCode:   m.MaterialCode,
			MaterialName:   m.MaterialName,
			UnitMeasure:    m.UnitMeasure,
			QuantityNeeded: m.QuantityNeeded,
		})
	}
	return out
}

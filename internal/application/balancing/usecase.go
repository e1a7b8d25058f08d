package balancing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
	"github.com/jhoicas/logistica-api/pkg/logger"
)

// maxMovementsLimit acota el tamaño de la vista previa de balanceo.
const maxMovementsLimit = 200

// UseCase expone la vista previa del balanceo de carga entre nodos. El
// cálculo pesado corre dentro del store; aquí solo se consume el resultado.
type UseCase struct {
	balanceRepo repository.BalanceRepository
	log         *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(balanceRepo repository.BalanceRepository, log *logger.Logger) *UseCase {
	return &UseCase{balanceRepo: balanceRepo, log: log}
}

// Preview devuelve los movimientos de balanceo propuestos sin aplicarlos.
func (uc *UseCase) Preview(ctx context.Context, accountID string, maxMovements int) (*dto.BalancePreviewDTO, error) {
	if maxMovements <= 0 {
		maxMovements = 50
	}
	if maxMovements > maxMovementsLimit {
		return nil, fmt.Errorf("%w: max_movements no puede superar %d", domain.ErrInvalidInput, maxMovementsLimit)
	}

	preview, err := uc.balanceRepo.Preview(ctx, accountID, maxMovements)
	if err != nil {
		return nil, err
	}

	out := &dto.BalancePreviewDTO{
		MovementsCount: preview.MovementsCount,
		StddevBefore:   preview.StddevBefore,
		StddevAfter:    preview.StddevAfter,
	}
	// Las matrices son opacas: se decodifican solo para re-serializar tal
	// cual en la respuesta.
	if len(preview.MatrixBefore) > 0 {
		if err := json.Unmarshal(preview.MatrixBefore, &out.MatrixBefore); err != nil {
			return nil, fmt.Errorf("matriz de balanceo inválida: %w", err)
		}
	}
	if len(preview.MatrixAfter) > 0 {
		if err := json.Unmarshal(preview.MatrixAfter, &out.MatrixAfter); err != nil {
			return nil, fmt.Errorf("matriz de balanceo inválida: %w", err)
		}
	}

	uc.log.Debug().
		Str("account_id", accountID).
		Int("movements", out.MovementsCount).
		Msg("vista previa de balanceo")
	return out, nil
}

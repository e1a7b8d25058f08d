package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

// UseCase consultas de solo lectura sobre el catálogo de materiales.
type UseCase struct {
	materialRepo repository.MaterialRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(materialRepo repository.MaterialRepository) *UseCase {
	return &UseCase{materialRepo: materialRepo}
}

// ListMaterials lista el catálogo de la cuenta; status vacío lista todos.
func (uc *UseCase) ListMaterials(ctx context.Context, accountID, status string) ([]dto.MaterialDTO, error) {
	switch status {
	case "", entity.MaterialStatusActive, entity.MaterialStatusInactive:
	default:
		return nil, fmt.Errorf("%w: estado de material desconocido: %s", domain.ErrInvalidInput, status)
	}
	materials, err := uc.materialRepo.ListByAccount(ctx, accountID, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialDTO, 0, len(materials))
	for _, m := range materials {
		out = append(out, dto.MaterialDTO{
			ID:          m.ID,
			Code:        m.Code,
			Name:        m.Name,
			UnitMeasure: m.UnitMeasure,
			Status:      m.Status,
		})
	}
	return out, nil
}

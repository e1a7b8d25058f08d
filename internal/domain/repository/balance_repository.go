package repository

import (
	"context"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// BalanceRepository define el puerto hacia el procedimiento externo de
// balanceo de carga entre nodos. El cálculo pesado ocurre dentro del store;
// este servicio solo consume el resultado pre-computado.
type BalanceRepository interface {
	Preview(ctx context.Context, accountID string, maxMovements int) (*entity.BalancePreview, error)
}

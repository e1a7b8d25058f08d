package repository

import (
	"context"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// MovementRepository define el puerto de apéndice del log de movimientos de
// materiales (material_movements).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// ListByAccount lista movimientos, más recientes primero, con paginación.
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*entity.Movement, error)
}

// AlertRepository define el puerto de apéndice de alertas de stock
// (stock_alerts).
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.StockAlert) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*entity.StockAlert, error)
}

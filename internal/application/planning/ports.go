package planning

import (
	"context"

	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad de las secuencias
// leer-fusionar-borrar-insertar del motor (unificación de necesidades y
// consolidación de envíos) y de las acciones que mutan stock.
type TxRunner interface {
	// RunRequirements abre una tx con los repos del motor de necesidades.
	RunRequirements(ctx context.Context, fn func(
		reqRepo repository.RequirementRepository,
		stockRepo repository.StockRepository,
		movRepo repository.MovementRepository,
	) error) error

	// RunShipments abre una tx con los repos del motor de envíos.
	RunShipments(ctx context.Context, fn func(
		shipRepo repository.ShipmentRepository,
		stockRepo repository.StockRepository,
		panelistStockRepo repository.PanelistStockRepository,
		movRepo repository.MovementRepository,
		alertRepo repository.AlertRepository,
	) error) error
}

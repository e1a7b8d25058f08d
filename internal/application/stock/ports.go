package stock

import (
	"context"

	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Los ajustes manuales de stock mutan la fila
// y apendizan el movimiento y la eventual alerta en la misma transacción.
type TxRunner interface {
	RunStock(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.MovementRepository,
		alertRepo repository.AlertRepository,
	) error) error
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// DemandLineRepository define el puerto de lectura de líneas de plan
// programadas (allocation_plan_details + allocation_plans).
type DemandLineRepository interface {
	// ListScheduledPage devuelve una página de líneas accionables cuya fecha
	// programada cae en [start, end] (inclusive), con keyset por id
	// (id > afterID, orden ascendente por id). Una página corta indica fin.
	// La línea viene con el product_id del plan padre ya resuelto; las líneas
	// cuyo plan no existe llegan con ProductID vacío.
	ListScheduledPage(ctx context.Context, accountID string, start, end time.Time, afterID string, limit int) ([]entity.DemandLine, error)
}

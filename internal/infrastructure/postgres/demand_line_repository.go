package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

var _ repository.DemandLineRepository = (*DemandLineRepo)(nil)

// DemandLineRepo lectura de líneas de plan programadas sobre PostgreSQL
// (allocation_plan_details unida a allocation_plans para el producto).
type DemandLineRepo struct {
	q Querier
}

// NewDemandLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDemandLineRepository(q Querier) *DemandLineRepo {
	return &DemandLineRepo{q: q}
}

// ListScheduledPage devuelve una página keyset de líneas accionables con
// fecha programada en [start, end]. El cursor se compara como texto: el id
// es uuid y un cursor vacío (primera página) no castea. El LEFT JOIN
// deja ProductID vacío cuando el plan padre no existe; el calculador ignora
// esas líneas en vez de fallar.
func (r *DemandLineRepo) ListScheduledPage(ctx context.Context, accountID string, start, end time.Time, afterID string, limit int) ([]entity.DemandLine, error) {
	query := `
		SELECT d.id, d.account_id, d.allocation_plan_id,
		       COALESCE(p.product_id::text, ''),
		       d.fecha_programada, d.status,
		       COALESCE(d.origin_node_id::text, ''),
		       COALESCE(d.origin_panelist_id::text, '')
		FROM allocation_plan_details d
		LEFT JOIN allocation_plans p ON p.id = d.allocation_plan_id
		WHERE d.account_id = $1
		  AND d.fecha_programada >= $2 AND d.fecha_programada <= $3
		  AND d.status = ANY($4)
		  AND ($5 = '' OR d.id::text > $5)
		ORDER BY d.id::text
		LIMIT $6`
	rows, err := r.q.Query(ctx, query,
		accountID, start, end, entity.ActionableDemandStatuses, afterID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list scheduled demand: %w", err)
	}
	defer rows.Close()

	lines := make([]entity.DemandLine, 0, limit)
	for rows.Next() {
		var l entity.DemandLine
		if err := rows.Scan(
			&l.ID, &l.AccountID, &l.PlanID, &l.ProductID,
			&l.ScheduledDate, &l.Status, &l.OriginNodeID, &l.OriginPanelistID,
		); err != nil {
			return nil, fmt.Errorf("scan demand line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate demand lines: %w", err)
	}
	return lines, nil
}

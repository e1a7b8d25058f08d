package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo lectura del catálogo de materiales (material_catalog).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, account_id, code, name, COALESCE(unit_measure, ''), status, created_at, updated_at`

// ListActiveByIDs devuelve las entradas activas del catálogo para un
// conjunto de ids; las inactivas se omiten.
func (r *MaterialRepo) ListActiveByIDs(ctx context.Context, ids []string) ([]*entity.Material, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + materialColumns + `
		FROM material_catalog
		WHERE id = ANY($1) AND status = $2`
	rows, err := r.q.Query(ctx, query, ids, entity.MaterialStatusActive)
	if err != nil {
		return nil, fmt.Errorf("list active materials: %w", err)
	}
	defer rows.Close()
	return scanMaterials(rows)
}

// ListByAccount lista el catálogo de una cuenta; status vacío lista todos.
func (r *MaterialRepo) ListByAccount(ctx context.Context, accountID, status string) ([]*entity.Material, error) {
	query := `
		SELECT ` + materialColumns + `
		FROM material_catalog
		WHERE account_id = $1`
	args := []any{accountID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY code`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	return scanMaterials(rows)
}

func scanMaterials(rows pgx.Rows) ([]*entity.Material, error) {
	materials := make([]*entity.Material, 0)
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(
			&m.ID, &m.AccountID, &m.Code, &m.Name,
			&m.UnitMeasure, &m.Status, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		materials = append(materials, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}
	return materials, nil
}

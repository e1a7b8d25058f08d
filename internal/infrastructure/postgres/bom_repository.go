package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

var _ repository.BomRepository = (*BomRepo)(nil)

// BomRepo lectura de listas de materiales (product_materials).
type BomRepo struct {
	q Querier
}

// NewBomRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBomRepository(q Querier) *BomRepo {
	return &BomRepo{q: q}
}

// ListByProducts devuelve las líneas BOM de un conjunto de productos.
func (r *BomRepo) ListByProducts(ctx context.Context, accountID string, productIDs []string) ([]entity.BomLine, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT account_id, product_id, material_id, quantity
		FROM product_materials
		WHERE account_id = $1 AND product_id = ANY($2)`
	rows, err := r.q.Query(ctx, query, accountID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("list bom lines: %w", err)
	}
	defer rows.Close()

	lines := make([]entity.BomLine, 0)
	for rows.Next() {
		var l entity.BomLine
		if err := rows.Scan(&l.AccountID, &l.ProductID, &l.MaterialID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan bom line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bom lines: %w", err)
	}
	return lines, nil
}

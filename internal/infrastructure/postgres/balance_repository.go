package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo adaptador del procedimiento almacenado de balanceo de carga
// entre nodos. El cálculo pesado vive en el store; aquí solo se invoca y se
// decodifica el JSON resultante.
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// Preview invoca balance_node_load en modo vista previa (sin aplicar).
func (r *BalanceRepo) Preview(ctx context.Context, accountID string, maxMovements int) (*entity.BalancePreview, error) {
	query := `SELECT balance_node_load($1, $2, false)`
	var raw []byte
	if err := r.q.QueryRow(ctx, query, accountID, maxMovements).Scan(&raw); err != nil {
		return nil, fmt.Errorf("balance preview: %w", err)
	}

	var preview entity.BalancePreview
	if err := json.Unmarshal(raw, &preview); err != nil {
		return nil, fmt.Errorf("decode balance preview: %w", err)
	}
	return &preview, nil
}

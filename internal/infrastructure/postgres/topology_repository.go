package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

var _ repository.NodeRepository = (*NodeRepo)(nil)
var _ repository.PanelistRepository = (*PanelistRepo)(nil)

// NodeRepo lectura de nodos de la topología (nodes).
type NodeRepo struct {
	q Querier
}

// NewNodeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNodeRepository(q Querier) *NodeRepo {
	return &NodeRepo{q: q}
}

// ListByIDs devuelve los nodos de un conjunto de ids.
func (r *NodeRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Node, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, account_id, COALESCE(auto_id, ''), created_at
		FROM nodes
		WHERE id = ANY($1)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	defer rows.Close()

	nodes := make([]*entity.Node, 0, len(ids))
	for rows.Next() {
		var n entity.Node
		if err := rows.Scan(&n.ID, &n.AccountID, &n.AutoID, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		nodes = append(nodes, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nodes: %w", err)
	}
	return nodes, nil
}

// PanelistRepo lectura de panelistas y de la asignación nodo→panelista
// (panelists).
type PanelistRepo struct {
	q Querier
}

// NewPanelistRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPanelistRepository(q Querier) *PanelistRepo {
	return &PanelistRepo{q: q}
}

const panelistColumns = `id, account_id, COALESCE(name, ''), COALESCE(panelist_code, ''), COALESCE(node_id::text, ''), created_at`

// ListByNodes devuelve los panelistas asignados a un conjunto de nodos.
func (r *PanelistRepo) ListByNodes(ctx context.Context, accountID string, nodeIDs []string) ([]*entity.Panelist, error) {
	if len(nodeIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + panelistColumns + `
		FROM panelists
		WHERE account_id = $1 AND node_id = ANY($2)`
	rows, err := r.q.Query(ctx, query, accountID, nodeIDs)
	if err != nil {
		return nil, fmt.Errorf("list panelists by nodes: %w", err)
	}
	defer rows.Close()
	return scanPanelists(rows)
}

// ListByIDs devuelve panelistas por id.
func (r *PanelistRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Panelist, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + panelistColumns + `
		FROM panelists
		WHERE id = ANY($1)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list panelists: %w", err)
	}
	defer rows.Close()
	return scanPanelists(rows)
}

// GetByID devuelve un panelista, o nil si no existe.
func (r *PanelistRepo) GetByID(ctx context.Context, id string) (*entity.Panelist, error) {
	query := `
		SELECT ` + panelistColumns + `
		FROM panelists
		WHERE id = $1`
	var p entity.Panelist
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.AccountID, &p.Name, &p.PanelistCode, &p.NodeID, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get panelist: %w", err)
	}
	return &p, nil
}

func scanPanelists(rows pgx.Rows) ([]*entity.Panelist, error) {
	panelists := make([]*entity.Panelist, 0)
	for rows.Next() {
		var p entity.Panelist
		if err := rows.Scan(&p.ID, &p.AccountID, &p.Name, &p.PanelistCode, &p.NodeID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan panelist: %w", err)
		}
		panelists = append(panelists, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate panelists: %w", err)
	}
	return panelists, nil
}

package repository

import (
	"context"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// NodeRepository define el puerto de lectura de nodos de la topología.
type NodeRepository interface {
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Node, error)
}

// PanelistRepository define el puerto de lectura de panelistas y de su
// asignación nodo→panelista.
type PanelistRepository interface {
	// ListByNodes devuelve los panelistas asignados a un conjunto de nodos.
	ListByNodes(ctx context.Context, accountID string, nodeIDs []string) ([]*entity.Panelist, error)
	// ListByIDs devuelve panelistas por id (para el panelista explícito de
	// una línea).
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Panelist, error)
	// GetByID devuelve un panelista o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Panelist, error)
}

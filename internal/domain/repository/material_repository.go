package repository

import (
	"context"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// MaterialRepository define el puerto de lectura del catálogo de materiales.
type MaterialRepository interface {
	// ListActiveByIDs devuelve las entradas activas del catálogo para un
	// conjunto de ids. Las inactivas se omiten.
	ListActiveByIDs(ctx context.Context, ids []string) ([]*entity.Material, error)
	// ListByAccount lista el catálogo de una cuenta; status vacío = todos.
	ListByAccount(ctx context.Context, accountID, status string) ([]*entity.Material, error)
}

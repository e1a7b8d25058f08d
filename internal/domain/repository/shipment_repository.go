package repository

import (
	"context"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// ShipmentRepository define el puerto sobre envíos a panelistas
// (material_shipments y material_shipment_items). El escritor de
// consolidación usa las variantes ForUpdate para serializar commits
// concurrentes sobre el mismo panelista.
type ShipmentRepository interface {
	// ListPendingByPanelistForUpdate devuelve TODOS los envíos pending de un
	// panelista con sus ítems, bloqueando las filas de envío.
	ListPendingByPanelistForUpdate(ctx context.Context, accountID, panelistID string) ([]*entity.Shipment, error)
	// Insert persiste un envío con sus ítems; genera ids vacíos.
	Insert(ctx context.Context, shipment *entity.Shipment) error
	// DeleteWithItems elimina envíos y sus ítems.
	DeleteWithItems(ctx context.Context, accountID string, ids []string) error
	// GetByID devuelve un envío con ítems, o nil si no existe.
	GetByID(ctx context.Context, accountID, id string) (*entity.Shipment, error)
	// GetByIDForUpdate devuelve el envío con ítems bloqueando la fila.
	GetByIDForUpdate(ctx context.Context, accountID, id string) (*entity.Shipment, error)
	// ListByAccount lista envíos de la cuenta con sus ítems, más recientes
	// primero.
	ListByAccount(ctx context.Context, accountID string) ([]*entity.Shipment, error)
}

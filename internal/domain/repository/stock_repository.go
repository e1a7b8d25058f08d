package repository

import (
	"context"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// StockRepository define el puerto sobre el stock del regulador
// (material_stocks). Usado dentro de transacciones para garantizar
// consistencia en decrementos e incrementos.
type StockRepository interface {
	ListByAccount(ctx context.Context, accountID string) ([]*entity.MaterialStock, error)
	// ListByMaterials devuelve los stocks del regulador para un conjunto de
	// materiales. Materiales sin fila no aparecen en el resultado.
	ListByMaterials(ctx context.Context, accountID string, materialIDs []string) ([]*entity.MaterialStock, error)
	// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE).
	// Si no hay fila devuelve un stock en cero sin bloquear.
	GetForUpdate(ctx context.Context, accountID, materialID string) (*entity.MaterialStock, error)
	// Upsert inserta o actualiza la cantidad y niveles por (cuenta, material).
	Upsert(ctx context.Context, stock *entity.MaterialStock) error
}

// PanelistStockRepository define el puerto sobre el stock en poder de los
// panelistas (panelist_material_stocks).
type PanelistStockRepository interface {
	ListByAccount(ctx context.Context, accountID string) ([]*entity.PanelistStock, error)
	// ListByPanelists devuelve los stocks de un conjunto de panelistas.
	ListByPanelists(ctx context.Context, accountID string, panelistIDs []string) ([]*entity.PanelistStock, error)
	// GetForUpdate obtiene el stock de (panelista, material) con bloqueo de
	// fila; stock en cero si no hay fila.
	GetForUpdate(ctx context.Context, accountID, panelistID, materialID string) (*entity.PanelistStock, error)
	// Upsert inserta o actualiza por (cuenta, panelista, material).
	Upsert(ctx context.Context, stock *entity.PanelistStock) error
}

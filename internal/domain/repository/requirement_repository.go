package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// RequirementRepository define el puerto sobre los períodos de necesidades
// (material_requirements_periods). Las operaciones ForUpdate se usan dentro
// del motor de unificación para serializar corridas concurrentes sobre el
// mismo material.
type RequirementRepository interface {
	// ListPendingForUpdate devuelve TODOS los registros pending de un
	// material, bloqueando las filas (SELECT FOR UPDATE).
	ListPendingForUpdate(ctx context.Context, accountID, materialID string) ([]*entity.RequirementPeriod, error)
	// Insert persiste un registro nuevo; genera el id si viene vacío.
	Insert(ctx context.Context, req *entity.RequirementPeriod) error
	// DeleteByIDs elimina un conjunto de registros.
	DeleteByIDs(ctx context.Context, accountID string, ids []string) error
	// GetByID devuelve un registro o nil si no existe.
	GetByID(ctx context.Context, accountID, id string) (*entity.RequirementPeriod, error)
	// GetByIDForUpdate devuelve el registro bloqueando la fila.
	GetByIDForUpdate(ctx context.Context, accountID, id string) (*entity.RequirementPeriod, error)
	// Update persiste estado y cantidades de un registro existente.
	Update(ctx context.Context, req *entity.RequirementPeriod) error
	// Delete elimina un registro desde cualquier estado (sin tombstone).
	Delete(ctx context.Context, accountID, id string) error
	// ListOpenByPeriod lista registros no recibidos que tocan la ventana
	// [start, end], más recientes primero.
	ListOpenByPeriod(ctx context.Context, accountID string, start, end time.Time) ([]*entity.RequirementPeriod, error)
	// InTransitByMaterial devuelve, por material, la cantidad pedida y aún no
	// recibida (Σ quantity_ordered − quantity_received sobre estado ordered).
	InTransitByMaterial(ctx context.Context, accountID string, materialIDs []string) (map[string]decimal.Decimal, error)
}

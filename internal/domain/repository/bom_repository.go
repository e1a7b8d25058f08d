package repository

import (
	"context"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// BomRepository define el puerto de lectura de listas de materiales
// (product_materials). Dato de referencia, solo lectura para el motor.
type BomRepository interface {
	// ListByProducts devuelve las líneas BOM de un conjunto de productos.
	ListByProducts(ctx context.Context, accountID string, productIDs []string) ([]entity.BomLine, error)
}

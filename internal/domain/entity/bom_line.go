package entity

import "github.com/shopspring/decimal"

// BomLine es una línea de la lista de materiales de un producto
// (product_materials): cuántas unidades de un material consume una
// unidad de plan del producto.
type BomLine struct {
	AccountID  string
	ProductID  string
	MaterialID string
	Quantity   decimal.Decimal // cantidad por unidad de plan
}

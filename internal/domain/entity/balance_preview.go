package entity

import "encoding/json"

// BalancePreview es el resultado pre-computado del procedimiento externo de
// balanceo de carga entre nodos. Las matrices son opacas para este servicio:
// se devuelven tal cual al consumidor.
type BalancePreview struct {
	MovementsCount int             `json:"movements_count"`
	StddevBefore   float64         `json:"stddev_before"`
	StddevAfter    float64         `json:"stddev_after"`
	MatrixBefore   json.RawMessage `json:"matrix_before"`
	MatrixAfter    json.RawMessage `json:"matrix_after"`
}

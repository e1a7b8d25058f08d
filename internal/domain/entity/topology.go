package entity

import "time"

// Node es un nodo de entrega de la topología (nodes). El autoID es la
// etiqueta legible que muestra la consola.
type Node struct {
	ID        string
	AccountID string
	AutoID    string
	CreatedAt time.Time
}

// Panelist es un panelista de la cuenta (panelists), opcionalmente asignado
// a un nodo. A lo sumo un panelista asignado por nodo.
type Panelist struct {
	ID           string
	AccountID    string
	Name         string
	PanelistCode string
	NodeID       string // vacío si no está asignado a ningún nodo
	CreatedAt    time.Time
}

package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleRegulador = "regulador"
	RoleAnalista  = "analista"
)

// User representa un usuario del sistema (pertenece a una cuenta).
type User struct {
	ID           string
	AccountID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, regulador, analista
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

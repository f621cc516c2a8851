package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Admin accounts can additionally create staff accounts.
const (
	RoleAdmin = "admin"
	RoleVet   = "vet"
)

type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Username     string     `json:"usuario" db:"usuario"`
	DisplayName  string     `json:"nombre" db:"nombre"`
	PasswordHash string     `json:"-" db:"clave_hash"` // Don't include in JSON
	Role         string     `json:"rol" db:"rol"`
	CreatedAt    time.Time  `json:"creado" db:"creado"`
	LastLogin    *time.Time `json:"ultimo_acceso" db:"ultimo_acceso"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

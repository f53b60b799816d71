package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleContador = "contador"
)

// User usuario de la aplicación. No está atado a una empresa: el mismo usuario
// administra todas las empresas registradas y elige la activa por request.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // ver constantes Role*
	Status       string // active, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

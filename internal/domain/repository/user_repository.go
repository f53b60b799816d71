package repository

import "github.com/jhoicas/Contabilidad-api/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	// FindByEmail devuelve nil, nil si no existe.
	FindByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
}

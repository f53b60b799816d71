package repository

import "github.com/jhoicas/Contabilidad-api/internal/domain/entity"

// CompanyRepository puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	// Create persiste la empresa. Devuelve domain.ErrDuplicate si el nombre
	// normalizado ya existe.
	Create(company *entity.Company) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(id int64) (*entity.Company, error)
	// List devuelve todas las empresas ordenadas por fecha de creación.
	List() ([]*entity.Company, error)
	Delete(id int64) error
}

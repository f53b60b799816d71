package entity

import (
	"strings"
	"time"
)

// MaxCompanyNameLength longitud máxima del nombre de empresa.
const MaxCompanyNameLength = 100

// Company empresa sobre la que se lleva la contabilidad. Toda la información
// contable (uploads, borradores, asientos) está particionada por empresa.
type Company struct {
	ID             int64
	Name           string
	NormalizedName string // trim + minúsculas; único
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NormalizeCompanyName normaliza el nombre para la comparación de unicidad
// (insensible a mayúsculas y espacios en los extremos).
func NormalizeCompanyName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

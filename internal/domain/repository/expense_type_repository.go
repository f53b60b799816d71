package repository

import "github.com/jhoicas/Contabilidad-api/internal/domain/entity"

// ExpenseTypeRepository puerto de persistencia para el catálogo de tipos de gasto.
type ExpenseTypeRepository interface {
	// Create persiste el tipo con el siguiente sort_order al final del catálogo.
	// Devuelve domain.ErrDuplicate si el texto normalizado ya existe.
	Create(expenseType *entity.ExpenseType) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(id int64) (*entity.ExpenseType, error)
	// List devuelve el catálogo ordenado por sort_order ascendente.
	List() ([]*entity.ExpenseType, error)
	// Delete borra el tipo y resecuencia los restantes a 1..N densos,
	// en una sola transacción.
	Delete(id int64) error
	// Resequence asigna sort_order 1..N siguiendo el orden de orderedIDs.
	Resequence(orderedIDs []int64) error
}

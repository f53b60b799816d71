package dto

import "time"

// CreateExpenseTypeRequest alta de tipo de gasto.
type CreateExpenseTypeRequest struct {
	Text       string `json:"text"`
	PLCategory string `json:"plCategory"` // direct_cost | operating_expense | financial_other | tax
}

// ExpenseTypeResponse representación pública de un tipo de gasto.
type ExpenseTypeResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	PLCategory string    `json:"plCategory"`
	SortOrder  int       `json:"sortOrder"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ExpenseTypeListResponse catálogo ordenado por sortOrder.
type ExpenseTypeListResponse struct {
	Items []ExpenseTypeResponse `json:"items"`
}

// ReorderExpenseTypesRequest nuevo orden del catálogo: debe ser una permutación
// exacta de todos los ids actuales.
type ReorderExpenseTypesRequest struct {
	OrderedExpenseTypeIDs []int64 `json:"orderedExpenseTypeIds"`
}

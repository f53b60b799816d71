package entity

import (
	"strings"
	"time"
)

// MaxExpenseTypeTextLength longitud máxima del texto del tipo de gasto.
const MaxExpenseTypeTextLength = 100

// PLCategory categoría del estado de resultados a la que aporta un tipo de gasto.
type PLCategory string

const (
	PLCategoryDirectCost       PLCategory = "direct_cost"
	PLCategoryOperatingExpense PLCategory = "operating_expense"
	PLCategoryFinancialOther   PLCategory = "financial_other"
	PLCategoryTax              PLCategory = "tax"
)

// IsValidPLCategory valida el enum de categoría P&L.
func IsValidPLCategory(value string) bool {
	switch PLCategory(value) {
	case PLCategoryDirectCost, PLCategoryOperatingExpense, PLCategoryFinancialOther, PLCategoryTax:
		return true
	}
	return false
}

// ExpenseType catálogo de tipos de gasto. SortOrder es denso 1..N y se
// resecuencia al borrar; el borrado se bloquea mientras existan referencias.
type ExpenseType struct {
	ID             int64
	Text           string
	NormalizedText string // trim + minúsculas; único
	PLCategory     PLCategory
	SortOrder      int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NormalizeExpenseTypeText normaliza el texto para la comparación de unicidad.
func NormalizeExpenseTypeText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

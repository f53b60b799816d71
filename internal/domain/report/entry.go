// Package report implementa los agregadores de reportes: reducciones puras y
// sin estado sobre los asientos del libro mayor de una empresa. Ninguna función
// de este paquete toca la base de datos.
package report

import "github.com/jhoicas/Contabilidad-api/internal/domain/entity"

// Entry fila mínima del libro mayor que consumen los agregadores.
type Entry struct {
	EntryType         entity.EntryType
	DocumentYear      int
	AmountGross       int64 // centavos
	ExpensePLCategory *entity.PLCategory
	TypeOfExpenseID   *int64
	ExpenseTypeText   *string
	CounterpartyName  string
}

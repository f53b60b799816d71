package repository

import (
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/report"
)

// AccountingEntryRepository puerto de persistencia del libro mayor (append-only).
// No expone actualización ni borrado de asientos.
type AccountingEntryRepository interface {
	// NextDocumentNumber calcula 1 + MAX(document_number) del bucket
	// (empresa, año, tipo), 1 si el bucket está vacío. Debe ejecutarse dentro
	// de la misma transacción que Create; la restricción única del bucket es
	// el respaldo duro si el aislamiento falla.
	NextDocumentNumber(companyID int64, documentYear int, entryType entity.EntryType) (int64, error)
	// Create inserta el asiento. Devuelve domain.ErrAlreadySaved si el upload
	// ya tiene asiento, y domain.ErrSequenceConflict si otro commit concurrente
	// tomó el mismo número de documento.
	Create(entry *entity.AccountingEntry) error
	ExistsByUploadID(uploadID string) (bool, error)
	// ListSummariesByCompany lista los asientos con el nombre original del PDF
	// fuente, más reciente primero.
	ListSummariesByCompany(companyID int64) ([]*entity.EntrySummary, error)
	// ListForReports devuelve las filas mínimas que consumen los agregadores
	// (año, tipo, monto, categoría P&L, tipo de gasto, contraparte).
	ListForReports(companyID int64) ([]*report.Entry, error)
	CountByCompany(companyID int64) (int64, error)
	CountByExpenseType(expenseTypeID int64) (int64, error)
}

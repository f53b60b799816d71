package repository

import "github.com/jhoicas/Contabilidad-api/internal/domain/entity"

// ReviewDraftRepository puerto de persistencia para los borradores de revisión.
type ReviewDraftRepository interface {
	// Get devuelve nil, nil si no hay fila para el upload.
	Get(uploadID string) (*entity.ReviewDraft, error)
	// Upsert inserta o sobreescribe la fila completa del borrador.
	Upsert(draft *entity.ReviewDraft) error
	// InsertIfAbsent siembra el borrador solo si no existe fila
	// (first-write-wins: la extracción nunca pisa datos del usuario).
	// Devuelve false si ya existía.
	InsertIfAbsent(draft *entity.ReviewDraft) (bool, error)
	// CountByExpenseType cuenta borradores que referencian un tipo de gasto.
	CountByExpenseType(expenseTypeID int64) (int64, error)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

// Asegura que ReviewDraftRepo implementa repository.ReviewDraftRepository.
var _ repository.ReviewDraftRepository = (*ReviewDraftRepo)(nil)

// ReviewDraftRepo implementación del puerto ReviewDraftRepository sobre PostgreSQL.
type ReviewDraftRepo struct {
	pool *pgxpool.Pool
}

// NewReviewDraftRepository construye el adaptador de persistencia para borradores.
func NewReviewDraftRepository(pool *pgxpool.Pool) *ReviewDraftRepo {
	return &ReviewDraftRepo{pool: pool}
}

const draftColumns = `
	upload_id, document_date, counterparty_name, booking_text, amount_gross,
	amount_net, amount_tax, payment_received_date, type_of_expense_id, created_at, updated_at`

// Get devuelve nil, nil si no hay fila para el upload.
func (r *ReviewDraftRepo) Get(uploadID string) (*entity.ReviewDraft, error) {
	query := `SELECT ` + draftColumns + ` FROM review_drafts WHERE upload_id = $1`
	var d entity.ReviewDraft
	err := r.pool.QueryRow(context.Background(), query, uploadID).Scan(
		&d.UploadID, &d.DocumentDate, &d.CounterpartyName, &d.BookingText, &d.AmountGross,
		&d.AmountNet, &d.AmountTax, &d.PaymentReceivedDate, &d.TypeOfExpenseID,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}
	return &d, nil
}

// Upsert inserta o sobreescribe la fila completa del borrador.
func (r *ReviewDraftRepo) Upsert(draft *entity.ReviewDraft) error {
	query := `
		INSERT INTO review_drafts (` + draftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (upload_id) DO UPDATE SET
			document_date = EXCLUDED.document_date,
			counterparty_name = EXCLUDED.counterparty_name,
			booking_text = EXCLUDED.booking_text,
			amount_gross = EXCLUDED.amount_gross,
			amount_net = EXCLUDED.amount_net,
			amount_tax = EXCLUDED.amount_tax,
			payment_received_date = EXCLUDED.payment_received_date,
			type_of_expense_id = EXCLUDED.type_of_expense_id,
			updated_at = EXCLUDED.updated_at`
	_, err := r.pool.Exec(context.Background(), query,
		draft.UploadID, draft.DocumentDate, draft.CounterpartyName, draft.BookingText, draft.AmountGross,
		draft.AmountNet, draft.AmountTax, draft.PaymentReceivedDate, draft.TypeOfExpenseID,
		draft.CreatedAt, draft.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert draft: %w", err)
	}
	return nil
}

// InsertIfAbsent siembra el borrador solo si no existe fila (first-write-wins:
// la extracción nunca pisa datos del usuario). Devuelve false si ya existía.
func (r *ReviewDraftRepo) InsertIfAbsent(draft *entity.ReviewDraft) (bool, error) {
	query := `
		INSERT INTO review_drafts (` + draftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (upload_id) DO NOTHING`
	cmd, err := r.pool.Exec(context.Background(), query,
		draft.UploadID, draft.DocumentDate, draft.CounterpartyName, draft.BookingText, draft.AmountGross,
		draft.AmountNet, draft.AmountTax, draft.PaymentReceivedDate, draft.TypeOfExpenseID,
		draft.CreatedAt, draft.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("seed draft: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// CountByExpenseType cuenta borradores que referencian un tipo de gasto.
func (r *ReviewDraftRepo) CountByExpenseType(expenseTypeID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM review_drafts WHERE type_of_expense_id = $1`, expenseTypeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count drafts by expense type: %w", err)
	}
	return count, nil
}

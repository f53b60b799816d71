package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/report"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

// Asegura que AccountingEntryRepo implementa repository.AccountingEntryRepository.
var _ repository.AccountingEntryRepository = (*AccountingEntryRepo)(nil)

// AccountingEntryRepo implementación del puerto AccountingEntryRepository sobre
// PostgreSQL. Acepta pool o tx (Querier): el caso de uso de commit lo usa atado
// a una transacción para que MAX+1 y el INSERT vean el mismo snapshot.
type AccountingEntryRepo struct {
	q Querier
}

// NewAccountingEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountingEntryRepository(q Querier) *AccountingEntryRepo {
	return &AccountingEntryRepo{q: q}
}

// NextDocumentNumber calcula 1 + MAX(document_number) del bucket
// (empresa, año, tipo), 1 si el bucket está vacío.
func (r *AccountingEntryRepo) NextDocumentNumber(companyID int64, documentYear int, entryType entity.EntryType) (int64, error) {
	query := `
		SELECT COALESCE(MAX(document_number), 0) + 1
		FROM accounting_entries
		WHERE company_id = $1 AND document_year = $2 AND entry_type = $3`
	var next int64
	err := r.q.QueryRow(context.Background(), query, companyID, documentYear, string(entryType)).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next document number: %w", err)
	}
	return next, nil
}

// Create inserta el asiento. El despacho de la violación única distingue la
// carrera de numeración (reintentable) del upload ya confirmado (terminal).
func (r *AccountingEntryRepo) Create(entry *entity.AccountingEntry) error {
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	var plCategory *string
	if entry.ExpensePLCategory != nil {
		s := string(*entry.ExpensePLCategory)
		plCategory = &s
	}

	query := `
		INSERT INTO accounting_entries (
			company_id, document_number, entry_type, expense_pl_category,
			document_date, document_year, payment_received_date, type_of_expense_id,
			counterparty_name, booking_text, amount_gross, amount_net, amount_tax,
			upload_id, extraction_status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		entry.CompanyID, entry.DocumentNumber, string(entry.EntryType), plCategory,
		entry.DocumentDate, entry.DocumentYear, entry.PaymentReceivedDate, entry.TypeOfExpenseID,
		entry.CounterpartyName, entry.BookingText, entry.AmountGross, entry.AmountNet, entry.AmountTax,
		entry.UploadID, string(entry.ExtractionStatus), entry.CreatedAt, entry.UpdatedAt,
	).Scan(&entry.ID)
	if err != nil {
		switch uniqueViolationConstraint(err) {
		case entryUploadConstraint:
			return domain.ErrAlreadySaved
		case entryBucketNumberConstraint:
			return domain.ErrSequenceConflict
		}
		return fmt.Errorf("insert accounting entry: %w", err)
	}
	return nil
}

// ExistsByUploadID verifica si el upload ya tiene asiento confirmado.
func (r *AccountingEntryRepo) ExistsByUploadID(uploadID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM accounting_entries WHERE upload_id = $1)`, uploadID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists by upload: %w", err)
	}
	return exists, nil
}

// ListSummariesByCompany lista los asientos con el texto del tipo de gasto y el
// nombre original del PDF fuente, más reciente primero.
func (r *AccountingEntryRepo) ListSummariesByCompany(companyID int64) ([]*entity.EntrySummary, error) {
	query := `
		SELECT e.id, e.company_id, e.document_number, e.entry_type, e.document_year, e.document_date,
			e.payment_received_date, e.type_of_expense_id, et.text,
			e.counterparty_name, e.booking_text, e.amount_gross, e.amount_net, e.amount_tax,
			e.upload_id, u.original_filename, e.extraction_status, e.created_at
		FROM accounting_entries e
		JOIN invoice_uploads u ON u.id = e.upload_id
		LEFT JOIN expense_types et ON et.id = e.type_of_expense_id
		WHERE e.company_id = $1
		ORDER BY e.created_at DESC, e.id DESC`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.EntrySummary
	for rows.Next() {
		var s entity.EntrySummary
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.DocumentNumber, &s.EntryType, &s.DocumentYear, &s.DocumentDate,
			&s.PaymentReceivedDate, &s.TypeOfExpenseID, &s.ExpenseTypeText,
			&s.CounterpartyName, &s.BookingText, &s.AmountGross, &s.AmountNet, &s.AmountTax,
			&s.UploadID, &s.SourceOriginalFilename, &s.ExtractionStatus, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan entry summary: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListForReports devuelve las filas mínimas que consumen los agregadores de reportes.
func (r *AccountingEntryRepo) ListForReports(companyID int64) ([]*report.Entry, error) {
	query := `
		SELECT e.entry_type, e.document_year, e.amount_gross, e.expense_pl_category,
			e.type_of_expense_id, et.text, e.counterparty_name
		FROM accounting_entries e
		LEFT JOIN expense_types et ON et.id = e.type_of_expense_id
		WHERE e.company_id = $1`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list entries for reports: %w", err)
	}
	defer rows.Close()

	var list []*report.Entry
	for rows.Next() {
		var e report.Entry
		if err := rows.Scan(
			&e.EntryType, &e.DocumentYear, &e.AmountGross, &e.ExpensePLCategory,
			&e.TypeOfExpenseID, &e.ExpenseTypeText, &e.CounterpartyName,
		); err != nil {
			return nil, fmt.Errorf("scan report entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// CountByCompany cuenta los asientos de una empresa.
func (r *AccountingEntryRepo) CountByCompany(companyID int64) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM accounting_entries WHERE company_id = $1`, companyID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}

// CountByExpenseType cuenta asientos que referencian un tipo de gasto.
func (r *AccountingEntryRepo) CountByExpenseType(expenseTypeID int64) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM accounting_entries WHERE type_of_expense_id = $1`, expenseTypeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count entries by expense type: %w", err)
	}
	return count, nil
}

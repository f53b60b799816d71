package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

// Asegura que InvoiceUploadRepo implementa repository.InvoiceUploadRepository.
var _ repository.InvoiceUploadRepository = (*InvoiceUploadRepo)(nil)

// InvoiceUploadRepo implementación del puerto InvoiceUploadRepository sobre PostgreSQL.
type InvoiceUploadRepo struct {
	pool *pgxpool.Pool
}

// NewInvoiceUploadRepository construye el adaptador de persistencia para uploads.
func NewInvoiceUploadRepository(pool *pgxpool.Pool) *InvoiceUploadRepo {
	return &InvoiceUploadRepo{pool: pool}
}

const uploadColumns = `
	id, company_id, entry_type, original_filename, stored_filename, stored_path,
	uploaded_at, extraction_status, extraction_error_code, extraction_error_message, extracted_at`

// Create persiste un nuevo upload.
func (r *InvoiceUploadRepo) Create(upload *entity.InvoiceUpload) error {
	query := `
		INSERT INTO invoice_uploads (` + uploadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(context.Background(), query,
		upload.ID, upload.CompanyID, string(upload.EntryType),
		upload.OriginalFilename, upload.StoredFilename, upload.StoredPath,
		upload.UploadedAt, string(upload.ExtractionStatus),
		upload.ExtractionErrorCode, upload.ExtractionErrorMessage, upload.ExtractedAt,
	)
	if err != nil {
		return fmt.Errorf("insert upload: %w", err)
	}
	return nil
}

// GetByIDAndCompany devuelve nil, nil si no existe o pertenece a otra empresa.
func (r *InvoiceUploadRepo) GetByIDAndCompany(id string, companyID int64) (*entity.InvoiceUpload, error) {
	query := `SELECT ` + uploadColumns + ` FROM invoice_uploads WHERE id = $1 AND company_id = $2`
	return r.getOne(query, id, companyID)
}

// GetByID obtiene un upload por ID sin filtro de empresa (tubería de extracción).
func (r *InvoiceUploadRepo) GetByID(id string) (*entity.InvoiceUpload, error) {
	query := `SELECT ` + uploadColumns + ` FROM invoice_uploads WHERE id = $1`
	return r.getOne(query, id)
}

func (r *InvoiceUploadRepo) getOne(query string, args ...any) (*entity.InvoiceUpload, error) {
	var u entity.InvoiceUpload
	err := r.pool.QueryRow(context.Background(), query, args...).Scan(
		&u.ID, &u.CompanyID, &u.EntryType, &u.OriginalFilename, &u.StoredFilename, &u.StoredPath,
		&u.UploadedAt, &u.ExtractionStatus, &u.ExtractionErrorCode, &u.ExtractionErrorMessage, &u.ExtractedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get upload: %w", err)
	}
	return &u, nil
}

// ListQueueByCompany lista la cola de revisión con el estado derivado
// (saved si existe asiento para el upload), más reciente primero.
func (r *InvoiceUploadRepo) ListQueueByCompany(companyID int64, statusFilter string) ([]*repository.UploadQueueItem, error) {
	query := `
		SELECT u.id, u.company_id, u.entry_type, u.original_filename, u.stored_filename, u.stored_path,
			u.uploaded_at, u.extraction_status, u.extraction_error_code, u.extraction_error_message, u.extracted_at,
			(e.id IS NOT NULL) AS saved
		FROM invoice_uploads u
		LEFT JOIN accounting_entries e ON e.upload_id = u.id
		WHERE u.company_id = $1`
	switch statusFilter {
	case repository.ReviewStatusPending:
		query += ` AND e.id IS NULL`
	case repository.ReviewStatusSaved:
		query += ` AND e.id IS NOT NULL`
	}
	query += ` ORDER BY u.uploaded_at DESC, u.id DESC`

	rows, err := r.pool.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list upload queue: %w", err)
	}
	defer rows.Close()

	var list []*repository.UploadQueueItem
	for rows.Next() {
		var item repository.UploadQueueItem
		var saved bool
		u := &item.Upload
		if err := rows.Scan(
			&u.ID, &u.CompanyID, &u.EntryType, &u.OriginalFilename, &u.StoredFilename, &u.StoredPath,
			&u.UploadedAt, &u.ExtractionStatus, &u.ExtractionErrorCode, &u.ExtractionErrorMessage, &u.ExtractedAt,
			&saved,
		); err != nil {
			return nil, fmt.Errorf("scan upload queue item: %w", err)
		}
		item.ReviewStatus = repository.ReviewStatusPending
		if saved {
			item.ReviewStatus = repository.ReviewStatusSaved
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// CountByCompany cuenta los uploads de una empresa.
func (r *InvoiceUploadRepo) CountByCompany(companyID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM invoice_uploads WHERE company_id = $1`, companyID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count uploads: %w", err)
	}
	return count, nil
}

// MarkExtractionSucceeded registra el éxito de la extracción y limpia cualquier error previo.
func (r *InvoiceUploadRepo) MarkExtractionSucceeded(id string, extractedAt time.Time) error {
	query := `
		UPDATE invoice_uploads
		SET extraction_status = $2, extraction_error_code = NULL, extraction_error_message = NULL, extracted_at = $3
		WHERE id = $1`
	cmd, err := r.pool.Exec(context.Background(), query, id, string(entity.ExtractionStatusSucceeded), extractedAt)
	if err != nil {
		return fmt.Errorf("mark extraction succeeded: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkExtractionFailed registra el fallo terminal de la extracción.
func (r *InvoiceUploadRepo) MarkExtractionFailed(id string, code, message string) error {
	query := `
		UPDATE invoice_uploads
		SET extraction_status = $2, extraction_error_code = $3, extraction_error_message = $4
		WHERE id = $1`
	cmd, err := r.pool.Exec(context.Background(), query, id, string(entity.ExtractionStatusFailed), code, message)
	if err != nil {
		return fmt.Errorf("mark extraction failed: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

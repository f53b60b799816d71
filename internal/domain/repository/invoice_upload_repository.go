package repository

import (
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
)

// Filtros de estado de revisión para el listado de la cola de uploads.
const (
	ReviewStatusPending = "pending_review"
	ReviewStatusSaved   = "saved"
	ReviewStatusAll     = "all"
)

// UploadQueueItem elemento de la cola de revisión: el upload más su estado de
// revisión derivado (saved si ya existe un asiento para el upload).
type UploadQueueItem struct {
	Upload       entity.InvoiceUpload
	ReviewStatus string // pending_review | saved
}

// InvoiceUploadRepository puerto de persistencia para los PDF subidos.
type InvoiceUploadRepository interface {
	Create(upload *entity.InvoiceUpload) error
	// GetByIDAndCompany devuelve nil, nil si no existe o pertenece a otra empresa.
	GetByIDAndCompany(id string, companyID int64) (*entity.InvoiceUpload, error)
	GetByID(id string) (*entity.InvoiceUpload, error)
	// ListQueueByCompany lista la cola de revisión filtrada por estado
	// (pending_review, saved o all), más reciente primero.
	ListQueueByCompany(companyID int64, statusFilter string) ([]*UploadQueueItem, error)
	CountByCompany(companyID int64) (int64, error)
	// MarkExtractionSucceeded y MarkExtractionFailed registran el resultado
	// terminal de la extracción; no hay reintento automático.
	MarkExtractionSucceeded(id string, extractedAt time.Time) error
	MarkExtractionFailed(id string, code, message string) error
}

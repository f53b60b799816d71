package usecase

import (
	"bytes"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Contabilidad-api/internal/application/dto"
	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
	"github.com/jhoicas/Contabilidad-api/pkg/logger"
)

// pdfMagic primeros bytes de todo PDF válido.
var pdfMagic = []byte("%PDF-")

// UploadUseCase gestiona la subida de PDF de facturas y la cola de revisión.
type UploadUseCase struct {
	repo           repository.InvoiceUploadRepository
	companyRepo    repository.CompanyRepository
	store          FileStore
	queue          ExtractionQueue
	maxUploadBytes int64
	log            *logger.Logger
}

// NewUploadUseCase construye el caso de uso.
func NewUploadUseCase(repo repository.InvoiceUploadRepository, companyRepo repository.CompanyRepository, store FileStore, queue ExtractionQueue, maxUploadBytes int64, log *logger.Logger) *UploadUseCase {
	return &UploadUseCase{
		repo:           repo,
		companyRepo:    companyRepo,
		store:          store,
		queue:          queue,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

// Create valida y persiste un PDF subido, y encola su extracción. El tipo de
// asiento (income/expense) se fija al subir y no cambia después. Si la cola
// está llena la extracción se marca fallida de inmediato; el upload queda
// igualmente en la cola de revisión para captura manual.
func (uc *UploadUseCase) Create(companyID int64, entryType, originalFilename string, content []byte) (*dto.UploadResponse, error) {
	if !entity.IsValidEntryType(entryType) {
		return nil, domain.NewValidationError("entryType", "debe ser income o expense")
	}
	filename := strings.TrimSpace(originalFilename)
	if filename == "" {
		return nil, domain.NewValidationError("file", "el archivo debe tener nombre")
	}
	if len(content) == 0 {
		return nil, domain.NewValidationError("file", "el archivo está vacío")
	}
	if int64(len(content)) > uc.maxUploadBytes {
		return nil, domain.NewValidationError("file", "el archivo supera el tamaño máximo permitido")
	}
	if !bytes.HasPrefix(content, pdfMagic) {
		return nil, domain.NewValidationError("file", "el archivo debe ser un PDF")
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	id := uuid.New().String()
	storedFilename, storedPath, err := uc.store.Save(id, filename, content)
	if err != nil {
		return nil, err
	}

	upload := &entity.InvoiceUpload{
		ID:               id,
		CompanyID:        companyID,
		EntryType:        entity.EntryType(entryType),
		OriginalFilename: filename,
		StoredFilename:   storedFilename,
		StoredPath:       storedPath,
		UploadedAt:       time.Now(),
		ExtractionStatus: entity.ExtractionStatusPending,
	}
	if err := uc.repo.Create(upload); err != nil {
		// El archivo huérfano se limpia; el upload no quedó registrado.
		if rmErr := uc.store.Remove(storedPath); rmErr != nil {
			uc.log.Warn().Err(rmErr).Str("path", storedPath).Msg("no se pudo limpiar el archivo huérfano")
		}
		return nil, err
	}

	if err := uc.queue.Enqueue(id); err != nil {
		uc.log.Warn().Err(err).Str("upload_id", id).Msg("cola de extracción llena, el upload queda para captura manual")
		message := "no se pudo encolar la extracción: " + err.Error()
		if markErr := uc.repo.MarkExtractionFailed(id, entity.ExtractionErrProvider, message); markErr != nil {
			uc.log.Error().Err(markErr).Str("upload_id", id).Msg("no se pudo marcar la extracción como fallida")
		}
		code := entity.ExtractionErrProvider
		upload.ExtractionStatus = entity.ExtractionStatusFailed
		upload.ExtractionErrorCode = &code
		upload.ExtractionErrorMessage = &message
	}

	uc.log.Info().Str("upload_id", id).Int64("company_id", companyID).Str("entry_type", entryType).Msg("factura subida")
	resp := dto.NewUploadResponse(upload)
	return &resp, nil
}

// Get devuelve un upload de la empresa activa.
func (uc *UploadUseCase) Get(companyID int64, uploadID string) (*dto.UploadResponse, error) {
	upload, err := uc.repo.GetByIDAndCompany(uploadID, companyID)
	if err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.NewUploadResponse(upload)
	return &resp, nil
}

// GetFile devuelve el contenido del PDF almacenado y su nombre original.
func (uc *UploadUseCase) GetFile(companyID int64, uploadID string) ([]byte, string, error) {
	upload, err := uc.repo.GetByIDAndCompany(uploadID, companyID)
	if err != nil {
		return nil, "", err
	}
	if upload == nil {
		return nil, "", domain.ErrNotFound
	}
	content, err := uc.store.Open(upload.StoredPath)
	if err != nil {
		return nil, "", err
	}
	return content, upload.OriginalFilename, nil
}

// ListQueue lista la cola de revisión de la empresa, más reciente primero.
// statusFilter acepta pending_review, saved o all (vacío = all).
func (uc *UploadUseCase) ListQueue(companyID int64, statusFilter string) (*dto.UploadQueueResponse, error) {
	if statusFilter == "" {
		statusFilter = repository.ReviewStatusAll
	}
	switch statusFilter {
	case repository.ReviewStatusPending, repository.ReviewStatusSaved, repository.ReviewStatusAll:
	default:
		return nil, domain.NewValidationError("status", "debe ser pending_review, saved o all")
	}

	items, err := uc.repo.ListQueueByCompany(companyID, statusFilter)
	if err != nil {
		return nil, err
	}
	resp := &dto.UploadQueueResponse{Items: make([]dto.UploadQueueItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.UploadQueueItemResponse{
			UploadResponse: dto.NewUploadResponse(&item.Upload),
			ReviewStatus:   item.ReviewStatus,
		})
	}
	return resp, nil
}

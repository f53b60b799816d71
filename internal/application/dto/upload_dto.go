package dto

import (
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
)

// UploadResponse representación pública de un upload.
type UploadResponse struct {
	ID                     string     `json:"id"`
	CompanyID              int64      `json:"companyId"`
	EntryType              string     `json:"entryType"`
	OriginalFilename       string     `json:"originalFilename"`
	UploadedAt             time.Time  `json:"uploadedAt"`
	ExtractionStatus       string     `json:"extractionStatus"`
	ExtractionErrorCode    *string    `json:"extractionErrorCode,omitempty"`
	ExtractionErrorMessage *string    `json:"extractionErrorMessage,omitempty"`
	ExtractedAt            *time.Time `json:"extractedAt,omitempty"`
}

// NewUploadResponse mapea un upload de dominio al shape JSON.
func NewUploadResponse(u *entity.InvoiceUpload) UploadResponse {
	return UploadResponse{
		ID:                     u.ID,
		CompanyID:              u.CompanyID,
		EntryType:              string(u.EntryType),
		OriginalFilename:       u.OriginalFilename,
		UploadedAt:             u.UploadedAt,
		ExtractionStatus:       string(u.ExtractionStatus),
		ExtractionErrorCode:    u.ExtractionErrorCode,
		ExtractionErrorMessage: u.ExtractionErrorMessage,
		ExtractedAt:            u.ExtractedAt,
	}
}

// UploadQueueItemResponse elemento de la cola de revisión.
type UploadQueueItemResponse struct {
	UploadResponse
	ReviewStatus string `json:"reviewStatus"` // pending_review | saved
}

// UploadQueueResponse listado de la cola de revisión.
type UploadQueueResponse struct {
	Items []UploadQueueItemResponse `json:"items"`
}

package extraction

import (
	"context"

	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
)

// InvoiceExtractor extrae los campos contables de un PDF de factura.
// La implementación vive en infrastructure/ai.
type InvoiceExtractor interface {
	Extract(ctx context.Context, pdfPath string, entryType entity.EntryType, originalFilename string) (*entity.ExtractedDraft, error)
}

// Failure fallo terminal de extracción con código clasificado. El código se
// persiste en el upload; no hay reintento automático.
type Failure struct {
	Code    string // ver constantes entity.ExtractionErr*
	Message string
}

func (f *Failure) Error() string { return f.Code + ": " + f.Message }

// NewFailure construye un fallo clasificado.
func NewFailure(code, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

// Package extraction orquesta la extracción asíncrona de campos de los PDF
// subidos: llama al extractor, siembra el borrador y registra el resultado
// terminal en el upload.
package extraction

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/application/review"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
	"github.com/jhoicas/Contabilidad-api/pkg/logger"
)

// Service procesa un upload pendiente de principio a fin.
type Service struct {
	extractor  InvoiceExtractor
	uploadRepo repository.InvoiceUploadRepository
	reviewUC   *review.UseCase
	timeout    time.Duration
	log        *logger.Logger
}

// NewService construye el servicio de extracción.
func NewService(extractor InvoiceExtractor, uploadRepo repository.InvoiceUploadRepository, reviewUC *review.UseCase, timeout time.Duration, log *logger.Logger) *Service {
	return &Service{
		extractor:  extractor,
		uploadRepo: uploadRepo,
		reviewUC:   reviewUC,
		timeout:    timeout,
		log:        log,
	}
}

// Process ejecuta la extracción de un upload y persiste el desenlace.
// Nunca devuelve error hacia el worker: todo fallo se clasifica y queda
// registrado en el upload como estado terminal failed.
func (s *Service) Process(ctx context.Context, uploadID string) {
	upload, err := s.uploadRepo.GetByID(uploadID)
	if err != nil {
		s.log.Error().Err(err).Str("upload_id", uploadID).Msg("extracción: no se pudo cargar el upload")
		return
	}
	if upload == nil {
		s.log.Warn().Str("upload_id", uploadID).Msg("extracción: upload inexistente, se descarta el trabajo")
		return
	}
	if upload.ExtractionStatus != entity.ExtractionStatusPending {
		s.log.Debug().Str("upload_id", uploadID).Str("status", string(upload.ExtractionStatus)).Msg("extracción: upload ya procesado, se omite")
		return
	}

	extractCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	extracted, err := s.extractor.Extract(extractCtx, upload.StoredPath, upload.EntryType, upload.OriginalFilename)
	if err != nil {
		code, message := classify(err)
		s.markFailed(uploadID, code, message)
		return
	}

	if _, err := s.reviewUC.SeedFromExtraction(uploadID, *extracted); err != nil {
		s.markFailed(uploadID, entity.ExtractionErrPersistence, "no se pudo guardar el borrador extraído: "+err.Error())
		return
	}

	if err := s.uploadRepo.MarkExtractionSucceeded(uploadID, time.Now()); err != nil {
		s.log.Error().Err(err).Str("upload_id", uploadID).Msg("extracción: no se pudo marcar succeeded")
		return
	}
	s.log.Info().Str("upload_id", uploadID).Msg("extracción completada")
}

func (s *Service) markFailed(uploadID, code, message string) {
	s.log.Warn().Str("upload_id", uploadID).Str("code", code).Str("reason", message).Msg("extracción fallida")
	if err := s.uploadRepo.MarkExtractionFailed(uploadID, code, message); err != nil {
		s.log.Error().Err(err).Str("upload_id", uploadID).Msg("extracción: no se pudo marcar failed")
	}
}

// classify mapea el error del extractor a un código terminal persistible.
func classify(err error) (code, message string) {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Code, failure.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return entity.ExtractionErrTimeout, "la llamada al modelo superó el tiempo máximo"
	}
	return entity.ExtractionErrProvider, err.Error()
}

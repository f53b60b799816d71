// Package review gestiona el borrador editable de cada upload: lectura con
// defaults, parches parciales del usuario y siembra desde la extracción.
package review

import (
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/application/dto"
	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

// UseCase casos de uso del borrador de revisión.
type UseCase struct {
	uploadRepo      repository.InvoiceUploadRepository
	draftRepo       repository.ReviewDraftRepository
	entryRepo       repository.AccountingEntryRepository
	expenseTypeRepo repository.ExpenseTypeRepository
}

// NewUseCase construye el caso de uso con sus puertos de persistencia.
func NewUseCase(uploadRepo repository.InvoiceUploadRepository, draftRepo repository.ReviewDraftRepository, entryRepo repository.AccountingEntryRepository, expenseTypeRepo repository.ExpenseTypeRepository) *UseCase {
	return &UseCase{
		uploadRepo:      uploadRepo,
		draftRepo:       draftRepo,
		entryRepo:       entryRepo,
		expenseTypeRepo: expenseTypeRepo,
	}
}

// Get devuelve el upload con su borrador efectivo. Si aún no hay fila de
// borrador se devuelven los defaults (fecha de subida, placeholder de
// contraparte) sin persistirlos. Devuelve domain.ErrNotFound si el upload no
// existe o pertenece a otra empresa.
func (uc *UseCase) Get(companyID int64, uploadID string) (*dto.UploadReviewResponse, error) {
	upload, err := uc.uploadRepo.GetByIDAndCompany(uploadID, companyID)
	if err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, domain.ErrNotFound
	}

	draft, err := uc.effectiveDraft(upload)
	if err != nil {
		return nil, err
	}

	saved, err := uc.entryRepo.ExistsByUploadID(uploadID)
	if err != nil {
		return nil, err
	}

	return uc.toResponse(upload, draft, saved), nil
}

// Patch aplica un parche parcial al borrador: solo las claves presentes se
// sobreescriben, el resto se conserva. Un upload ya confirmado no se puede
// editar (domain.ErrAlreadySaved). Si el parche asigna un tipo de gasto, este
// debe existir.
func (uc *UseCase) Patch(companyID int64, uploadID string, patch entity.DraftPatch) (*dto.UploadReviewResponse, error) {
	upload, err := uc.uploadRepo.GetByIDAndCompany(uploadID, companyID)
	if err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, domain.ErrNotFound
	}

	saved, err := uc.entryRepo.ExistsByUploadID(uploadID)
	if err != nil {
		return nil, err
	}
	if saved {
		return nil, domain.ErrAlreadySaved
	}

	if patch.SetTypeOfExpenseID && patch.TypeOfExpenseID != nil {
		expenseType, err := uc.expenseTypeRepo.GetByID(*patch.TypeOfExpenseID)
		if err != nil {
			return nil, err
		}
		if expenseType == nil {
			return nil, domain.ErrExpenseTypeNotFound
		}
	}

	draft, err := uc.effectiveDraft(upload)
	if err != nil {
		return nil, err
	}

	next := draft.Apply(patch)
	next.UpdatedAt = time.Now()
	if next.CreatedAt.IsZero() {
		next.CreatedAt = next.UpdatedAt
	}
	if err := uc.draftRepo.Upsert(&next); err != nil {
		return nil, err
	}

	return uc.toResponse(upload, &next, false), nil
}

// SeedFromExtraction siembra el borrador con los campos propuestos por la
// extracción, partiendo de los defaults para lo no encontrado. First-write-wins:
// si el usuario ya guardó un borrador la siembra no pisa nada. Devuelve si la
// fila fue escrita.
func (uc *UseCase) SeedFromExtraction(uploadID string, extracted entity.ExtractedDraft) (bool, error) {
	upload, err := uc.uploadRepo.GetByID(uploadID)
	if err != nil {
		return false, err
	}
	if upload == nil {
		return false, domain.ErrNotFound
	}

	draft := entity.DefaultDraft(uploadID, upload.UploadedAt)
	if extracted.DocumentDate != nil {
		draft.DocumentDate = *extracted.DocumentDate
	}
	if extracted.CounterpartyName != nil {
		draft.CounterpartyName = *extracted.CounterpartyName
	}
	if extracted.BookingText != nil {
		draft.BookingText = *extracted.BookingText
	}
	draft.AmountGross = extracted.AmountGross
	draft.AmountNet = extracted.AmountNet
	draft.AmountTax = extracted.AmountTax
	if upload.EntryType == entity.EntryTypeIncome {
		draft.PaymentReceivedDate = extracted.PaymentReceivedDate
	}

	now := time.Now()
	draft.CreatedAt = now
	draft.UpdatedAt = now
	return uc.draftRepo.InsertIfAbsent(draft)
}

// effectiveDraft devuelve la fila persistida o los defaults si no existe.
func (uc *UseCase) effectiveDraft(upload *entity.InvoiceUpload) (*entity.ReviewDraft, error) {
	draft, err := uc.draftRepo.Get(upload.ID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		draft = entity.DefaultDraft(upload.ID, upload.UploadedAt)
	}
	return draft, nil
}

func (uc *UseCase) toResponse(upload *entity.InvoiceUpload, draft *entity.ReviewDraft, saved bool) *dto.UploadReviewResponse {
	status := repository.ReviewStatusPending
	if saved {
		status = repository.ReviewStatusSaved
	}
	return &dto.UploadReviewResponse{
		Upload: dto.NewUploadResponse(upload),
		Draft: dto.ReviewDraftResponse{
			DocumentDate:        draft.DocumentDate,
			CounterpartyName:    draft.CounterpartyName,
			BookingText:         draft.BookingText,
			AmountGross:         draft.AmountGross,
			AmountNet:           draft.AmountNet,
			AmountTax:           draft.AmountTax,
			PaymentReceivedDate: draft.PaymentReceivedDate,
			TypeOfExpenseID:     draft.TypeOfExpenseID,
		},
		ReviewStatus: status,
	}
}

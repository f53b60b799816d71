// Package ledger confirma borradores como asientos contables inmutables con
// numeración de documento consecutiva por (empresa, año, tipo).
package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/application/dto"
	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

// maxCommitAttempts reintentos ante conflicto de numeración concurrente.
// La restricción única del bucket convierte la carrera en un error detectable;
// el reintento recalcula MAX+1 en una transacción nueva.
const maxCommitAttempts = 3

// CommitEntryUseCase confirma el borrador de un upload como asiento del libro.
type CommitEntryUseCase struct {
	txRunner        TxRunner
	uploadRepo      repository.InvoiceUploadRepository
	draftRepo       repository.ReviewDraftRepository
	expenseTypeRepo repository.ExpenseTypeRepository
	entryRepo       repository.AccountingEntryRepository
}

// NewCommitEntryUseCase construye el caso de uso.
func NewCommitEntryUseCase(
	txRunner TxRunner,
	uploadRepo repository.InvoiceUploadRepository,
	draftRepo repository.ReviewDraftRepository,
	expenseTypeRepo repository.ExpenseTypeRepository,
	entryRepo repository.AccountingEntryRepository,
) *CommitEntryUseCase {
	return &CommitEntryUseCase{
		txRunner:        txRunner,
		uploadRepo:      uploadRepo,
		draftRepo:       draftRepo,
		expenseTypeRepo: expenseTypeRepo,
		entryRepo:       entryRepo,
	}
}

// Commit valida el borrador completo del upload y lo inserta como asiento con
// el siguiente número de documento de su bucket (empresa, año del documento,
// tipo). El asiento resultante es inmutable. Errores de negocio:
// domain.ErrNotFound (upload inexistente o de otra empresa),
// *domain.ValidationError (borrador incompleto o inválido),
// domain.ErrExpenseTypeNotFound y domain.ErrAlreadySaved (idempotencia: el
// upload ya fue confirmado).
func (uc *CommitEntryUseCase) Commit(ctx context.Context, companyID int64, uploadID string) (*dto.CommitEntryResponse, error) {
	upload, err := uc.uploadRepo.GetByIDAndCompany(uploadID, companyID)
	if err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, domain.ErrNotFound
	}

	draft, err := uc.draftRepo.Get(uploadID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		draft = entity.DefaultDraft(uploadID, upload.UploadedAt)
	}
	if err := draft.ValidateForCommit(upload.EntryType); err != nil {
		return nil, err
	}

	// Snapshot de la categoría P&L del tipo de gasto: el asiento conserva la
	// categoría vigente al confirmar aunque el catálogo cambie después.
	var expenseTypeText *string
	var plCategory *entity.PLCategory
	if upload.EntryType == entity.EntryTypeExpense {
		expenseType, err := uc.expenseTypeRepo.GetByID(*draft.TypeOfExpenseID)
		if err != nil {
			return nil, err
		}
		if expenseType == nil {
			return nil, domain.ErrExpenseTypeNotFound
		}
		expenseTypeText = &expenseType.Text
		category := expenseType.PLCategory
		plCategory = &category
	}

	// Chequeo rápido fuera de la tx; el índice único de upload_id es el
	// respaldo contra la carrera doble-commit.
	saved, err := uc.entryRepo.ExistsByUploadID(uploadID)
	if err != nil {
		return nil, err
	}
	if saved {
		return nil, domain.ErrAlreadySaved
	}

	entry := &entity.AccountingEntry{
		CompanyID:           companyID,
		EntryType:           upload.EntryType,
		ExpensePLCategory:   plCategory,
		DocumentDate:        draft.DocumentDate,
		DocumentYear:        entity.YearOfDate(draft.DocumentDate),
		PaymentReceivedDate: draft.PaymentReceivedDate,
		TypeOfExpenseID:     draft.TypeOfExpenseID,
		CounterpartyName:    strings.TrimSpace(draft.CounterpartyName),
		BookingText:         strings.TrimSpace(draft.BookingText),
		AmountGross:         draft.AmountGross,
		AmountNet:           draft.AmountNet,
		AmountTax:           draft.AmountTax,
		UploadID:            uploadID,
		ExtractionStatus:    upload.ExtractionStatus,
	}

	if err := uc.commitWithRetry(ctx, entry); err != nil {
		return nil, err
	}

	return &dto.CommitEntryResponse{Entry: toEntrySummaryResponse(entry, expenseTypeText, upload.OriginalFilename)}, nil
}

// commitWithRetry calcula MAX+1 e inserta en una sola transacción. Si dos
// commits concurrentes del mismo bucket calculan el mismo número, el perdedor
// recibe ErrSequenceConflict de la restricción única y reintenta con una
// transacción fresca. ErrAlreadySaved no se reintenta: es terminal.
func (uc *CommitEntryUseCase) commitWithRetry(ctx context.Context, entry *entity.AccountingEntry) error {
	var lastErr error
	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		err := uc.txRunner.RunLedger(ctx, func(entryRepo repository.AccountingEntryRepository) error {
			number, err := entryRepo.NextDocumentNumber(entry.CompanyID, entry.DocumentYear, entry.EntryType)
			if err != nil {
				return err
			}
			entry.DocumentNumber = number
			return entryRepo.Create(entry)
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrSequenceConflict) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

func toEntrySummaryResponse(e *entity.AccountingEntry, expenseTypeText *string, originalFilename string) dto.EntrySummaryResponse {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return dto.EntrySummaryResponse{
		ID:                     e.ID,
		EntryType:              string(e.EntryType),
		DocumentYear:           e.DocumentYear,
		DocumentNumber:         int(e.DocumentNumber),
		DocumentDate:           e.DocumentDate,
		CounterpartyName:       e.CounterpartyName,
		BookingText:            e.BookingText,
		AmountGross:            e.AmountGross,
		AmountNet:              e.AmountNet,
		AmountTax:              e.AmountTax,
		PaymentReceivedDate:    e.PaymentReceivedDate,
		TypeOfExpenseID:        e.TypeOfExpenseID,
		ExpenseTypeText:        expenseTypeText,
		SourceUploadID:         e.UploadID,
		SourceOriginalFilename: originalFilename,
		CreatedAt:              createdAt,
	}
}

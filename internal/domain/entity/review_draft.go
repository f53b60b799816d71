package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/domain"
)

// Límites de los campos de texto de un borrador.
const (
	MaxCounterpartyNameLength = 200
	MaxBookingTextLength      = 500
)

// PendingExtractionPlaceholder texto mostrado mientras la extracción no ha sembrado datos.
const PendingExtractionPlaceholder = "Pending extraction"

// ReviewDraft borrador editable de un upload, previo a la confirmación.
// Es la única superficie mutable: las correcciones ocurren aquí, nunca sobre el
// asiento confirmado. Los punteros nil representan NULL.
type ReviewDraft struct {
	UploadID            string
	DocumentDate        string
	CounterpartyName    string
	BookingText         string
	AmountGross         int64 // centavos, >= 0
	AmountNet           *int64
	AmountTax           *int64
	PaymentReceivedDate *string
	TypeOfExpenseID     *int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DefaultDraft borrador por defecto cuando aún no existe fila: la fecha del
// documento cae a la fecha de subida y el resto queda en placeholder/cero.
func DefaultDraft(uploadID string, uploadedAt time.Time) *ReviewDraft {
	return &ReviewDraft{
		UploadID:         uploadID,
		DocumentDate:     uploadedAt.Format(DateOnlyLayout),
		CounterpartyName: PendingExtractionPlaceholder,
		BookingText:      "",
		AmountGross:      0,
	}
}

// DraftPatch parche parcial de borrador: solo los campos presentes se
// sobreescriben. Para los campos anulables, Set* distingue "asignar NULL"
// de "no tocar".
type DraftPatch struct {
	DocumentDate     *string
	CounterpartyName *string
	BookingText      *string
	AmountGross      *int64

	AmountNet    *int64
	SetAmountNet bool

	AmountTax    *int64
	SetAmountTax bool

	PaymentReceivedDate    *string
	SetPaymentReceivedDate bool

	TypeOfExpenseID    *int64
	SetTypeOfExpenseID bool
}

// Apply devuelve una copia del borrador con el parche aplicado
// (semántica de sobreescritura solo de claves presentes).
func (d ReviewDraft) Apply(patch DraftPatch) ReviewDraft {
	next := d
	if patch.DocumentDate != nil {
		next.DocumentDate = *patch.DocumentDate
	}
	if patch.CounterpartyName != nil {
		next.CounterpartyName = *patch.CounterpartyName
	}
	if patch.BookingText != nil {
		next.BookingText = *patch.BookingText
	}
	if patch.AmountGross != nil {
		next.AmountGross = *patch.AmountGross
	}
	if patch.SetAmountNet {
		next.AmountNet = patch.AmountNet
	}
	if patch.SetAmountTax {
		next.AmountTax = patch.AmountTax
	}
	if patch.SetPaymentReceivedDate {
		next.PaymentReceivedDate = patch.PaymentReceivedDate
	}
	if patch.SetTypeOfExpenseID {
		next.TypeOfExpenseID = patch.TypeOfExpenseID
	}
	return next
}

// ExtractedDraft campos propuestos por la extracción. Los nil son "no encontrado".
type ExtractedDraft struct {
	DocumentDate        *string
	CounterpartyName    *string
	BookingText         *string
	AmountGross         int64
	AmountNet           *int64
	AmountTax           *int64
	PaymentReceivedDate *string
}

// ValidateForCommit valida el borrador completo contra las reglas del tipo de
// asiento antes de confirmarlo como asiento contable. Devuelve
// *domain.ValidationError con el campo ofensivo.
func (d ReviewDraft) ValidateForCommit(entryType EntryType) error {
	if !IsDateOnly(d.DocumentDate) {
		return domain.NewValidationError("documentDate", "debe ser una fecha válida YYYY-MM-DD")
	}

	counterparty := strings.TrimSpace(d.CounterpartyName)
	if len(counterparty) < 1 || len(counterparty) > MaxCounterpartyNameLength {
		return domain.NewValidationError("counterpartyName", "debe ser no vacío y de máximo 200 caracteres")
	}

	bookingText := strings.TrimSpace(d.BookingText)
	if len(bookingText) < 1 || len(bookingText) > MaxBookingTextLength {
		return domain.NewValidationError("bookingText", "debe ser no vacío y de máximo 500 caracteres")
	}

	if d.AmountGross < 0 {
		return domain.NewValidationError("amountGross", "debe ser un entero >= 0")
	}
	if d.AmountNet != nil && *d.AmountNet < 0 {
		return domain.NewValidationError("amountNet", "debe ser un entero >= 0 o null")
	}
	if d.AmountTax != nil && *d.AmountTax < 0 {
		return domain.NewValidationError("amountTax", "debe ser un entero >= 0 o null")
	}

	switch entryType {
	case EntryTypeIncome:
		if d.PaymentReceivedDate == nil || !IsDateOnly(*d.PaymentReceivedDate) {
			return domain.NewValidationError("paymentReceivedDate", "es requerido para asientos de ingreso")
		}
		if d.TypeOfExpenseID != nil {
			return domain.NewValidationError("typeOfExpenseId", "debe ser null para asientos de ingreso")
		}
	case EntryTypeExpense:
		if d.PaymentReceivedDate != nil {
			return domain.NewValidationError("paymentReceivedDate", "debe ser null para asientos de gasto")
		}
		if d.TypeOfExpenseID == nil {
			return domain.NewValidationError("typeOfExpenseId", "es requerido para asientos de gasto")
		}
	default:
		return domain.NewValidationError("entryType", "tipo de asiento desconocido")
	}

	return nil
}

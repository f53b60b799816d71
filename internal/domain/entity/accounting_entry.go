package entity

import "time"

// AccountingEntry asiento contable confirmado. Append-only: no existe camino de
// actualización ni borrado; las correcciones ocurren en el borrador, antes de
// confirmar. La clave (CompanyID, DocumentYear, EntryType, DocumentNumber) es
// única y consecutiva por bucket; UploadID es único (un upload se confirma a lo
// sumo una vez).
type AccountingEntry struct {
	ID                  int64
	CompanyID           int64
	DocumentNumber      int64
	EntryType           EntryType
	ExpensePLCategory   *PLCategory // snapshot de la categoría del tipo de gasto al confirmar; nil en ingresos
	DocumentDate        string
	DocumentYear        int
	PaymentReceivedDate *string
	TypeOfExpenseID     *int64
	CounterpartyName    string
	BookingText         string
	AmountGross         int64 // centavos
	AmountNet           *int64
	AmountTax           *int64
	UploadID            string
	ExtractionStatus    ExtractionStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// EntrySummary fila de solo lectura devuelta al confirmar o listar asientos.
// Incluye el texto del tipo de gasto y el nombre original del PDF fuente.
type EntrySummary struct {
	ID                     int64
	CompanyID              int64
	DocumentNumber         int64
	EntryType              EntryType
	DocumentYear           int
	DocumentDate           string
	PaymentReceivedDate    *string
	TypeOfExpenseID        *int64
	ExpenseTypeText        *string
	CounterpartyName       string
	BookingText            string
	AmountGross            int64
	AmountNet              *int64
	AmountTax              *int64
	UploadID               string
	SourceOriginalFilename string
	ExtractionStatus       ExtractionStatus
	CreatedAt              time.Time
}

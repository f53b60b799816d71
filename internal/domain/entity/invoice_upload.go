package entity

import "time"

// EntryType naturaleza contable de un documento: ingreso o gasto.
type EntryType string

const (
	EntryTypeIncome  EntryType = "income"
	EntryTypeExpense EntryType = "expense"
)

// IsValidEntryType valida el enum de tipo de asiento.
func IsValidEntryType(value string) bool {
	return EntryType(value) == EntryTypeIncome || EntryType(value) == EntryTypeExpense
}

// ExtractionStatus estado terminal-izable de la extracción de un upload.
// pending -> succeeded | failed; los fallos son terminales (sin reintento automático).
type ExtractionStatus string

const (
	ExtractionStatusPending   ExtractionStatus = "pending"
	ExtractionStatusSucceeded ExtractionStatus = "succeeded"
	ExtractionStatusFailed    ExtractionStatus = "failed"
)

// Códigos de fallo de extracción registrados en el upload.
const (
	ExtractionErrProvider      = "EXTRACTION_PROVIDER_ERROR"
	ExtractionErrTimeout       = "EXTRACTION_TIMEOUT"
	ExtractionErrInvalidOutput = "EXTRACTION_INVALID_OUTPUT"
	ExtractionErrConfigMissing = "EXTRACTION_CONFIG_MISSING"
	ExtractionErrPersistence   = "EXTRACTION_PERSISTENCE_FAILED"
)

// InvoiceUpload metadato de un PDF subido. Se crea al subir, la tubería de
// extracción lo muta una sola vez (succeeded/failed) y no se borra en el flujo normal.
type InvoiceUpload struct {
	ID                     string // token opaco (uuid)
	CompanyID              int64
	EntryType              EntryType
	OriginalFilename       string
	StoredFilename         string
	StoredPath             string
	UploadedAt             time.Time
	ExtractionStatus       ExtractionStatus
	ExtractionErrorCode    *string
	ExtractionErrorMessage *string
	ExtractedAt            *time.Time
}

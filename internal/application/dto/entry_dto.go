package dto

import "time"

// EntrySummaryResponse fila del libro de asientos (solo lectura).
type EntrySummaryResponse struct {
	ID                     int64     `json:"id"`
	EntryType              string    `json:"entryType"`
	DocumentYear           int       `json:"documentYear"`
	DocumentNumber         int       `json:"documentNumber"`
	DocumentDate           string    `json:"documentDate"`
	CounterpartyName       string    `json:"counterpartyName"`
	BookingText            string    `json:"bookingText"`
	AmountGross            int64     `json:"amountGross"`
	AmountNet              *int64    `json:"amountNet"`
	AmountTax              *int64    `json:"amountTax"`
	PaymentReceivedDate    *string   `json:"paymentReceivedDate"`
	TypeOfExpenseID        *int64    `json:"typeOfExpenseId"`
	ExpenseTypeText        *string   `json:"expenseTypeText"`
	SourceUploadID         string    `json:"sourceUploadId"`
	SourceOriginalFilename string    `json:"sourceOriginalFilename"`
	CreatedAt              time.Time `json:"createdAt"`
}

// EntryListResponse listado del libro de una empresa.
type EntryListResponse struct {
	Items []EntrySummaryResponse `json:"items"`
}

// CommitEntryResponse resultado de confirmar un borrador al libro.
type CommitEntryResponse struct {
	Entry EntrySummaryResponse `json:"entry"`
}

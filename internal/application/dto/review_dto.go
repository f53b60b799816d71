package dto

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
)

// ReviewDraftResponse borrador efectivo de un upload (con defaults aplicados).
type ReviewDraftResponse struct {
	DocumentDate        string  `json:"documentDate"`
	CounterpartyName    string  `json:"counterpartyName"`
	BookingText         string  `json:"bookingText"`
	AmountGross         int64   `json:"amountGross"`
	AmountNet           *int64  `json:"amountNet"`
	AmountTax           *int64  `json:"amountTax"`
	PaymentReceivedDate *string `json:"paymentReceivedDate"`
	TypeOfExpenseID     *int64  `json:"typeOfExpenseId"`
}

// UploadReviewResponse upload + borrador + estado de revisión.
type UploadReviewResponse struct {
	Upload       UploadResponse      `json:"upload"`
	Draft        ReviewDraftResponse `json:"draft"`
	ReviewStatus string              `json:"reviewStatus"` // pending_review | saved
}

// allowedDraftPatchFields claves aceptadas en el parche de borrador.
var allowedDraftPatchFields = map[string]struct{}{
	"documentDate":        {},
	"counterpartyName":    {},
	"bookingText":         {},
	"amountGross":         {},
	"amountNet":           {},
	"amountTax":           {},
	"paymentReceivedDate": {},
	"typeOfExpenseId":     {},
}

// ParseDraftPatch decodifica y valida un parche parcial de borrador: solo las
// claves presentes se aplican, las desconocidas se rechazan, y null explícito
// es válido en los campos anulables. Devuelve *domain.ValidationError en
// cualquier violación de formato.
func ParseDraftPatch(body []byte) (entity.DraftPatch, error) {
	var patch entity.DraftPatch

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return patch, domain.NewValidationError("body", "el cuerpo debe ser un objeto JSON")
	}
	for key := range raw {
		if _, ok := allowedDraftPatchFields[key]; !ok {
			return patch, domain.NewValidationError(key, fmt.Sprintf("campo desconocido: %s", key))
		}
	}

	if msg, ok := raw["documentDate"]; ok {
		var v string
		if err := json.Unmarshal(msg, &v); err != nil || !entity.IsDateOnly(v) {
			return patch, domain.NewValidationError("documentDate", "debe ser una fecha válida YYYY-MM-DD")
		}
		patch.DocumentDate = &v
	}

	if msg, ok := raw["counterpartyName"]; ok {
		var v string
		if string(msg) == "null" || json.Unmarshal(msg, &v) != nil || len(v) > entity.MaxCounterpartyNameLength {
			return patch, domain.NewValidationError("counterpartyName", "debe ser un string de máximo 200 caracteres")
		}
		patch.CounterpartyName = &v
	}

	if msg, ok := raw["bookingText"]; ok {
		var v string
		if string(msg) == "null" || json.Unmarshal(msg, &v) != nil || len(v) > entity.MaxBookingTextLength {
			return patch, domain.NewValidationError("bookingText", "debe ser un string de máximo 500 caracteres")
		}
		patch.BookingText = &v
	}

	if msg, ok := raw["amountGross"]; ok {
		v, err := parseNonNegativeInt(msg)
		if err != nil {
			return patch, domain.NewValidationError("amountGross", "debe ser un entero >= 0")
		}
		patch.AmountGross = &v
	}

	if msg, ok := raw["amountNet"]; ok {
		value, err := parseNullableNonNegativeInt(msg)
		if err != nil {
			return patch, domain.NewValidationError("amountNet", "debe ser un entero >= 0 o null")
		}
		patch.AmountNet = value
		patch.SetAmountNet = true
	}

	if msg, ok := raw["amountTax"]; ok {
		value, err := parseNullableNonNegativeInt(msg)
		if err != nil {
			return patch, domain.NewValidationError("amountTax", "debe ser un entero >= 0 o null")
		}
		patch.AmountTax = value
		patch.SetAmountTax = true
	}

	if msg, ok := raw["paymentReceivedDate"]; ok {
		if string(msg) == "null" {
			patch.SetPaymentReceivedDate = true
		} else {
			var v string
			if err := json.Unmarshal(msg, &v); err != nil || !entity.IsDateOnly(v) {
				return patch, domain.NewValidationError("paymentReceivedDate", "debe ser una fecha válida YYYY-MM-DD o null")
			}
			patch.PaymentReceivedDate = &v
			patch.SetPaymentReceivedDate = true
		}
	}

	if msg, ok := raw["typeOfExpenseId"]; ok {
		if string(msg) == "null" {
			patch.SetTypeOfExpenseID = true
		} else {
			v, err := parseNonNegativeInt(msg)
			if err != nil || v < 1 {
				return patch, domain.NewValidationError("typeOfExpenseId", "debe ser un entero positivo o null")
			}
			patch.TypeOfExpenseID = &v
			patch.SetTypeOfExpenseID = true
		}
	}

	return patch, nil
}

func parseNonNegativeInt(msg json.RawMessage) (int64, error) {
	// json.Unmarshal trata null como no-op sobre un int64: rechazarlo explícito.
	if string(msg) == "null" {
		return 0, fmt.Errorf("null")
	}
	var v int64
	if err := json.Unmarshal(msg, &v); err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negativo")
	}
	return v, nil
}

func parseNullableNonNegativeInt(msg json.RawMessage) (*int64, error) {
	if string(msg) == "null" {
		return nil, nil
	}
	v, err := parseNonNegativeInt(msg)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrAlreadySaved: el upload ya fue confirmado como asiento contable.
	// Resultado idempotente: el asiento existe, no se crea otro.
	ErrAlreadySaved = errors.New("el asiento de este upload ya existe")

	// ErrExpenseTypeNotFound: el tipo de gasto referenciado no existe.
	ErrExpenseTypeNotFound = errors.New("tipo de gasto no encontrado")

	// ErrSequenceConflict: dos commits concurrentes calcularon el mismo número
	// de documento para el mismo bucket (empresa, año, tipo). El caso de uso
	// reintenta la transacción completa.
	ErrSequenceConflict = errors.New("conflicto de numeración de documento")
)

// ValidationError error de validación con detalle de campo, distinguible por el caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación %s: %s", e.Field, e.Message)
}

// NewValidationError construye un error de validación de campo.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AsValidationError extrae un *ValidationError de la cadena de errores, si lo hay.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

package dto

// ErrorResponse cuerpo de error HTTP. Field solo se incluye en errores de
// validación con detalle de campo.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Package ai implementa la extracción de campos de facturas PDF usando la
// Responses API de OpenAI. Usa net/http de la librería estándar; no requiere
// SDK oficial.
package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jhoicas/Contabilidad-api/internal/application/extraction"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que OpenAIExtractor implementa el puerto.
var _ extraction.InvoiceExtractor = (*OpenAIExtractor)(nil)

const (
	openAIResponsesURL = "https://api.openai.com/v1/responses"

	extractionSystemPrompt = `Eres un asistente de contabilidad. Extrae los campos del documento PDF adjunto.
Reglas:
- documentDate: fecha del documento en formato YYYY-MM-DD. null si no es legible.
- counterpartyName: nombre de la contraparte (emisor si es gasto, cliente si es ingreso). null si no es legible.
- bookingText: descripción corta del concepto facturado. null si no es legible.
- amountGross: monto total en centavos (entero, sin separadores). 0 si no es legible.
- amountNet y amountTax: en centavos si el documento los desglosa, null si no.
- paymentReceivedDate: solo para ingresos, fecha de pago YYYY-MM-DD si el documento la indica, null si no.
No inventes valores: ante la duda usa null.`
)

// extractionOutputSchema contrato estricto de la salida del modelo. La
// respuesta se valida contra este schema antes de sembrar el borrador.
var extractionOutputSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"required": []string{
		"documentDate", "counterpartyName", "bookingText",
		"amountGross", "amountNet", "amountTax", "paymentReceivedDate",
	},
	"properties": map[string]any{
		"documentDate":        map[string]any{"type": []string{"string", "null"}},
		"counterpartyName":    map[string]any{"type": []string{"string", "null"}},
		"bookingText":         map[string]any{"type": []string{"string", "null"}},
		"amountGross":         map[string]any{"type": "integer"},
		"amountNet":           map[string]any{"type": []string{"integer", "null"}},
		"amountTax":           map[string]any{"type": []string{"integer", "null"}},
		"paymentReceivedDate": map[string]any{"type": []string{"string", "null"}},
	},
}

// OpenAIExtractor adaptador sobre la Responses API de OpenAI con salida
// estructurada (json_schema estricto) y el PDF como input_file en base64.
type OpenAIExtractor struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIExtractor construye el adaptador. Si apiKey está vacío las llamadas
// devuelven un fallo EXTRACTION_CONFIG_MISSING en lugar de panic.
func NewOpenAIExtractor(apiKey, model string) *OpenAIExtractor {
	return &OpenAIExtractor{
		apiKey:  apiKey,
		model:   model,
		baseURL: openAIResponsesURL,
		httpClient: &http.Client{
			// Timeout de red de respaldo; el servicio impone además el
			// context.WithTimeout configurado.
			Timeout: 60 * time.Second,
		},
	}
}

// ── Estructuras internas del protocolo OpenAI Responses API ──────────────────

type openAIRequest struct {
	Model        string          `json:"model"`
	Instructions string          `json:"instructions"`
	Input        []openAIMessage `json:"input"`
	Text         openAIText      `json:"text"`
}

type openAIMessage struct {
	Role    string          `json:"role"`
	Content []openAIContent `json:"content"`
}

type openAIContent struct {
	Type     string `json:"type"` // input_file | input_text
	Filename string `json:"filename,omitempty"`
	FileData string `json:"file_data,omitempty"`
	Text     string `json:"text,omitempty"`
}

type openAIText struct {
	Format openAIFormat `json:"format"`
}

type openAIFormat struct {
	Type   string         `json:"type"` // json_schema
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type openAIResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type extractionOutput struct {
	DocumentDate        *string `json:"documentDate"`
	CounterpartyName    *string `json:"counterpartyName"`
	BookingText         *string `json:"bookingText"`
	AmountGross         int64   `json:"amountGross"`
	AmountNet           *int64  `json:"amountNet"`
	AmountTax           *int64  `json:"amountTax"`
	PaymentReceivedDate *string `json:"paymentReceivedDate"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Extract envía el PDF al modelo y devuelve los campos propuestos, ya
// normalizados. Todo fallo vuelve como *extraction.Failure clasificado.
func (s *OpenAIExtractor) Extract(ctx context.Context, pdfPath string, entryType entity.EntryType, originalFilename string) (*entity.ExtractedDraft, error) {
	if s.apiKey == "" {
		return nil, extraction.NewFailure(entity.ExtractionErrConfigMissing, "OPENAI_API_KEY no configurado")
	}

	content, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, extraction.NewFailure(entity.ExtractionErrProvider, "no se pudo leer el PDF almacenado: "+err.Error())
	}

	instruction := "Extrae los campos de esta factura de gasto."
	if entryType == entity.EntryTypeIncome {
		instruction = "Extrae los campos de esta factura de ingreso emitida por la empresa."
	}

	payload := openAIRequest{
		Model:        s.model,
		Instructions: extractionSystemPrompt,
		Input: []openAIMessage{{
			Role: "user",
			Content: []openAIContent{
				{
					Type:     "input_file",
					Filename: originalFilename,
					FileData: "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(content),
				},
				{Type: "input_text", Text: instruction},
			},
		}},
		Text: openAIText{Format: openAIFormat{
			Type:   "json_schema",
			Name:   "invoice_extraction",
			Strict: true,
			Schema: extractionOutputSchema,
		}},
	}

	rawText, err := s.call(ctx, payload)
	if err != nil {
		return nil, err
	}

	if err := validateAgainstSchema(extractionOutputSchema, []byte(rawText)); err != nil {
		return nil, extraction.NewFailure(entity.ExtractionErrInvalidOutput, "la salida del modelo no cumple el contrato: "+err.Error())
	}

	var out extractionOutput
	if err := json.Unmarshal([]byte(rawText), &out); err != nil {
		return nil, extraction.NewFailure(entity.ExtractionErrInvalidOutput, "no se pudo parsear la salida del modelo: "+err.Error())
	}

	return normalize(out), nil
}

// call ejecuta la llamada HTTP y devuelve el texto de salida del modelo.
func (s *OpenAIExtractor) call(ctx context.Context, payload openAIRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", extraction.NewFailure(entity.ExtractionErrProvider, "serializar request: "+err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", extraction.NewFailure(entity.ExtractionErrProvider, "crear HTTP request: "+err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			// Lo clasifica el servicio como timeout.
			return "", ctx.Err()
		}
		return "", extraction.NewFailure(entity.ExtractionErrProvider, "llamada HTTP fallida: "+err.Error())
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return "", extraction.NewFailure(entity.ExtractionErrProvider, "leer respuesta: "+err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		var errResp openAIResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", extraction.NewFailure(entity.ExtractionErrProvider,
				fmt.Sprintf("OpenAI error (%s): %s", errResp.Error.Type, errResp.Error.Message))
		}
		return "", extraction.NewFailure(entity.ExtractionErrProvider,
			fmt.Sprintf("OpenAI HTTP %d: %s", resp.StatusCode, string(rawBody)))
	}

	var parsed openAIResponse
	if err := json.Unmarshal(rawBody, &parsed); err != nil {
		return "", extraction.NewFailure(entity.ExtractionErrInvalidOutput, "deserializar respuesta OpenAI: "+err.Error())
	}
	for _, item := range parsed.Output {
		if item.Type != "message" {
			continue
		}
		for _, c := range item.Content {
			if c.Type == "output_text" && c.Text != "" {
				return c.Text, nil
			}
		}
	}
	return "", extraction.NewFailure(entity.ExtractionErrInvalidOutput, "el modelo devolvió una respuesta vacía")
}

// validateAgainstSchema valida la salida del modelo contra el contrato.
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// normalize limpia los campos propuestos: fechas que no validan se descartan,
// textos se recortan a los límites del borrador y montos negativos se anulan.
func normalize(out extractionOutput) *entity.ExtractedDraft {
	draft := &entity.ExtractedDraft{}

	if out.DocumentDate != nil && entity.IsDateOnly(*out.DocumentDate) {
		draft.DocumentDate = out.DocumentDate
	}
	if out.CounterpartyName != nil {
		if name := truncate(strings.TrimSpace(*out.CounterpartyName), entity.MaxCounterpartyNameLength); name != "" {
			draft.CounterpartyName = &name
		}
	}
	if out.BookingText != nil {
		if text := truncate(strings.TrimSpace(*out.BookingText), entity.MaxBookingTextLength); text != "" {
			draft.BookingText = &text
		}
	}
	if out.AmountGross > 0 {
		draft.AmountGross = out.AmountGross
	}
	if out.AmountNet != nil && *out.AmountNet >= 0 {
		draft.AmountNet = out.AmountNet
	}
	if out.AmountTax != nil && *out.AmountTax >= 0 {
		draft.AmountTax = out.AmountTax
	}
	if out.PaymentReceivedDate != nil && entity.IsDateOnly(*out.PaymentReceivedDate) {
		draft.PaymentReceivedDate = out.PaymentReceivedDate
	}
	return draft
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

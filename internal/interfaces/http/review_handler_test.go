package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contabilidad-api/internal/application/dto"
	"github.com/jhoicas/Contabilidad-api/internal/application/ledger"
	"github.com/jhoicas/Contabilidad-api/internal/application/review"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/report"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Contabilidad-api/internal/interfaces/http"
)

// ── Fakes mínimos para montar el caso de uso real detrás del handler ─────────

type reviewUploads struct {
	uploads map[string]*entity.InvoiceUpload
}

func (r *reviewUploads) Create(u *entity.InvoiceUpload) error { r.uploads[u.ID] = u; return nil }

func (r *reviewUploads) GetByIDAndCompany(id string, companyID int64) (*entity.InvoiceUpload, error) {
	u, ok := r.uploads[id]
	if !ok || u.CompanyID != companyID {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *reviewUploads) GetByID(id string) (*entity.InvoiceUpload, error) {
	return r.GetByIDAndCompany(id, 1)
}

func (r *reviewUploads) ListQueueByCompany(int64, string) ([]*repository.UploadQueueItem, error) {
	return nil, nil
}
func (r *reviewUploads) CountByCompany(int64) (int64, error)             { return 0, nil }
func (r *reviewUploads) MarkExtractionSucceeded(string, time.Time) error { return nil }
func (r *reviewUploads) MarkExtractionFailed(string, string, string) error {
	return nil
}

type reviewDrafts struct {
	drafts map[string]*entity.ReviewDraft
}

func (r *reviewDrafts) Get(uploadID string) (*entity.ReviewDraft, error) {
	d, ok := r.drafts[uploadID]
	if !ok {
		return nil, nil
	}
	copied := *d
	return &copied, nil
}

func (r *reviewDrafts) Upsert(d *entity.ReviewDraft) error {
	copied := *d
	r.drafts[d.UploadID] = &copied
	return nil
}

func (r *reviewDrafts) InsertIfAbsent(d *entity.ReviewDraft) (bool, error) {
	if _, ok := r.drafts[d.UploadID]; ok {
		return false, nil
	}
	copied := *d
	r.drafts[d.UploadID] = &copied
	return true, nil
}

func (r *reviewDrafts) CountByExpenseType(int64) (int64, error) { return 0, nil }

type reviewEntries struct{ saved map[string]bool }

func (r *reviewEntries) ExistsByUploadID(id string) (bool, error) { return r.saved[id], nil }

func (r *reviewEntries) NextDocumentNumber(int64, int, entity.EntryType) (int64, error) {
	return 0, nil
}
func (r *reviewEntries) Create(*entity.AccountingEntry) error { return nil }
func (r *reviewEntries) ListSummariesByCompany(int64) ([]*entity.EntrySummary, error) {
	return nil, nil
}
func (r *reviewEntries) ListForReports(int64) ([]*report.Entry, error) { return nil, nil }
func (r *reviewEntries) CountByCompany(int64) (int64, error)           { return 0, nil }
func (r *reviewEntries) CountByExpenseType(int64) (int64, error)       { return 0, nil }

type reviewExpenseTypes struct{ types map[int64]*entity.ExpenseType }

func (r *reviewExpenseTypes) Create(*entity.ExpenseType) error { return nil }

func (r *reviewExpenseTypes) GetByID(id int64) (*entity.ExpenseType, error) {
	et, ok := r.types[id]
	if !ok {
		return nil, nil
	}
	copied := *et
	return &copied, nil
}

func (r *reviewExpenseTypes) List() ([]*entity.ExpenseType, error) { return nil, nil }
func (r *reviewExpenseTypes) Delete(int64) error                   { return nil }
func (r *reviewExpenseTypes) Resequence([]int64) error             { return nil }

type reviewTxRunner struct{ entries repository.AccountingEntryRepository }

func (r *reviewTxRunner) RunLedger(_ context.Context, fn func(repository.AccountingEntryRepository) error) error {
	return fn(r.entries)
}

type reviewAppFixture struct {
	app     *fiber.App
	drafts  *reviewDrafts
	entries *reviewEntries
}

// buildReviewApp monta las rutas de revisión y confirmación con la empresa
// activa 1 ya resuelta, para ejercer handler + parseo + caso de uso de punta
// a punta.
func buildReviewApp() *reviewAppFixture {
	uploads := &reviewUploads{uploads: map[string]*entity.InvoiceUpload{
		"u-1": {
			ID:               "u-1",
			CompanyID:        1,
			EntryType:        entity.EntryTypeExpense,
			OriginalFilename: "factura.pdf",
			UploadedAt:       time.Date(2025, 5, 20, 11, 0, 0, 0, time.UTC),
			ExtractionStatus: entity.ExtractionStatusPending,
		},
	}}
	drafts := &reviewDrafts{drafts: make(map[string]*entity.ReviewDraft)}
	entries := &reviewEntries{saved: make(map[string]bool)}
	expenseTypes := &reviewExpenseTypes{types: map[int64]*entity.ExpenseType{
		3: {ID: 3, Text: "Software", PLCategory: entity.PLCategoryOperatingExpense},
	}}

	handler := apphttp.NewReviewHandler(review.NewUseCase(uploads, drafts, entries, expenseTypes))
	commitUC := ledger.NewCommitEntryUseCase(&reviewTxRunner{entries: entries}, uploads, drafts, expenseTypes, entries)
	entryHandler := apphttp.NewEntryHandler(commitUC, nil)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalCompanyID, int64(1))
		return c.Next()
	})
	app.Get("/uploads/:id/review", handler.Get)
	app.Patch("/uploads/:id/review", handler.Patch)
	app.Post("/uploads/:id/commit", entryHandler.Commit)
	return &reviewAppFixture{app: app, drafts: drafts, entries: entries}
}

func decodeReview(t *testing.T, resp *http.Response) dto.UploadReviewResponse {
	t.Helper()
	var body dto.UploadReviewResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestReviewHandlerGet_DefaultsParaUploadSinBorrador(t *testing.T) {
	f := buildReviewApp()

	req := httptest.NewRequest(fiber.MethodGet, "/uploads/u-1/review", nil)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeReview(t, resp)
	assert.Equal(t, "2025-05-20", body.Draft.DocumentDate)
	assert.Equal(t, entity.PendingExtractionPlaceholder, body.Draft.CounterpartyName)
	assert.Equal(t, repository.ReviewStatusPending, body.ReviewStatus)
	assert.Equal(t, "u-1", body.Upload.ID)
}

func TestReviewHandlerGet_NoExiste(t *testing.T) {
	f := buildReviewApp()

	req := httptest.NewRequest(fiber.MethodGet, "/uploads/otro/review", nil)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
}

func TestReviewHandlerPatch_AplicaYDevuelveElBorrador(t *testing.T) {
	f := buildReviewApp()

	payload := `{"counterpartyName":"Proveedor XYZ","amountGross":42000,"typeOfExpenseId":3}`
	req := httptest.NewRequest(fiber.MethodPatch, "/uploads/u-1/review", strings.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeReview(t, resp)
	assert.Equal(t, "Proveedor XYZ", body.Draft.CounterpartyName)
	assert.Equal(t, int64(42000), body.Draft.AmountGross)
	require.NotNil(t, body.Draft.TypeOfExpenseID)
	assert.Equal(t, int64(3), *body.Draft.TypeOfExpenseID)
	// Lo no parchado conserva los defaults.
	assert.Equal(t, "2025-05-20", body.Draft.DocumentDate)
}

func TestReviewHandlerPatch_ClaveDesconocida(t *testing.T) {
	f := buildReviewApp()

	req := httptest.NewRequest(fiber.MethodPatch, "/uploads/u-1/review", strings.NewReader(`{"totalAmount":5}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestReviewHandlerPatch_UploadYaConfirmado(t *testing.T) {
	f := buildReviewApp()
	f.entries.saved["u-1"] = true

	req := httptest.NewRequest(fiber.MethodPatch, "/uploads/u-1/review", strings.NewReader(`{"amountGross":1}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ALREADY_SAVED", errorCode(t, resp))
}

// Referenciar un tipo de gasto inexistente es un rechazo del cuerpo enviado
// (400), no un recurso ausente.
func TestReviewHandlerPatch_TipoDeGastoInexistente(t *testing.T) {
	f := buildReviewApp()

	req := httptest.NewRequest(fiber.MethodPatch, "/uploads/u-1/review", strings.NewReader(`{"typeOfExpenseId":999}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "EXPENSE_TYPE_NOT_FOUND", errorCode(t, resp))
}

func TestEntryHandlerCommit_TipoDeGastoInexistente(t *testing.T) {
	f := buildReviewApp()
	typeID := int64(999)
	_ = f.drafts.Upsert(&entity.ReviewDraft{
		UploadID:         "u-1",
		DocumentDate:     "2025-05-20",
		CounterpartyName: "Proveedor XYZ",
		BookingText:      "Compra",
		AmountGross:      1_000,
		TypeOfExpenseID:  &typeID,
	})

	req := httptest.NewRequest(fiber.MethodPost, "/uploads/u-1/commit", nil)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "EXPENSE_TYPE_NOT_FOUND", errorCode(t, resp))
}

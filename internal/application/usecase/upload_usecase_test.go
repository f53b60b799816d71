package usecase_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contabilidad-api/internal/application/usecase"
	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
	"github.com/jhoicas/Contabilidad-api/pkg/logger"
)

const testMaxUploadBytes = 1024

var validPDF = []byte("%PDF-1.7\ncontenido de prueba")

// ── Fakes en memoria ─────────────────────────────────────────────────────────

type uploadRepoFake struct {
	uploads   map[string]*entity.InvoiceUpload
	failed    map[string]string // upload_id -> código de error marcado
	createErr error
}

func newUploadRepoFake() *uploadRepoFake {
	return &uploadRepoFake{
		uploads: make(map[string]*entity.InvoiceUpload),
		failed:  make(map[string]string),
	}
}

func (r *uploadRepoFake) Create(upload *entity.InvoiceUpload) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := *upload
	r.uploads[upload.ID] = &copied
	return nil
}

func (r *uploadRepoFake) GetByIDAndCompany(id string, companyID int64) (*entity.InvoiceUpload, error) {
	u, ok := r.uploads[id]
	if !ok || u.CompanyID != companyID {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *uploadRepoFake) GetByID(id string) (*entity.InvoiceUpload, error) {
	u, ok := r.uploads[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *uploadRepoFake) ListQueueByCompany(companyID int64, statusFilter string) ([]*repository.UploadQueueItem, error) {
	items := make([]*repository.UploadQueueItem, 0, len(r.uploads))
	for _, u := range r.uploads {
		if u.CompanyID == companyID {
			items = append(items, &repository.UploadQueueItem{Upload: *u, ReviewStatus: repository.ReviewStatusPending})
		}
	}
	return items, nil
}

func (r *uploadRepoFake) CountByCompany(int64) (int64, error) { return 0, nil }

func (r *uploadRepoFake) MarkExtractionSucceeded(string, time.Time) error { return nil }

func (r *uploadRepoFake) MarkExtractionFailed(id, code, _ string) error {
	r.failed[id] = code
	return nil
}

type companyRepoFake struct {
	companies map[int64]*entity.Company
}

func (r *companyRepoFake) Create(*entity.Company) error { return nil }

func (r *companyRepoFake) GetByID(id int64) (*entity.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (r *companyRepoFake) List() ([]*entity.Company, error) { return nil, nil }

func (r *companyRepoFake) Delete(int64) error { return nil }

// fakeFileStore guarda los PDF en memoria y registra los borrados.
type fakeFileStore struct {
	saved   map[string][]byte // storedPath -> contenido
	removed []string
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{saved: make(map[string][]byte)}
}

func (s *fakeFileStore) Save(uploadID, _ string, content []byte) (string, string, error) {
	storedFilename := uploadID + ".pdf"
	storedPath := "/uploads/" + storedFilename
	s.saved[storedPath] = content
	return storedFilename, storedPath, nil
}

func (s *fakeFileStore) Open(storedPath string) ([]byte, error) {
	content, ok := s.saved[storedPath]
	if !ok {
		return nil, os.ErrNotExist
	}
	return content, nil
}

func (s *fakeFileStore) Remove(storedPath string) error {
	delete(s.saved, storedPath)
	s.removed = append(s.removed, storedPath)
	return nil
}

type fakeQueue struct {
	enqueued   []string
	enqueueErr error
}

func (q *fakeQueue) Enqueue(uploadID string) error {
	if q.enqueueErr != nil {
		return q.enqueueErr
	}
	q.enqueued = append(q.enqueued, uploadID)
	return nil
}

// ── Armado ───────────────────────────────────────────────────────────────────

type uploadFixture struct {
	uc    *usecase.UploadUseCase
	repo  *uploadRepoFake
	store *fakeFileStore
	queue *fakeQueue
}

func newUploadFixture() *uploadFixture {
	repo := newUploadRepoFake()
	store := newFakeFileStore()
	queue := &fakeQueue{}
	companies := &companyRepoFake{companies: map[int64]*entity.Company{
		1: {ID: 1, Name: "ACME SA"},
	}}
	uc := usecase.NewUploadUseCase(repo, companies, store, queue, testMaxUploadBytes, logger.Nop())
	return &uploadFixture{uc: uc, repo: repo, store: store, queue: queue}
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestUploadCreate_GuardaYEncola(t *testing.T) {
	f := newUploadFixture()

	out, err := f.uc.Create(1, "expense", "factura-luz.pdf", validPDF)

	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "expense", out.EntryType)
	assert.Equal(t, "factura-luz.pdf", out.OriginalFilename)
	assert.Equal(t, string(entity.ExtractionStatusPending), out.ExtractionStatus)

	// Persistido, almacenado y encolado con el mismo id.
	assert.Contains(t, f.repo.uploads, out.ID)
	assert.Equal(t, []string{out.ID}, f.queue.enqueued)
	assert.Len(t, f.store.saved, 1)
}

func TestUploadCreate_Validaciones(t *testing.T) {
	f := newUploadFixture()

	cases := []struct {
		name      string
		entryType string
		filename  string
		content   []byte
		field     string
	}{
		{"tipo de asiento inválido", "venta", "a.pdf", validPDF, "entryType"},
		{"sin nombre de archivo", "expense", "   ", validPDF, "file"},
		{"archivo vacío", "expense", "a.pdf", nil, "file"},
		{"archivo demasiado grande", "expense", "a.pdf", append([]byte("%PDF-"), make([]byte, testMaxUploadBytes)...), "file"},
		{"no es un PDF", "expense", "a.png", []byte("\x89PNG imagen"), "file"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Create(1, tc.entryType, tc.filename, tc.content)
			ve, ok := domain.AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tc.field, ve.Field)
		})
	}

	// Nada llegó al almacenamiento ni a la cola.
	assert.Empty(t, f.store.saved)
	assert.Empty(t, f.queue.enqueued)
}

func TestUploadCreate_EmpresaInexistente(t *testing.T) {
	f := newUploadFixture()

	_, err := f.uc.Create(99, "expense", "a.pdf", validPDF)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUploadCreate_LimpiaElArchivoSiElInsertFalla(t *testing.T) {
	f := newUploadFixture()
	f.repo.createErr = errors.New("db caída")

	_, err := f.uc.Create(1, "expense", "a.pdf", validPDF)

	require.Error(t, err)
	// El PDF huérfano se borra del almacenamiento.
	assert.Empty(t, f.store.saved)
	assert.Len(t, f.store.removed, 1)
}

func TestUploadCreate_ColaLlenaDejaElUploadParaCapturaManual(t *testing.T) {
	f := newUploadFixture()
	f.queue.enqueueErr = errors.New("cola llena")

	out, err := f.uc.Create(1, "expense", "a.pdf", validPDF)

	// El upload se crea igual: la revisión manual sigue disponible.
	require.NoError(t, err)
	assert.Equal(t, string(entity.ExtractionStatusFailed), out.ExtractionStatus)
	require.NotNil(t, out.ExtractionErrorCode)
	assert.Equal(t, entity.ExtractionErrProvider, *out.ExtractionErrorCode)
	assert.Equal(t, entity.ExtractionErrProvider, f.repo.failed[out.ID])
}

// ── Get y ListQueue ──────────────────────────────────────────────────────────

func TestUploadGet_ParticionadoPorEmpresa(t *testing.T) {
	f := newUploadFixture()
	created, err := f.uc.Create(1, "income", "a.pdf", validPDF)
	require.NoError(t, err)

	out, err := f.uc.Get(1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, out.ID)

	_, err = f.uc.Get(2, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUploadGetFile_DevuelveContenidoYNombreOriginal(t *testing.T) {
	f := newUploadFixture()
	created, err := f.uc.Create(1, "expense", "factura de luz.pdf", validPDF)
	require.NoError(t, err)

	content, originalFilename, err := f.uc.GetFile(1, created.ID)

	require.NoError(t, err)
	assert.Equal(t, validPDF, content)
	assert.Equal(t, "factura de luz.pdf", originalFilename)
}

func TestUploadGetFile_ParticionadoPorEmpresa(t *testing.T) {
	f := newUploadFixture()
	created, err := f.uc.Create(1, "expense", "a.pdf", validPDF)
	require.NoError(t, err)

	_, _, err = f.uc.GetFile(2, created.ID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUploadListQueue_FiltroInvalido(t *testing.T) {
	f := newUploadFixture()

	_, err := f.uc.ListQueue(1, "archivados")

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "status", ve.Field)
}

func TestUploadListQueue_VacioSinFiltro(t *testing.T) {
	f := newUploadFixture()

	out, err := f.uc.ListQueue(1, "")

	require.NoError(t, err)
	assert.Empty(t, out.Items)
}

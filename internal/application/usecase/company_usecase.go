package usecase

import (
	"strings"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/application/dto"
	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas.
type CompanyUseCase struct {
	repo       repository.CompanyRepository
	uploadRepo repository.InvoiceUploadRepository
	entryRepo  repository.AccountingEntryRepository
}

// NewCompanyUseCase construye el caso de uso con sus puertos de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, uploadRepo repository.InvoiceUploadRepository, entryRepo repository.AccountingEntryRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, uploadRepo: uploadRepo, entryRepo: entryRepo}
}

// Create crea una empresa. El nombre se recorta; la unicidad es insensible a
// mayúsculas. Devuelve domain.ErrDuplicate si el nombre normalizado ya existe.
func (uc *CompanyUseCase) Create(in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "el nombre es obligatorio")
	}
	if len(name) > entity.MaxCompanyNameLength {
		return nil, domain.NewValidationError("name", "el nombre no puede superar 100 caracteres")
	}
	now := time.Now()
	company := &entity.Company{
		Name:           name,
		NormalizedName: entity.NormalizeCompanyName(name),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(id int64) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return entityToCompanyResponse(company), nil
}

// List lista todas las empresas.
func (uc *CompanyUseCase) List() (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{Items: items}, nil
}

// Delete borra una empresa. Se bloquea con domain.ErrConflict mientras existan
// uploads o asientos que le pertenezcan: el libro es inmutable y no se borra en
// cascada.
func (uc *CompanyUseCase) Delete(id int64) error {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	uploads, err := uc.uploadRepo.CountByCompany(id)
	if err != nil {
		return err
	}
	if uploads > 0 {
		return domain.ErrConflict
	}
	entries, err := uc.entryRepo.CountByCompany(id)
	if err != nil {
		return err
	}
	if entries > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

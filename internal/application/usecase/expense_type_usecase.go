package usecase

import (
	"strings"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/application/dto"
	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

// ExpenseTypeUseCase aplica reglas de negocio para el catálogo de tipos de gasto.
type ExpenseTypeUseCase struct {
	repo      repository.ExpenseTypeRepository
	entryRepo repository.AccountingEntryRepository
	draftRepo repository.ReviewDraftRepository
}

// NewExpenseTypeUseCase construye el caso de uso con sus puertos de persistencia.
func NewExpenseTypeUseCase(repo repository.ExpenseTypeRepository, entryRepo repository.AccountingEntryRepository, draftRepo repository.ReviewDraftRepository) *ExpenseTypeUseCase {
	return &ExpenseTypeUseCase{repo: repo, entryRepo: entryRepo, draftRepo: draftRepo}
}

// Create crea un tipo de gasto al final del catálogo. Devuelve
// domain.ErrDuplicate si el texto normalizado ya existe.
func (uc *ExpenseTypeUseCase) Create(in dto.CreateExpenseTypeRequest) (*dto.ExpenseTypeResponse, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, domain.NewValidationError("text", "el texto es obligatorio")
	}
	if len(text) > entity.MaxExpenseTypeTextLength {
		return nil, domain.NewValidationError("text", "el texto no puede superar 100 caracteres")
	}
	if !entity.IsValidPLCategory(in.PLCategory) {
		return nil, domain.NewValidationError("plCategory", "categoría inválida: debe ser direct_cost, operating_expense, financial_other o tax")
	}
	now := time.Now()
	expenseType := &entity.ExpenseType{
		Text:           text,
		NormalizedText: entity.NormalizeExpenseTypeText(text),
		PLCategory:     entity.PLCategory(in.PLCategory),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(expenseType); err != nil {
		return nil, err
	}
	return entityToExpenseTypeResponse(expenseType), nil
}

// List devuelve el catálogo ordenado por sort_order ascendente.
func (uc *ExpenseTypeUseCase) List() (*dto.ExpenseTypeListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpenseTypeResponse, 0, len(list))
	for _, et := range list {
		items = append(items, *entityToExpenseTypeResponse(et))
	}
	return &dto.ExpenseTypeListResponse{Items: items}, nil
}

// Delete borra un tipo de gasto y resecuencia el resto a 1..N. Se bloquea con
// domain.ErrConflict mientras existan asientos o borradores que lo referencien:
// los asientos históricos conservan su snapshot de categoría, pero el tipo no
// puede desaparecer debajo de un borrador vivo.
func (uc *ExpenseTypeUseCase) Delete(id int64) error {
	expenseType, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if expenseType == nil {
		return domain.ErrExpenseTypeNotFound
	}
	entries, err := uc.entryRepo.CountByExpenseType(id)
	if err != nil {
		return err
	}
	if entries > 0 {
		return domain.ErrConflict
	}
	drafts, err := uc.draftRepo.CountByExpenseType(id)
	if err != nil {
		return err
	}
	if drafts > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

// Reorder reordena el catálogo completo. El pedido debe ser una permutación
// exacta de todos los ids actuales: ni faltantes, ni extras, ni repetidos.
func (uc *ExpenseTypeUseCase) Reorder(in dto.ReorderExpenseTypesRequest) (*dto.ExpenseTypeListResponse, error) {
	current, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	if len(in.OrderedExpenseTypeIDs) != len(current) {
		return nil, domain.NewValidationError("orderedExpenseTypeIds", "debe incluir exactamente todos los ids del catálogo")
	}
	existing := make(map[int64]struct{}, len(current))
	for _, et := range current {
		existing[et.ID] = struct{}{}
	}
	seen := make(map[int64]struct{}, len(in.OrderedExpenseTypeIDs))
	for _, id := range in.OrderedExpenseTypeIDs {
		if _, ok := existing[id]; !ok {
			return nil, domain.NewValidationError("orderedExpenseTypeIds", "contiene un id que no existe en el catálogo")
		}
		if _, dup := seen[id]; dup {
			return nil, domain.NewValidationError("orderedExpenseTypeIds", "contiene ids repetidos")
		}
		seen[id] = struct{}{}
	}
	if err := uc.repo.Resequence(in.OrderedExpenseTypeIDs); err != nil {
		return nil, err
	}
	return uc.List()
}

func entityToExpenseTypeResponse(et *entity.ExpenseType) *dto.ExpenseTypeResponse {
	if et == nil {
		return nil
	}
	return &dto.ExpenseTypeResponse{
		ID:         et.ID,
		Text:       et.Text,
		PLCategory: string(et.PLCategory),
		SortOrder:  et.SortOrder,
		CreatedAt:  et.CreatedAt,
		UpdatedAt:  et.UpdatedAt,
	}
}

package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contabilidad-api/internal/application/dto"
	"github.com/jhoicas/Contabilidad-api/internal/application/usecase"
)

// ExpenseTypeHandler maneja el catálogo de tipos de gasto.
type ExpenseTypeHandler struct {
	uc *usecase.ExpenseTypeUseCase
}

// NewExpenseTypeHandler construye el handler inyectando el caso de uso.
func NewExpenseTypeHandler(uc *usecase.ExpenseTypeUseCase) *ExpenseTypeHandler {
	return &ExpenseTypeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tipo de gasto
// @Tags         expense-types
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseTypeRequest  true  "Texto y categoría P&L"
// @Success      201   {object}  dto.ExpenseTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/expense-types [post]
func (h *ExpenseTypeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpenseTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar el catálogo de tipos de gasto
// @Tags         expense-types
// @Produce      json
// @Success      200  {object}  dto.ExpenseTypeListResponse
// @Router       /api/expense-types [get]
func (h *ExpenseTypeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar tipo de gasto
// @Description  Se bloquea con 409 mientras existan asientos o borradores que lo referencien. El resto del catálogo se resecuencia a 1..N.
// @Tags         expense-types
// @Produce      json
// @Param        id   path  int  true  "ID del tipo de gasto"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/expense-types/{id} [delete]
func (h *ExpenseTypeHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	if err := h.uc.Delete(id); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reorder godoc
// @Summary      Reordenar el catálogo completo
// @Description  El cuerpo debe ser una permutación exacta de todos los ids actuales.
// @Tags         expense-types
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReorderExpenseTypesRequest  true  "Nuevo orden"
// @Success      200   {object}  dto.ExpenseTypeListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expense-types/reorder [put]
func (h *ExpenseTypeHandler) Reorder(c *fiber.Ctx) error {
	var in dto.ReorderExpenseTypesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Reorder(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contabilidad-api/internal/application/dto"
	"github.com/jhoicas/Contabilidad-api/internal/application/review"
	"github.com/jhoicas/Contabilidad-api/internal/domain"
)

// ReviewHandler maneja el borrador editable de cada upload.
type ReviewHandler struct {
	uc *review.UseCase
}

// NewReviewHandler construye el handler inyectando el caso de uso.
func NewReviewHandler(uc *review.UseCase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener el borrador efectivo de un upload
// @Description  Si aún no hay borrador se devuelven los defaults (fecha de subida, contraparte "Pending extraction") sin persistirlos.
// @Tags         review
// @Produce      json
// @Param        X-Company-ID  header  int     true  "Empresa activa"
// @Param        id            path    string  true  "ID del upload"
// @Success      200  {object}  dto.UploadReviewResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/uploads/{id}/review [get]
func (h *ReviewHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Patch godoc
// @Summary      Aplicar un parche parcial al borrador
// @Description  Solo las claves presentes se sobreescriben; null explícito asigna NULL en los campos anulables. Claves desconocidas se rechazan. Un upload ya confirmado no se puede editar.
// @Tags         review
// @Accept       json
// @Produce      json
// @Param        X-Company-ID  header  int     true  "Empresa activa"
// @Param        id            path    string  true  "ID del upload"
// @Success      200  {object}  dto.UploadReviewResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/uploads/{id}/review [patch]
func (h *ReviewHandler) Patch(c *fiber.Ctx) error {
	patch, err := dto.ParseDraftPatch(c.Body())
	if err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.uc.Patch(GetCompanyID(c), c.Params("id"), patch)
	if err != nil {
		if errors.Is(err, domain.ErrExpenseTypeNotFound) {
			return respondExpenseTypeRejected(c)
		}
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contabilidad-api/internal/application/ledger"
	"github.com/jhoicas/Contabilidad-api/internal/application/usecase"
	"github.com/jhoicas/Contabilidad-api/internal/domain"
)

// EntryHandler maneja el libro de asientos: confirmación y listado.
type EntryHandler struct {
	commitUC *ledger.CommitEntryUseCase
	reportUC *usecase.ReportUseCase
}

// NewEntryHandler construye el handler inyectando los casos de uso.
func NewEntryHandler(commitUC *ledger.CommitEntryUseCase, reportUC *usecase.ReportUseCase) *EntryHandler {
	return &EntryHandler{commitUC: commitUC, reportUC: reportUC}
}

// Commit godoc
// @Summary      Confirmar el borrador de un upload como asiento
// @Description  Valida el borrador completo y lo inserta con el siguiente número de documento de su bucket (empresa, año, tipo). El asiento resultante es inmutable; repetir la operación devuelve 409 ALREADY_SAVED.
// @Tags         entries
// @Produce      json
// @Param        X-Company-ID  header  int     true  "Empresa activa"
// @Param        id            path    string  true  "ID del upload"
// @Success      201  {object}  dto.CommitEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/uploads/{id}/commit [post]
func (h *EntryHandler) Commit(c *fiber.Ctx) error {
	out, err := h.commitUC.Commit(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		// Un tipo de gasto inexistente en el borrador es un rechazo del cuerpo
		// de la petición, no un recurso ausente.
		if errors.Is(err, domain.ErrExpenseTypeNotFound) {
			return respondExpenseTypeRejected(c)
		}
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar el libro de asientos
// @Tags         entries
// @Produce      json
// @Param        X-Company-ID  header  int  true  "Empresa activa"
// @Success      200  {object}  dto.EntryListResponse
// @Router       /api/entries [get]
func (h *EntryHandler) List(c *fiber.Ctx) error {
	out, err := h.reportUC.ListEntries(GetCompanyID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ExportXLSX godoc
// @Summary      Exportar el libro completo como XLSX
// @Tags         entries
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        X-Company-ID  header  int  true  "Empresa activa"
// @Success      200  {file}  binary
// @Router       /api/entries/export.xlsx [get]
func (h *EntryHandler) ExportXLSX(c *fiber.Ctx) error {
	content, filename, err := h.reportUC.ExportEntriesXLSX(GetCompanyID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(content)
}

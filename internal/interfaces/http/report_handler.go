package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contabilidad-api/internal/application/dto"
	"github.com/jhoicas/Contabilidad-api/internal/application/usecase"
)

// ReportHandler maneja los reportes de solo lectura sobre el libro.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler inyectando el caso de uso.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// YearlyOverview godoc
// @Summary      Resumen por año del libro
// @Tags         reports
// @Produce      json
// @Param        X-Company-ID  header  int  true  "Empresa activa"
// @Success      200  {object}  dto.YearlyOverviewResponse
// @Router       /api/reports/years [get]
func (h *ReportHandler) YearlyOverview(c *fiber.Ctx) error {
	out, err := h.uc.YearlyOverview(GetCompanyID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// AnnualPL godoc
// @Summary      Estado de resultados anual con comparativo
// @Tags         reports
// @Produce      json
// @Param        X-Company-ID  header  int  true  "Empresa activa"
// @Param        year          query   int  true  "Año del reporte"
// @Success      200  {object}  dto.AnnualPLResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/annual-pl [get]
func (h *ReportHandler) AnnualPL(c *fiber.Ctx) error {
	year := c.QueryInt("year")
	if year == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "year es requerido", Field: "year"})
	}
	out, err := h.uc.AnnualPL(GetCompanyID(c), year)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// AnnualPLPDF godoc
// @Summary      Exportar el estado de resultados anual como PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        X-Company-ID  header  int  true  "Empresa activa"
// @Param        year          query   int  true  "Año del reporte"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/annual-pl/pdf [get]
func (h *ReportHandler) AnnualPLPDF(c *fiber.Ctx) error {
	year := c.QueryInt("year")
	if year == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "year es requerido", Field: "year"})
	}
	content, filename, err := h.uc.ExportAnnualPLPDF(GetCompanyID(c), year)
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(content)
}

package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contabilidad-api/internal/application/dto"
	"github.com/jhoicas/Contabilidad-api/internal/application/usecase"
)

// UploadHandler maneja la subida de facturas PDF y la cola de revisión.
type UploadHandler struct {
	uc *usecase.UploadUseCase
}

// NewUploadHandler construye el handler inyectando el caso de uso.
func NewUploadHandler(uc *usecase.UploadUseCase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// Create godoc
// @Summary      Subir factura PDF
// @Description  Multipart con el archivo en "file" y el tipo de asiento en "entryType" (income o expense). La extracción arranca en segundo plano.
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        X-Company-ID  header    int     true  "Empresa activa"
// @Param        file          formData  file    true  "PDF de la factura"
// @Param        entryType     formData  string  true  "income | expense"
// @Success      201  {object}  dto.UploadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/uploads [post]
func (h *UploadHandler) Create(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo requerido en el campo file", Field: "file"})
	}
	entryType := c.FormValue("entryType")

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer el archivo", Field: "file"})
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer el archivo", Field: "file"})
	}

	out, err := h.uc.Create(GetCompanyID(c), entryType, fileHeader.Filename, content)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListQueue godoc
// @Summary      Listar la cola de revisión
// @Tags         uploads
// @Produce      json
// @Param        X-Company-ID  header  int     true   "Empresa activa"
// @Param        status        query   string  false  "pending_review | saved | all"  default(all)
// @Success      200  {object}  dto.UploadQueueResponse
// @Router       /api/uploads [get]
func (h *UploadHandler) ListQueue(c *fiber.Ctx) error {
	out, err := h.uc.ListQueue(GetCompanyID(c), c.Query("status"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener un upload
// @Tags         uploads
// @Produce      json
// @Param        X-Company-ID  header  int     true  "Empresa activa"
// @Param        id            path    string  true  "ID del upload"
// @Success      200  {object}  dto.UploadResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/uploads/{id} [get]
func (h *UploadHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// File godoc
// @Summary      Descargar el PDF original de un upload
// @Tags         uploads
// @Produce      application/pdf
// @Param        X-Company-ID  header  int     true  "Empresa activa"
// @Param        id            path    string  true  "ID del upload"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/uploads/{id}/file [get]
func (h *UploadHandler) File(c *fiber.Ctx) error {
	content, originalFilename, err := h.uc.GetFile(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+originalFilename+`"`)
	return c.Send(content)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/slms-api/internal/application/dto"
	"github.com/jhoicas/slms-api/internal/application/usecase"
)

// LicenseHandler maneja las peticiones HTTP del catálogo de licencias (protegido).
type LicenseHandler struct {
	uc *usecase.LicenseUseCase
}

// NewLicenseHandler construye el handler.
func NewLicenseHandler(uc *usecase.LicenseUseCase) *LicenseHandler {
	return &LicenseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear licencia
// @Tags         licenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLicenseRequest  true  "Datos de la licencia"
// @Success      201   {object}  dto.LicenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/licenses [post]
func (h *LicenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLicenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Create(GetRole(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener licencia por ID
// @Tags         licenses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la licencia"
// @Success      200  {object}  dto.LicenseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/licenses/{id} [get]
func (h *LicenseHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "licencia no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar licencias
// @Tags         licenses
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.LicenseListResponse
// @Router       /api/licenses [get]
func (h *LicenseHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	out, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar licencia
// @Tags         licenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la licencia"
// @Param        body  body  dto.UpdateLicenseRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.LicenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/licenses/{id} [put]
func (h *LicenseHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateLicenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetRole(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "licencia no encontrada"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar licencia
// @Tags         licenses
// @Security     Bearer
// @Param        id  path  string  true  "ID de la licencia"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/licenses/{id} [delete]
func (h *LicenseHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(GetRole(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Renew godoc
// @Summary      Renovar licencia (+1 año)
// @Description  Extiende el vencimiento un año y limpia la alerta de vencimiento.
// @Tags         licenses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la licencia"
// @Success      200  {object}  dto.LicenseResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/licenses/{id}/renew [post]
func (h *LicenseHandler) Renew(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.Renew(GetRole(c), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "licencia no encontrada"})
	}
	return c.JSON(out)
}

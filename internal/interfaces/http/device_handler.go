package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/slms-api/internal/application/dto"
	"github.com/jhoicas/slms-api/internal/application/usecase"
)

// DeviceHandler maneja las peticiones HTTP de dispositivos e instalaciones.
type DeviceHandler struct {
	uc *usecase.DeviceUseCase
}

// NewDeviceHandler construye el handler.
func NewDeviceHandler(uc *usecase.DeviceUseCase) *DeviceHandler {
	return &DeviceHandler{uc: uc}
}

// Onboard godoc
// @Summary      Dar de alta un dispositivo
// @Tags         devices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OnboardDeviceRequest  true  "Datos del dispositivo"
// @Success      201   {object}  dto.DeviceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/devices [post]
func (h *DeviceHandler) Onboard(c *fiber.Ctx) error {
	var in dto.OnboardDeviceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Onboard(GetRole(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener dispositivo por ID (con su software instalado)
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del dispositivo"
// @Success      200  {object}  dto.DeviceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/devices/{id} [get]
func (h *DeviceHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "dispositivo no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar dispositivos
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.DeviceListResponse
// @Router       /api/devices [get]
func (h *DeviceHandler) List(c *fiber.Ctx) error {
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
// @Summary      Actualizar dispositivo
// @Tags         devices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del dispositivo"
// @Param        body  body  dto.UpdateDeviceRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.DeviceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/devices/{id} [put]
func (h *DeviceHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateDeviceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetRole(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "dispositivo no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar dispositivo
// @Tags         devices
// @Security     Bearer
// @Param        id  path  string  true  "ID del dispositivo"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/devices/{id} [delete]
func (h *DeviceHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(GetRole(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Install godoc
// @Summary      Instalar una licencia en un dispositivo
// @Description  Mueve el conteo assignedLicenses de la licencia (derivado por consulta).
// @Tags         devices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InstallSoftwareRequest  true  "Instalación"
// @Success      201   {object}  dto.InstallationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/devices/installations [post]
func (h *DeviceHandler) Install(c *fiber.Ctx) error {
	var in dto.InstallSoftwareRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Install(GetRole(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Uninstall godoc
// @Summary      Desinstalar (eliminar una instalación)
// @Tags         devices
// @Security     Bearer
// @Param        id  path  string  true  "ID de la instalación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/devices/installations/{id} [delete]
func (h *DeviceHandler) Uninstall(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Uninstall(GetRole(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

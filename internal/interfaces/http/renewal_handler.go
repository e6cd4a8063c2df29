package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/slms-api/internal/application/dto"
	"github.com/jhoicas/slms-api/internal/application/renewal"
)

// RenewalHandler maneja las peticiones del flujo de renovación.
type RenewalHandler struct {
	uc *renewal.UseCase
}

// NewRenewalHandler construye el handler.
func NewRenewalHandler(uc *renewal.UseCase) *RenewalHandler {
	return &RenewalHandler{uc: uc}
}

// Create godoc
// @Summary      Solicitar renovación
// @Description  Crea una tarea Pending desde una alerta de vencimiento. Si la licencia ya tiene una tarea activa responde 409.
// @Tags         renewals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRenewalRequest  true  "Licencia a renovar"
// @Success      201   {object}  dto.RenewalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/renewals [post]
func (h *RenewalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRenewalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Create(c.UserContext(), GetRole(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar tareas de renovación
// @Tags         renewals
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RenewalListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/renewals [get]
func (h *RenewalHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Transicionar una tarea de renovación
// @Description  Solo Finanzas aprueba/rechaza. Aprobar extiende la licencia un año y limpia su alerta de vencimiento. Las tareas terminales son inmutables (409).
// @Tags         renewals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la tarea"
// @Param        body  body  dto.UpdateRenewalStatusRequest  true  "Estado destino"
// @Success      200   {object}  dto.RenewalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/renewals/{id}/status [put]
func (h *RenewalHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateRenewalStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), GetRole(c), id, in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar una tarea de renovación
// @Tags         renewals
// @Security     Bearer
// @Param        id  path  string  true  "ID de la tarea"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/renewals/{id} [delete]
func (h *RenewalHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(c.UserContext(), GetRole(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// StatusForLicense godoc
// @Summary      Estado derivado de renovación de una licencia
// @Description  PENDING si hay tarea activa, REJECTED si todas fueron rechazadas, NONE si no hay historial relevante.
// @Tags         renewals
// @Security     Bearer
// @Produce      json
// @Param        licenseId  path  string  true  "ID de la licencia"
// @Success      200  {object}  dto.RenewalStatusResponse
// @Router       /api/renewals/license/{licenseId}/status [get]
func (h *RenewalHandler) StatusForLicense(c *fiber.Ctx) error {
	licenseID := c.Params("licenseId")
	if licenseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "licenseId es requerido"})
	}
	status, err := h.uc.StatusFor(licenseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.RenewalStatusResponse{LicenseID: licenseID, Status: string(status)})
}

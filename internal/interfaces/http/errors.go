package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/slms-api/internal/application/dto"
	"github.com/jhoicas/slms-api/internal/domain"
)

// writeError mapea los errores de dominio a respuestas HTTP.
// El conflicto de renovación activa sale como 409 con código propio para que
// el cliente lo distinga de una validación cualquiera.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrRenewalPending):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RENEWAL_PENDING", Message: err.Error()})
	case errors.Is(err, domain.ErrRenewalTerminal):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RENEWAL_TERMINAL", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrNotExpiryAlert), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

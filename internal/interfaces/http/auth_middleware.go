package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/slms-api/internal/application/dto"
	"github.com/jhoicas/slms-api/internal/domain/authz"
	"github.com/jhoicas/slms-api/pkg/jwt"
)

// Locals key para el rol de la sesión en Fiber.
const LocalRole = "role"

// AuthMiddleware valida el Bearer Token JWT y extrae el rol a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		roleClaim, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		role, err := authz.ParseRole(roleClaim)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "rol desconocido en el token"})
		}
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) authz.Role {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	r, _ := v.(authz.Role)
	return r
}

// RequireAction corta la ruta con 403 si el rol de la sesión no tiene la
// capacidad. Guard grueso a nivel de ruta; los casos de uso vuelven a
// verificar la matriz.
func RequireAction(action authz.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if !authz.CanPerform(role, action) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol " + string(role) + " no puede ejecutar " + string(action),
			})
		}
		return c.Next()
	}
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/slms-api/internal/application/dto"
	"github.com/jhoicas/slms-api/internal/domain/authz"
	"github.com/jhoicas/slms-api/pkg/jwt"
)

// AuthHandler emite tokens de sesión. No hay cuentas: el login es un stub de
// selección de rol y toda la autorización posterior sale de la matriz RBAC.
type AuthHandler struct {
	jwtSecret  string
	jwtIssuer  string
	jwtMinutes int
}

// NewAuthHandler construye el handler.
func NewAuthHandler(secret, issuer string, expMinutes int) *AuthHandler {
	return &AuthHandler{jwtSecret: secret, jwtIssuer: issuer, jwtMinutes: expMinutes}
}

// Login godoc
// @Summary      Iniciar sesión con un rol
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Rol elegido"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "role es requerido"})
	}
	role, err := authz.ParseRole(in.Role)
	if err != nil {
		return writeError(c, err)
	}
	token, err := jwt.Generate(h.jwtSecret, string(role), h.jwtIssuer, h.jwtMinutes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.LoginResponse{Token: token, Role: string(role)})
}

// Roles godoc
// @Summary      Roles disponibles
// @Tags         auth
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/auth/roles [get]
func (h *AuthHandler) Roles(c *fiber.Ctx) error {
	roles := authz.Roles()
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return c.JSON(out)
}

package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/slms-api/internal/domain/authz"
	apphttp "github.com/jhoicas/slms-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/slms-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "slms-api-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar el rol
//   - RequireAction para aplicar la matriz de capacidades
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(action authz.Action) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireAction(action),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireAction
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: El rol tiene la capacidad requerida → debe pasar (HTTP 200).
func TestRequireAction_FinanzasApruebaRenovaciones(t *testing.T) {
	app := buildTestApp(authz.ActionApproveRenewal)
	resp := doRequest(t, app, tokenForRole(t, "Finance"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"Finance debe pasar el guard de approve-renewal")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"], "la respuesta debe incluir ok:true")
	assert.Equal(t, "Finance", body["role"], "el rol debe llegar del claim")
}

// Caso 2: El rol no tiene la capacidad → HTTP 403 Forbidden.
func TestRequireAction_AdminNoApruebaRenovaciones(t *testing.T) {
	app := buildTestApp(authz.ActionApproveRenewal)
	resp := doRequest(t, app, tokenForRole(t, "Admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"aprobar renovaciones es exclusivo de Finance")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
}

func TestRequireAction_ViewerBloqueadoEnMutaciones(t *testing.T) {
	for _, action := range []authz.Action{
		authz.ActionRequestRenewal,
		authz.ActionDeleteRenewal,
		authz.ActionEditInventory,
		authz.ActionExportAudit,
	} {
		app := buildTestApp(action)
		resp := doRequest(t, app, tokenForRole(t, "Viewer"))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode,
			"Viewer no debe pasar el guard de %s", action)
		resp.Body.Close()
	}
}

func TestRequireAction_TodosVenRenovaciones(t *testing.T) {
	for _, rol := range []string{"Admin", "Finance", "Auditor", "Viewer"} {
		app := buildTestApp(authz.ActionViewRenewals)
		resp := doRequest(t, app, tokenForRole(t, rol))
		assert.Equal(t, http.StatusOK, resp.StatusCode,
			"el rol %s debe poder ver renovaciones", rol)
		resp.Body.Close()
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — validación del token
// ──────────────────────────────────────────────────────────────────────────────

// Sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(authz.ActionViewRenewals)
	resp := doRequest(t, app, "") // sin header
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Token inválido / malformado → HTTP 401 INVALID_TOKEN.
func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(authz.ActionViewRenewals)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Token bien firmado pero con un rol fuera del enum → HTTP 401.
func TestAuthMiddleware_RolDesconocido_Retorna401(t *testing.T) {
	app := buildTestApp(authz.ActionViewRenewals)
	resp := doRequest(t, app, tokenForRole(t, "SuperUser"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"un rol que no está en la matriz no debe crear sesión")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse con role
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, "Auditor", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "Auditor", role)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, "Admin", testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, "Admin", testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err, "firma con otro secret debe rechazarse")
}

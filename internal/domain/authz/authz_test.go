package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/slms-api/internal/domain"
	"github.com/jhoicas/slms-api/internal/domain/authz"
)

// La matriz completa rol→capacidad, caso por caso.
func TestCanPerform_MatrizDeCapacidades(t *testing.T) {
	casos := []struct {
		rol       authz.Role
		accion    authz.Action
		permitido bool
	}{
		// Aprobar/rechazar es exclusivo de Finanzas
		{authz.RoleFinance, authz.ActionApproveRenewal, true},
		{authz.RoleFinance, authz.ActionRejectRenewal, true},
		{authz.RoleAdmin, authz.ActionApproveRenewal, false},
		{authz.RoleAuditor, authz.ActionApproveRenewal, false},
		{authz.RoleViewer, authz.ActionApproveRenewal, false},

		// Solicitar renovación: todos menos Viewer
		{authz.RoleAdmin, authz.ActionRequestRenewal, true},
		{authz.RoleFinance, authz.ActionRequestRenewal, true},
		{authz.RoleAuditor, authz.ActionRequestRenewal, true},
		{authz.RoleViewer, authz.ActionRequestRenewal, false},

		// Eliminar tareas: todos menos Viewer
		{authz.RoleAdmin, authz.ActionDeleteRenewal, true},
		{authz.RoleViewer, authz.ActionDeleteRenewal, false},

		// Ver renovaciones: todos los roles
		{authz.RoleAdmin, authz.ActionViewRenewals, true},
		{authz.RoleFinance, authz.ActionViewRenewals, true},
		{authz.RoleAuditor, authz.ActionViewRenewals, true},
		{authz.RoleViewer, authz.ActionViewRenewals, true},

		// Auditoría: solo Admin y Auditor
		{authz.RoleAdmin, authz.ActionExportAudit, true},
		{authz.RoleAuditor, authz.ActionExportAudit, true},
		{authz.RoleFinance, authz.ActionExportAudit, false},
		{authz.RoleViewer, authz.ActionExportAudit, false},

		// Inventario: solo Admin
		{authz.RoleAdmin, authz.ActionEditInventory, true},
		{authz.RoleFinance, authz.ActionEditInventory, false},
		{authz.RoleAuditor, authz.ActionEditInventory, false},
		{authz.RoleViewer, authz.ActionEditInventory, false},
	}
	for _, c := range casos {
		assert.Equal(t, c.permitido, authz.CanPerform(c.rol, c.accion),
			"rol %s, acción %s", c.rol, c.accion)
	}
}

func TestCanPerform_RolDesconocidoNoPuedeNada(t *testing.T) {
	assert.False(t, authz.CanPerform("SuperUser", authz.ActionViewRenewals),
		"un rol fuera de la matriz no tiene ninguna capacidad")
	assert.False(t, authz.CanPerform("", authz.ActionViewAlerts))
}

func TestAuthorize_DenegadoEnvuelveErrForbidden(t *testing.T) {
	err := authz.Authorize(authz.RoleViewer, authz.ActionApproveRenewal)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.NoError(t, authz.Authorize(authz.RoleFinance, authz.ActionApproveRenewal))
}

func TestParseRole_SoloAceptaRolesConocidos(t *testing.T) {
	r, err := authz.ParseRole("Finance")
	require.NoError(t, err)
	assert.Equal(t, authz.RoleFinance, r)

	_, err = authz.ParseRole("finance")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "los roles distinguen mayúsculas")

	_, err = authz.ParseRole("Root")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Package authz implementa la matriz rol→capacidades del sistema.
// Es configuración estática: se consulta tanto al montar rutas (guard grueso)
// como al ejecutar cada operación (defensa en profundidad).
package authz

import (
	"fmt"

	"github.com/jhoicas/slms-api/internal/domain"
)

// Role rol del usuario. Selector puro de capacidades, sin ciclo de vida.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleFinance Role = "Finance"
	RoleAuditor Role = "Auditor"
	RoleViewer  Role = "Viewer"
)

// ParseRole valida el token de rol recibido (ej. del claim JWT).
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleFinance, RoleAuditor, RoleViewer:
		return Role(s), nil
	}
	return "", fmt.Errorf("rol desconocido %q: %w", s, domain.ErrInvalidInput)
}

// Action capacidad concreta que un rol puede o no ejercer.
type Action string

const (
	ActionViewAlerts     Action = "view-alerts"
	ActionViewRenewals   Action = "view-renewals"
	ActionRequestRenewal Action = "request-renewal"
	ActionApproveRenewal Action = "approve-renewal"
	ActionRejectRenewal  Action = "reject-renewal"
	ActionDeleteRenewal  Action = "delete-renewal"
	ActionExportAudit    Action = "export-audit"
	ActionEditInventory  Action = "edit-inventory"
)

// capabilities matriz estática rol→acciones. Finance es el único dueño de
// aprobar/rechazar; Viewer solo pasa acciones de lectura.
var capabilities = map[Role]map[Action]bool{
	RoleAdmin: {
		ActionViewAlerts:     true,
		ActionViewRenewals:   true,
		ActionRequestRenewal: true,
		ActionDeleteRenewal:  true,
		ActionExportAudit:    true,
		ActionEditInventory:  true,
	},
	RoleFinance: {
		ActionViewRenewals:   true,
		ActionRequestRenewal: true,
		ActionApproveRenewal: true,
		ActionRejectRenewal:  true,
		ActionDeleteRenewal:  true,
	},
	RoleAuditor: {
		ActionViewAlerts:     true,
		ActionViewRenewals:   true,
		ActionRequestRenewal: true,
		ActionDeleteRenewal:  true,
		ActionExportAudit:    true,
	},
	RoleViewer: {
		ActionViewAlerts:   true,
		ActionViewRenewals: true,
	},
}

// CanPerform consulta la matriz sin producir error (para ocultar controles).
func CanPerform(role Role, action Action) bool {
	return capabilities[role][action]
}

// Authorize rechaza con ErrForbidden si el rol no tiene la capacidad.
// Punto único de autorización para los casos de uso.
func Authorize(role Role, action Action) error {
	if !CanPerform(role, action) {
		return fmt.Errorf("rol %s no puede ejecutar %s: %w", role, action, domain.ErrForbidden)
	}
	return nil
}

// Roles devuelve los roles conocidos (para el stub de login).
func Roles() []Role {
	return []Role{RoleAdmin, RoleFinance, RoleAuditor, RoleViewer}
}

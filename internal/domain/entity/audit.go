package entity

import "time"

// AuditLog registro de auditoría de operaciones mutantes (inventario, renovaciones).
type AuditLog struct {
	ID          string
	Action      string // ej. "renewal.create", "license.renew"
	EntityType  string
	EntityID    string
	PerformedBy string // rol que ejecutó la acción
	Details     string
	CreatedAt   time.Time
}

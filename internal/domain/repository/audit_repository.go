package repository

import "github.com/jhoicas/slms-api/internal/domain/entity"

// AuditRepository define el puerto de persistencia para el log de auditoría.
type AuditRepository interface {
	Create(log *entity.AuditLog) error
	List(limit, offset int) ([]*entity.AuditLog, error)
}

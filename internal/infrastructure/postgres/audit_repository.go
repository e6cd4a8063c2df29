package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/slms-api/internal/domain/entity"
	"github.com/jhoicas/slms-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación del puerto AuditRepository sobre PostgreSQL.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create persiste una entrada de auditoría.
func (r *AuditRepo) Create(log *entity.AuditLog) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO audit_logs (id, action, entity_type, entity_id, performed_by, details, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		log.ID, log.Action, log.EntityType, log.EntityID, log.PerformedBy, log.Details, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List devuelve las entradas más recientes, paginadas.
func (r *AuditRepo) List(limit, offset int) ([]*entity.AuditLog, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, action, entity_type, entity_id, performed_by, details, created_at
		 FROM audit_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		if err := rows.Scan(&l.ID, &l.Action, &l.EntityType, &l.EntityID, &l.PerformedBy, &l.Details, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Package audit registra y consulta el log de auditoría.
package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/slms-api/internal/application/dto"
	"github.com/jhoicas/slms-api/internal/domain/entity"
	"github.com/jhoicas/slms-api/internal/domain/repository"
	"github.com/jhoicas/slms-api/pkg/logger"
)

// Recorder registra entradas de auditoría. Es best-effort: una falla de
// auditoría se loguea pero nunca hace fallar la operación de negocio.
type Recorder struct {
	repo repository.AuditRepository
	log  *logger.Logger
}

// NewRecorder construye el recorder.
func NewRecorder(repo repository.AuditRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Record persiste una entrada de auditoría.
func (r *Recorder) Record(action, entityType, entityID, performedBy, details string) {
	if r == nil || r.repo == nil {
		return
	}
	err := r.repo.Create(&entity.AuditLog{
		ID:          uuid.New().String(),
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		PerformedBy: performedBy,
		Details:     details,
		CreatedAt:   time.Now(),
	})
	if err != nil && r.log != nil {
		r.log.Warn().Err(err).Str("action", action).Msg("no se pudo registrar auditoría")
	}
}

// List devuelve las entradas más recientes, paginadas.
func (r *Recorder) List(limit, offset int) (*dto.AuditLogListResponse, error) {
	logs, err := r.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, dto.AuditLogResponse{
			LogID:       l.ID,
			Action:      l.Action,
			EntityType:  l.EntityType,
			EntityID:    l.EntityID,
			PerformedBy: l.PerformedBy,
			Details:     l.Details,
			CreatedAt:   l.CreatedAt,
		})
	}
	return &dto.AuditLogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

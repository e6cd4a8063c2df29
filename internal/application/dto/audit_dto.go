package dto

import "time"

// AuditLogResponse entrada del log de auditoría.
type AuditLogResponse struct {
	LogID       string    `json:"logId"`
	Action      string    `json:"action"`
	EntityType  string    `json:"entityType"`
	EntityID    string    `json:"entityId"`
	PerformedBy string    `json:"performedBy"`
	Details     string    `json:"details,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AuditLogListResponse listado paginado de auditoría.
type AuditLogListResponse struct {
	Items []AuditLogResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

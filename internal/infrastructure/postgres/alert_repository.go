package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/slms-api/internal/domain"
	"github.com/jhoicas/slms-api/internal/domain/entity"
	"github.com/jhoicas/slms-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación del puerto AlertRepository sobre PostgreSQL.
// El índice único (license_id, type) respalda la deduplicación del motor.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

const alertSelect = `SELECT id, license_id, type, severity, details, detected_at FROM alert_events`

// List devuelve todas las alertas activas, más severas primero.
func (r *AlertRepo) List() ([]*entity.AlertEvent, error) {
	rows, err := r.q.Query(context.Background(), alertSelect+` ORDER BY severity DESC, detected_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return scanAlerts(rows)
}

// ListByLicense devuelve las alertas activas de una licencia.
func (r *AlertRepo) ListByLicense(licenseID string) ([]*entity.AlertEvent, error) {
	rows, err := r.q.Query(context.Background(), alertSelect+` WHERE license_id = $1`, licenseID)
	if err != nil {
		return nil, fmt.Errorf("list alerts by license: %w", err)
	}
	return scanAlerts(rows)
}

// Create persiste un alerta nuevo.
func (r *AlertRepo) Create(alert *entity.AlertEvent) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO alert_events (id, license_id, type, severity, details, detected_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		alert.ID, alert.LicenseID, int(alert.Type), int(alert.Severity), alert.Details, alert.DetectedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// Delete elimina un alerta por ID (condición resuelta).
func (r *AlertRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM alert_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete alert: %w", err)
	}
	return nil
}

// DeleteByLicenseAndType limpia un alerta puntual (ej. Expiry tras renovar).
func (r *AlertRepo) DeleteByLicenseAndType(licenseID string, t entity.AlertType) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM alert_events WHERE license_id = $1 AND type = $2`, licenseID, int(t))
	if err != nil {
		return fmt.Errorf("delete alert by type: %w", err)
	}
	return nil
}

// DeleteByLicense limpia todas las alertas de una licencia.
func (r *AlertRepo) DeleteByLicense(licenseID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM alert_events WHERE license_id = $1`, licenseID)
	if err != nil {
		return fmt.Errorf("delete alerts by license: %w", err)
	}
	return nil
}

func scanAlerts(rows pgx.Rows) ([]*entity.AlertEvent, error) {
	defer rows.Close()
	var list []*entity.AlertEvent
	for rows.Next() {
		var a entity.AlertEvent
		var alertType, severity int
		if err := rows.Scan(&a.ID, &a.LicenseID, &alertType, &severity, &a.Details, &a.DetectedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		a.Type = entity.AlertType(alertType)
		a.Severity = entity.Severity(severity)
		list = append(list, &a)
	}
	return list, rows.Err()
}

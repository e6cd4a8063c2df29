package repository

import "github.com/jhoicas/slms-api/internal/domain/entity"

// AlertRepository define el puerto de persistencia para AlertEvent.
// Las alertas son inmutables: se crean cuando la condición aparece y se
// borran cuando se resuelve; la deduplicación es por (licenseId, type).
type AlertRepository interface {
	List() ([]*entity.AlertEvent, error)
	ListByLicense(licenseID string) ([]*entity.AlertEvent, error)
	Create(alert *entity.AlertEvent) error
	Delete(id string) error
	DeleteByLicenseAndType(licenseID string, t entity.AlertType) error
	DeleteByLicense(licenseID string) error
}

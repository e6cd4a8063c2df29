package repository

import (
	"time"

	"github.com/jhoicas/slms-api/internal/domain/entity"
)

// LicenseRepository define el puerto de persistencia para License (DIP).
// AssignedLicenses se calcula en la consulta (conteo de instalaciones);
// ningún método lo muta directamente.
type LicenseRepository interface {
	Create(license *entity.License) error
	GetByID(id string) (*entity.License, error)
	List(limit, offset int) ([]*entity.License, error)
	ListAll() ([]*entity.License, error)
	Update(license *entity.License) error
	UpdateExpiry(id string, expiry time.Time) error
	Delete(id string) error
}

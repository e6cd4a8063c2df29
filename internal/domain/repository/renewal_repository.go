package repository

import "github.com/jhoicas/slms-api/internal/domain/entity"

// RenewalRepository define el puerto de persistencia para RenewalTask.
// La base de datos es la autoridad del invariante "a lo sumo una tarea
// activa por licencia" (índice único parcial); el adaptador debe traducir
// esa violación a domain.ErrRenewalPending.
type RenewalRepository interface {
	Create(task *entity.RenewalTask) error
	GetByID(id string) (*entity.RenewalTask, error)
	List() ([]*entity.RenewalTask, error)
	ListByLicense(licenseID string) ([]*entity.RenewalTask, error)
	GetActiveByLicense(licenseID string) (*entity.RenewalTask, error)
	UpdateStatus(id string, status entity.RenewalStatus) error
	Delete(id string) error
}

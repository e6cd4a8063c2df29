package repository

import "github.com/jhoicas/slms-api/internal/domain/entity"

// DeviceRepository define el puerto de persistencia para Device.
type DeviceRepository interface {
	Create(device *entity.Device) error
	GetByID(id string) (*entity.Device, error)
	List(limit, offset int) ([]*entity.Device, error)
	Count() (int, error)
	Update(device *entity.Device) error
	Delete(id string) error
}

// InstallationRepository define el puerto para instalaciones de software.
// El conteo por licencia alimenta License.AssignedLicenses.
type InstallationRepository interface {
	Create(inst *entity.Installation) error
	GetByID(id string) (*entity.Installation, error)
	ListByDevice(deviceID string) ([]*entity.Installation, error)
	CountByLicense(licenseID string) (int, error)
	Delete(id string) error
}

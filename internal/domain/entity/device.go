package entity

import "time"

// Device representa un equipo inventariado donde se instala software.
type Device struct {
	ID          string
	Hostname    string
	OwnerUserID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Installation vincula una licencia con un dispositivo.
// El conteo de instalaciones por licencia alimenta License.AssignedLicenses.
type Installation struct {
	ID          string
	DeviceID    string
	LicenseID   string
	InstalledAt time.Time
}

package dto

import "time"

// OnboardDeviceRequest alta de un dispositivo.
type OnboardDeviceRequest struct {
	Hostname    string `json:"hostname" validate:"required"`
	OwnerUserID string `json:"ownerUserId" validate:"required"`
}

// UpdateDeviceRequest edición parcial de un dispositivo.
type UpdateDeviceRequest struct {
	Hostname    *string `json:"hostname,omitempty"`
	OwnerUserID *string `json:"ownerUserId,omitempty"`
}

// InstallSoftwareRequest instala una licencia en un dispositivo.
type InstallSoftwareRequest struct {
	DeviceID  string `json:"deviceId" validate:"required"`
	LicenseID string `json:"licenseId" validate:"required"`
}

// InstallationResponse instalación registrada.
type InstallationResponse struct {
	InstallationID string    `json:"installationId"`
	DeviceID       string    `json:"deviceId"`
	LicenseID      string    `json:"licenseId"`
	InstalledAt    time.Time `json:"installedAt"`
}

// DeviceResponse dispositivo con su software instalado.
type DeviceResponse struct {
	DeviceID          string                 `json:"deviceId"`
	Hostname          string                 `json:"hostname"`
	OwnerUserID       string                 `json:"ownerUserId"`
	InstalledSoftware []InstallationResponse `json:"installedSoftware,omitempty"`
}

// DeviceListResponse listado paginado.
type DeviceListResponse struct {
	Items []DeviceResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

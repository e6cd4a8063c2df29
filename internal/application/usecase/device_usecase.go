package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/slms-api/internal/application/audit"
	"github.com/jhoicas/slms-api/internal/application/dto"
	"github.com/jhoicas/slms-api/internal/domain"
	"github.com/jhoicas/slms-api/internal/domain/authz"
	"github.com/jhoicas/slms-api/internal/domain/entity"
	"github.com/jhoicas/slms-api/internal/domain/repository"
)

// DeviceUseCase CRUD de dispositivos e instalaciones de software.
// Instalar/desinstalar es lo que mueve el conteo assignedLicenses de la
// licencia (derivado en la consulta, nunca editado a mano).
type DeviceUseCase struct {
	deviceRepo  repository.DeviceRepository
	instRepo    repository.InstallationRepository
	licenseRepo repository.LicenseRepository
	audit       *audit.Recorder
}

// NewDeviceUseCase construye el caso de uso.
func NewDeviceUseCase(
	deviceRepo repository.DeviceRepository,
	instRepo repository.InstallationRepository,
	licenseRepo repository.LicenseRepository,
	rec *audit.Recorder,
) *DeviceUseCase {
	return &DeviceUseCase{deviceRepo: deviceRepo, instRepo: instRepo, licenseRepo: licenseRepo, audit: rec}
}

// Onboard da de alta un dispositivo.
func (uc *DeviceUseCase) Onboard(role authz.Role, in dto.OnboardDeviceRequest) (*dto.DeviceResponse, error) {
	if err := authz.Authorize(role, authz.ActionEditInventory); err != nil {
		return nil, err
	}
	now := time.Now()
	device := &entity.Device{
		ID:          uuid.New().String(),
		Hostname:    in.Hostname,
		OwnerUserID: in.OwnerUserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.deviceRepo.Create(device); err != nil {
		return nil, err
	}
	uc.audit.Record("device.onboard", "Device", device.ID, string(role), device.Hostname)
	return uc.toDeviceResponse(device, nil), nil
}

// GetByID obtiene un dispositivo con su software instalado.
func (uc *DeviceUseCase) GetByID(id string) (*dto.DeviceResponse, error) {
	device, err := uc.deviceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, nil
	}
	installs, err := uc.instRepo.ListByDevice(id)
	if err != nil {
		return nil, err
	}
	return uc.toDeviceResponse(device, installs), nil
}

// List lista dispositivos con paginación (incluye instalaciones por equipo).
func (uc *DeviceUseCase) List(limit, offset int) (*dto.DeviceListResponse, error) {
	devices, err := uc.deviceRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeviceResponse, 0, len(devices))
	for _, d := range devices {
		installs, err := uc.instRepo.ListByDevice(d.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *uc.toDeviceResponse(d, installs))
	}
	return &dto.DeviceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update edita un dispositivo.
func (uc *DeviceUseCase) Update(role authz.Role, id string, in dto.UpdateDeviceRequest) (*dto.DeviceResponse, error) {
	if err := authz.Authorize(role, authz.ActionEditInventory); err != nil {
		return nil, err
	}
	device, err := uc.deviceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, nil
	}
	if in.Hostname != nil {
		device.Hostname = *in.Hostname
	}
	if in.OwnerUserID != nil {
		device.OwnerUserID = *in.OwnerUserID
	}
	device.UpdatedAt = time.Now()
	if err := uc.deviceRepo.Update(device); err != nil {
		return nil, err
	}
	uc.audit.Record("device.update", "Device", device.ID, string(role), device.Hostname)
	return uc.toDeviceResponse(device, nil), nil
}

// Delete elimina un dispositivo (las instalaciones caen en cascada en la DB).
func (uc *DeviceUseCase) Delete(role authz.Role, id string) error {
	if err := authz.Authorize(role, authz.ActionEditInventory); err != nil {
		return err
	}
	if err := uc.deviceRepo.Delete(id); err != nil {
		return err
	}
	uc.audit.Record("device.delete", "Device", id, string(role), "")
	return nil
}

// Install registra una instalación de licencia en un dispositivo.
func (uc *DeviceUseCase) Install(role authz.Role, in dto.InstallSoftwareRequest) (*dto.InstallationResponse, error) {
	if err := authz.Authorize(role, authz.ActionEditInventory); err != nil {
		return nil, err
	}
	device, err := uc.deviceRepo.GetByID(in.DeviceID)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, fmt.Errorf("dispositivo %s: %w", in.DeviceID, domain.ErrNotFound)
	}
	license, err := uc.licenseRepo.GetByID(in.LicenseID)
	if err != nil {
		return nil, err
	}
	if license == nil {
		return nil, fmt.Errorf("licencia %s: %w", in.LicenseID, domain.ErrNotFound)
	}
	inst := &entity.Installation{
		ID:          uuid.New().String(),
		DeviceID:    in.DeviceID,
		LicenseID:   in.LicenseID,
		InstalledAt: time.Now(),
	}
	if err := uc.instRepo.Create(inst); err != nil {
		return nil, err
	}
	uc.audit.Record("device.install", "Installation", inst.ID, string(role), license.ProductName+" → "+device.Hostname)
	return toInstallationResponse(inst), nil
}

// Uninstall elimina una instalación.
func (uc *DeviceUseCase) Uninstall(role authz.Role, installationID string) error {
	if err := authz.Authorize(role, authz.ActionEditInventory); err != nil {
		return err
	}
	inst, err := uc.instRepo.GetByID(installationID)
	if err != nil {
		return err
	}
	if inst == nil {
		return fmt.Errorf("instalación %s: %w", installationID, domain.ErrNotFound)
	}
	if err := uc.instRepo.Delete(installationID); err != nil {
		return err
	}
	uc.audit.Record("device.uninstall", "Installation", installationID, string(role), "")
	return nil
}

func (uc *DeviceUseCase) toDeviceResponse(d *entity.Device, installs []*entity.Installation) *dto.DeviceResponse {
	resp := &dto.DeviceResponse{
		DeviceID:    d.ID,
		Hostname:    d.Hostname,
		OwnerUserID: d.OwnerUserID,
	}
	for _, i := range installs {
		resp.InstalledSoftware = append(resp.InstalledSoftware, *toInstallationResponse(i))
	}
	return resp
}

func toInstallationResponse(i *entity.Installation) *dto.InstallationResponse {
	return &dto.InstallationResponse{
		InstallationID: i.ID,
		DeviceID:       i.DeviceID,
		LicenseID:      i.LicenseID,
		InstalledAt:    i.InstalledAt,
	}
}

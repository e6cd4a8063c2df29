package usecase

import (
	"github.com/jhoicas/slms-api/internal/application/dto"
	"github.com/jhoicas/slms-api/internal/domain/entity"
	"github.com/jhoicas/slms-api/internal/domain/repository"
)

// DashboardUseCase agrega los conteos del tablero principal.
type DashboardUseCase struct {
	licenseRepo repository.LicenseRepository
	deviceRepo  repository.DeviceRepository
	alertRepo   repository.AlertRepository
	renewalRepo repository.RenewalRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	licenseRepo repository.LicenseRepository,
	deviceRepo repository.DeviceRepository,
	alertRepo repository.AlertRepository,
	renewalRepo repository.RenewalRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		licenseRepo: licenseRepo,
		deviceRepo:  deviceRepo,
		alertRepo:   alertRepo,
		renewalRepo: renewalRepo,
	}
}

// Summary arma los conteos agregados.
func (uc *DashboardUseCase) Summary() (*dto.DashboardResponse, error) {
	licenses, err := uc.licenseRepo.ListAll()
	if err != nil {
		return nil, err
	}
	deviceCount, err := uc.deviceRepo.Count()
	if err != nil {
		return nil, err
	}
	alerts, err := uc.alertRepo.List()
	if err != nil {
		return nil, err
	}
	critical := 0
	for _, a := range alerts {
		if a.Severity == entity.SeverityHigh {
			critical++
		}
	}
	renewals, err := uc.renewalRepo.List()
	if err != nil {
		return nil, err
	}
	byStatus := make(map[string]int)
	for _, r := range renewals {
		byStatus[string(r.Status)]++
	}
	return &dto.DashboardResponse{
		TotalLicenses:    len(licenses),
		TotalDevices:     deviceCount,
		ActiveAlerts:     len(alerts),
		CriticalAlerts:   critical,
		RenewalsByStatus: byStatus,
	}, nil
}

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

// LicenseUseCase CRUD del catálogo de licencias más la renovación directa.
// assignedLicenses siempre llega calculado desde el repo; aquí nunca se muta.
type LicenseUseCase struct {
	repo      repository.LicenseRepository
	alertRepo repository.AlertRepository
	audit     *audit.Recorder
}

// NewLicenseUseCase construye el caso de uso.
func NewLicenseUseCase(repo repository.LicenseRepository, alertRepo repository.AlertRepository, rec *audit.Recorder) *LicenseUseCase {
	return &LicenseUseCase{repo: repo, alertRepo: alertRepo, audit: rec}
}

// Create da de alta una licencia.
func (uc *LicenseUseCase) Create(role authz.Role, in dto.CreateLicenseRequest) (*dto.LicenseResponse, error) {
	if err := authz.Authorize(role, authz.ActionEditInventory); err != nil {
		return nil, err
	}
	if !entity.LicenseType(in.LicenseType).Valid() {
		return nil, fmt.Errorf("licenseType %d: %w", in.LicenseType, domain.ErrInvalidInput)
	}
	if in.TotalEntitlements < 0 {
		return nil, fmt.Errorf("totalEntitlements negativo: %w", domain.ErrInvalidInput)
	}
	purchase, err := parseDate(in.PurchaseDate)
	if err != nil {
		return nil, err
	}
	expiry, err := parseOptionalDate(in.ExpiryDate)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	license := &entity.License{
		ID:                uuid.New().String(),
		ProductName:       in.ProductName,
		Vendor:            in.Vendor,
		LicenseType:       entity.LicenseType(in.LicenseType),
		TotalEntitlements: in.TotalEntitlements,
		Cost:              in.Cost,
		PurchaseDate:      purchase,
		ExpiryDate:        expiry,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(license); err != nil {
		return nil, err
	}
	uc.audit.Record("license.create", "License", license.ID, string(role), license.ProductName)
	return toLicenseResponse(license), nil
}

// GetByID obtiene una licencia con su conteo de asignaciones.
func (uc *LicenseUseCase) GetByID(id string) (*dto.LicenseResponse, error) {
	license, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if license == nil {
		return nil, nil
	}
	return toLicenseResponse(license), nil
}

// List lista licencias con paginación.
func (uc *LicenseUseCase) List(limit, offset int) (*dto.LicenseListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LicenseResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLicenseResponse(l))
	}
	return &dto.LicenseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update edita una licencia; assignedLicenses no es editable.
func (uc *LicenseUseCase) Update(role authz.Role, id string, in dto.UpdateLicenseRequest) (*dto.LicenseResponse, error) {
	if err := authz.Authorize(role, authz.ActionEditInventory); err != nil {
		return nil, err
	}
	license, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if license == nil {
		return nil, nil
	}
	if in.ProductName != nil {
		license.ProductName = *in.ProductName
	}
	if in.Vendor != nil {
		license.Vendor = *in.Vendor
	}
	if in.LicenseType != nil {
		if !entity.LicenseType(*in.LicenseType).Valid() {
			return nil, fmt.Errorf("licenseType %d: %w", *in.LicenseType, domain.ErrInvalidInput)
		}
		license.LicenseType = entity.LicenseType(*in.LicenseType)
	}
	if in.TotalEntitlements != nil {
		if *in.TotalEntitlements < 0 {
			return nil, fmt.Errorf("totalEntitlements negativo: %w", domain.ErrInvalidInput)
		}
		license.TotalEntitlements = *in.TotalEntitlements
	}
	if in.Cost != nil {
		license.Cost = *in.Cost
	}
	if in.ExpiryDate != nil {
		expiry, err := parseOptionalDate(*in.ExpiryDate)
		if err != nil {
			return nil, err
		}
		license.ExpiryDate = expiry
	}
	license.UpdatedAt = time.Now()
	if err := uc.repo.Update(license); err != nil {
		return nil, err
	}
	uc.audit.Record("license.update", "License", license.ID, string(role), license.ProductName)
	return toLicenseResponse(license), nil
}

// Delete elimina una licencia del catálogo.
func (uc *LicenseUseCase) Delete(role authz.Role, id string) error {
	if err := authz.Authorize(role, authz.ActionEditInventory); err != nil {
		return err
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.audit.Record("license.delete", "License", id, string(role), "")
	return nil
}

// Renew extiende la licencia un año desde su vencimiento vigente y limpia
// su alerta de vencimiento (camino directo "Renew (+1 Yr)" de la vista de
// alertas; la aprobación de una renovación dispara el mismo efecto).
func (uc *LicenseUseCase) Renew(role authz.Role, id string) (*dto.LicenseResponse, error) {
	if err := authz.Authorize(role, authz.ActionEditInventory); err != nil {
		return nil, err
	}
	license, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if license == nil {
		return nil, nil
	}
	var newExpiry time.Time
	if license.ExpiryDate != nil {
		newExpiry = license.ExpiryDate.AddDate(1, 0, 0)
	} else {
		newExpiry = time.Now().AddDate(1, 0, 0)
	}
	if err := uc.repo.UpdateExpiry(license.ID, newExpiry); err != nil {
		return nil, err
	}
	if err := uc.alertRepo.DeleteByLicenseAndType(license.ID, entity.AlertExpiry); err != nil {
		return nil, err
	}
	license.ExpiryDate = &newExpiry
	uc.audit.Record("license.renew", "License", license.ID, string(role), "vencimiento extendido a "+newExpiry.Format("2006-01-02"))
	return toLicenseResponse(license), nil
}

func toLicenseResponse(l *entity.License) *dto.LicenseResponse {
	if l == nil {
		return nil
	}
	return &dto.LicenseResponse{
		LicenseID:         l.ID,
		ProductName:       l.ProductName,
		Vendor:            l.Vendor,
		LicenseType:       int(l.LicenseType),
		LicenseTypeName:   l.LicenseType.String(),
		TotalEntitlements: l.TotalEntitlements,
		AssignedLicenses:  l.AssignedLicenses,
		Cost:              l.Cost,
		PurchaseDate:      l.PurchaseDate,
		ExpiryDate:        l.ExpiryDate,
	}
}

// parseDate acepta fechas ISO-8601 (yyyy-mm-dd o RFC3339).
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("fecha %q no es ISO-8601: %w", s, domain.ErrInvalidInput)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Package compliance orquesta el motor de cumplimiento: recorre las licencias,
// reconcilia la tabla de alertas de forma idempotente y arma las vistas de
// alertas, reporte y la instantánea combinada que consume el poller.
package compliance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/slms-api/internal/application/dto"
	"github.com/jhoicas/slms-api/internal/application/renewal"
	"github.com/jhoicas/slms-api/internal/domain/authz"
	domcompliance "github.com/jhoicas/slms-api/internal/domain/compliance"
	"github.com/jhoicas/slms-api/internal/domain/entity"
	"github.com/jhoicas/slms-api/internal/domain/repository"
)

// TxRunner ejecuta la reconciliación de alertas dentro de una transacción.
type TxRunner interface {
	RunCompliance(ctx context.Context, fn func(
		alertRepo repository.AlertRepository,
		licenseRepo repository.LicenseRepository,
	) error) error
}

// UseCase casos de uso de cumplimiento.
type UseCase struct {
	tx          TxRunner
	licenseRepo repository.LicenseRepository
	alertRepo   repository.AlertRepository
	renewalRepo repository.RenewalRepository
	policy      domcompliance.Policy
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	tx TxRunner,
	licenseRepo repository.LicenseRepository,
	alertRepo repository.AlertRepository,
	renewalRepo repository.RenewalRepository,
	policy domcompliance.Policy,
) *UseCase {
	return &UseCase{
		tx:          tx,
		licenseRepo: licenseRepo,
		alertRepo:   alertRepo,
		renewalRepo: renewalRepo,
		policy:      policy,
	}
}

type alertKey struct {
	licenseID string
	alertType entity.AlertType
}

// RunCheck reevalúa todas las licencias y reconcilia la tabla de alertas:
// inserta condiciones nuevas, borra las resueltas y deja intactas las que
// persisten (conservando su detectedAt). Toda la pasada va en una transacción,
// así que una falla no deja mutación parcial. Correr dos veces sobre los
// mismos datos no duplica nada.
func (uc *UseCase) RunCheck(ctx context.Context) (int, error) {
	today := time.Now()
	var active int
	err := uc.tx.RunCompliance(ctx, func(
		alertRepo repository.AlertRepository,
		licenseRepo repository.LicenseRepository,
	) error {
		licenses, err := licenseRepo.ListAll()
		if err != nil {
			return err
		}

		desired := make(map[alertKey]entity.AlertEvent)
		for _, l := range licenses {
			ev, err := domcompliance.Evaluate(l, today, uc.policy)
			if err != nil {
				return fmt.Errorf("evaluar licencia %s: %w", l.ID, err)
			}
			for _, a := range ev.Alerts {
				desired[alertKey{a.LicenseID, a.Type}] = a
			}
		}

		existing, err := alertRepo.List()
		if err != nil {
			return err
		}
		seen := make(map[alertKey]bool, len(existing))
		for _, a := range existing {
			k := alertKey{a.LicenseID, a.Type}
			if _, ok := desired[k]; ok {
				seen[k] = true
				continue
			}
			// Condición resuelta: el alerta desaparece.
			if err := alertRepo.Delete(a.ID); err != nil {
				return err
			}
		}
		for k, a := range desired {
			if seen[k] {
				continue
			}
			a.ID = uuid.New().String()
			if err := alertRepo.Create(&a); err != nil {
				return err
			}
		}
		active = len(desired)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return active, nil
}

// Alerts lista las alertas activas con su licencia embebida y el estado de
// renovación derivado, filtradas por severidad. El resumen se calcula sobre
// el total, no sobre el filtro.
func (uc *UseCase) Alerts(role authz.Role, filter string) (*dto.AlertListResponse, error) {
	if err := authz.Authorize(role, authz.ActionViewAlerts); err != nil {
		return nil, err
	}
	sevFilter := domcompliance.ParseSeverityFilter(filter)

	alerts, summary, err := uc.annotatedAlerts()
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		if sevFilter != domcompliance.FilterAll && a.SeverityLabel != string(sevFilter) {
			continue
		}
		items = append(items, a)
	}
	return &dto.AlertListResponse{Items: items, Summary: summary, Filter: string(sevFilter)}, nil
}

// Report arma el desglose de uso vs. propiedad por licencia. El estado se
// deriva en el momento (no lee la tabla de alertas).
func (uc *UseCase) Report(role authz.Role) (*dto.ComplianceReportResponse, error) {
	if err := authz.Authorize(role, authz.ActionViewAlerts); err != nil {
		return nil, err
	}
	return uc.buildReport()
}

// Overview arma la instantánea reconciliada (alertas anotadas + renovaciones).
// Sin control de rol: la consume el poller de sistema; la ruta HTTP que la
// expone aplica la matriz por middleware.
func (uc *UseCase) Overview(ctx context.Context) (dto.ComplianceOverviewResponse, error) {
	alerts, summary, err := uc.annotatedAlerts()
	if err != nil {
		return dto.ComplianceOverviewResponse{}, err
	}
	tasks, err := uc.renewalRepo.List()
	if err != nil {
		return dto.ComplianceOverviewResponse{}, err
	}
	renewals := make([]dto.RenewalResponse, 0, len(tasks))
	for _, t := range tasks {
		renewals = append(renewals, dto.RenewalResponse{
			RenewalID:    t.ID,
			LicenseID:    t.LicenseID,
			SoftwareName: t.SoftwareName,
			DueDate:      t.DueDate,
			QuoteDetails: t.QuoteDetails,
			Cost:         t.Cost,
			Status:       string(t.Status),
			CreatedAt:    t.CreatedAt,
		})
	}
	return dto.ComplianceOverviewResponse{
		Alerts:   alerts,
		Renewals: renewals,
		Summary:  summary,
	}, nil
}

// RefreshedReport fuerza el recálculo del motor y devuelve el reporte, igual
// que hacía la vista original (RunCheck y luego fetch).
func (uc *UseCase) RefreshedReport(ctx context.Context) (dto.ComplianceReportResponse, error) {
	if _, err := uc.RunCheck(ctx); err != nil {
		return dto.ComplianceReportResponse{}, err
	}
	report, err := uc.buildReport()
	if err != nil {
		return dto.ComplianceReportResponse{}, err
	}
	return *report, nil
}

func (uc *UseCase) buildReport() (*dto.ComplianceReportResponse, error) {
	licenses, err := uc.licenseRepo.ListAll()
	if err != nil {
		return nil, err
	}
	today := time.Now()
	rows := make([]dto.ComplianceRowResponse, 0, len(licenses))
	for _, l := range licenses {
		ev, err := domcompliance.Evaluate(l, today, uc.policy)
		if err != nil {
			return nil, fmt.Errorf("evaluar licencia %s: %w", l.ID, err)
		}
		rows = append(rows, dto.ComplianceRowResponse{
			LicenseID:         l.ID,
			ProductName:       l.ProductName,
			LicenseType:       int(l.LicenseType),
			LicenseTypeName:   l.LicenseType.String(),
			TotalEntitlements: l.TotalEntitlements,
			AssignedLicenses:  l.AssignedLicenses,
			Gap:               ev.Gap,
			Status:            string(ev.Status),
		})
	}
	return &dto.ComplianceReportResponse{Rows: rows, GeneratedAt: today}, nil
}

// annotatedAlerts junta alertas + licencias + estado de renovación por licencia.
func (uc *UseCase) annotatedAlerts() ([]dto.AlertResponse, dto.AlertSummaryResponse, error) {
	alerts, err := uc.alertRepo.List()
	if err != nil {
		return nil, dto.AlertSummaryResponse{}, err
	}
	licenses, err := uc.licenseRepo.ListAll()
	if err != nil {
		return nil, dto.AlertSummaryResponse{}, err
	}
	byID := make(map[string]*entity.License, len(licenses))
	for _, l := range licenses {
		byID[l.ID] = l
	}
	tasks, err := uc.renewalRepo.List()
	if err != nil {
		return nil, dto.AlertSummaryResponse{}, err
	}
	byLicense := make(map[string][]*entity.RenewalTask)
	for _, t := range tasks {
		byLicense[t.LicenseID] = append(byLicense[t.LicenseID], t)
	}

	all := make([]entity.AlertEvent, 0, len(alerts))
	items := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		all = append(all, *a)
		item := dto.AlertResponse{
			EventID:       a.ID,
			LicenseID:     a.LicenseID,
			Type:          int(a.Type),
			TypeLabel:     a.Type.Label(),
			Severity:      int(a.Severity),
			SeverityLabel: a.Severity.String(),
			Details:       a.Details,
			DetectedAt:    a.DetectedAt,
		}
		if l, ok := byID[a.LicenseID]; ok {
			item.License = &dto.LicenseSummary{LicenseID: l.ID, ProductName: l.ProductName, Vendor: l.Vendor}
		}
		if a.Type == entity.AlertExpiry {
			item.RenewalStatus = string(renewal.DeriveStatus(byLicense[a.LicenseID]))
		}
		items = append(items, item)
	}

	s := domcompliance.Summarize(all)
	summary := dto.AlertSummaryResponse{
		Critical: s.Critical,
		Warnings: s.Warnings,
		Notices:  s.Notices,
		Total:    s.Total,
		AllClear: s.AllClear(),
	}
	return items, summary, nil
}

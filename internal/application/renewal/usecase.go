// Package renewal implementa la máquina de estados de tareas de renovación:
// creación (con el invariante de una sola tarea activa por licencia),
// aprobación/rechazo exclusivo de Finanzas y el estado derivado por licencia.
package renewal

import (
	"context"
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

// TxRunner ejecuta el flujo de renovación dentro de una transacción,
// con los repos atados a la tx.
type TxRunner interface {
	RunRenewal(ctx context.Context, fn func(
		renewalRepo repository.RenewalRepository,
		licenseRepo repository.LicenseRepository,
		alertRepo repository.AlertRepository,
	) error) error
}

// UseCase casos de uso del flujo de renovación.
type UseCase struct {
	tx          TxRunner
	renewalRepo repository.RenewalRepository
	audit       *audit.Recorder
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx TxRunner, renewalRepo repository.RenewalRepository, rec *audit.Recorder) *UseCase {
	return &UseCase{tx: tx, renewalRepo: renewalRepo, audit: rec}
}

// Create crea una tarea Pending para la licencia de una alerta de vencimiento.
// Precondiciones: el rol tiene request-renewal, la licencia existe y tiene un
// alerta Expiry activo, y no hay otra tarea no-terminal para esa licencia.
// La verificación de tarea activa es oportunista: la autoridad final es el
// índice único parcial en la base (una creación en carrera se rechaza
// idempotentemente con ErrRenewalPending, nunca se acepta dos veces).
func (uc *UseCase) Create(ctx context.Context, role authz.Role, in dto.CreateRenewalRequest) (*dto.RenewalResponse, error) {
	if err := authz.Authorize(role, authz.ActionRequestRenewal); err != nil {
		return nil, err
	}

	var created *entity.RenewalTask
	err := uc.tx.RunRenewal(ctx, func(
		renewalRepo repository.RenewalRepository,
		licenseRepo repository.LicenseRepository,
		alertRepo repository.AlertRepository,
	) error {
		license, err := licenseRepo.GetByID(in.LicenseID)
		if err != nil {
			return err
		}
		if license == nil {
			return fmt.Errorf("licencia %s: %w", in.LicenseID, domain.ErrNotFound)
		}

		alerts, err := alertRepo.ListByLicense(in.LicenseID)
		if err != nil {
			return err
		}
		if !hasExpiryAlert(alerts) {
			return domain.ErrNotExpiryAlert
		}

		active, err := renewalRepo.GetActiveByLicense(in.LicenseID)
		if err != nil {
			return err
		}
		if active != nil {
			return domain.ErrRenewalPending
		}

		dueDate := time.Now()
		if license.ExpiryDate != nil {
			dueDate = *license.ExpiryDate
		}
		quote := in.QuoteDetails
		if quote == "" {
			quote = fmt.Sprintf("Solicitud generada desde alerta de vencimiento por rol %s", role)
		}
		now := time.Now()
		created = &entity.RenewalTask{
			ID:           uuid.New().String(),
			LicenseID:    license.ID,
			SoftwareName: license.ProductName,
			DueDate:      dueDate,
			QuoteDetails: quote,
			Cost:         license.Cost,
			Status:       entity.RenewalPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return renewalRepo.Create(created)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Record("renewal.create", "RenewalTask", created.ID, string(role), "solicitud de renovación para "+created.SoftwareName)
	return toRenewalResponse(created), nil
}

// UpdateStatus transiciona una tarea. Solo Finanzas puede sacar una tarea de
// Pending/Quote Req; Approved y Rejected son terminales e inmutables.
// Al aprobar se dispara el efecto externo: extender la licencia un año y
// limpiar su alerta de vencimiento.
func (uc *UseCase) UpdateStatus(ctx context.Context, role authz.Role, id, status string) (*dto.RenewalResponse, error) {
	target := entity.RenewalStatus(status)
	if !target.Valid() || target == entity.RenewalPending {
		return nil, fmt.Errorf("estado %q: %w", status, domain.ErrInvalidInput)
	}
	if err := authz.Authorize(role, actionForTransition(target)); err != nil {
		return nil, err
	}

	var updated *entity.RenewalTask
	err := uc.tx.RunRenewal(ctx, func(
		renewalRepo repository.RenewalRepository,
		licenseRepo repository.LicenseRepository,
		alertRepo repository.AlertRepository,
	) error {
		task, err := renewalRepo.GetByID(id)
		if err != nil {
			return err
		}
		if task == nil {
			return fmt.Errorf("renovación %s: %w", id, domain.ErrNotFound)
		}
		if task.Status.IsTerminal() {
			return domain.ErrRenewalTerminal
		}
		if err := renewalRepo.UpdateStatus(task.ID, target); err != nil {
			return err
		}
		task.Status = target
		task.UpdatedAt = time.Now()
		updated = task

		if target != entity.RenewalApproved {
			return nil
		}
		// Efecto de aprobación: la licencia se renueva (+1 año) y el alerta
		// de vencimiento desaparece. El cumplimiento no se recalcula aquí;
		// lo hará el próximo RunCheck.
		license, err := licenseRepo.GetByID(task.LicenseID)
		if err != nil {
			return err
		}
		if license == nil {
			return fmt.Errorf("licencia %s: %w", task.LicenseID, domain.ErrNotFound)
		}
		newExpiry := renewedExpiry(license, time.Now())
		if err := licenseRepo.UpdateExpiry(license.ID, newExpiry); err != nil {
			return err
		}
		return alertRepo.DeleteByLicenseAndType(license.ID, entity.AlertExpiry)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Record("renewal."+auditVerb(target), "RenewalTask", updated.ID, string(role), "estado → "+string(target))
	return toRenewalResponse(updated), nil
}

// Delete elimina una tarea en cualquier estado (roles no-Viewer).
// No re-dispara el cálculo de cumplimiento.
func (uc *UseCase) Delete(ctx context.Context, role authz.Role, id string) error {
	if err := authz.Authorize(role, authz.ActionDeleteRenewal); err != nil {
		return err
	}
	task, err := uc.renewalRepo.GetByID(id)
	if err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("renovación %s: %w", id, domain.ErrNotFound)
	}
	if err := uc.renewalRepo.Delete(id); err != nil {
		return err
	}
	uc.audit.Record("renewal.delete", "RenewalTask", id, string(role), "tarea eliminada ("+string(task.Status)+")")
	return nil
}

// List devuelve todas las tareas.
func (uc *UseCase) List(role authz.Role) (*dto.RenewalListResponse, error) {
	if err := authz.Authorize(role, authz.ActionViewRenewals); err != nil {
		return nil, err
	}
	tasks, err := uc.renewalRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.RenewalResponse, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, *toRenewalResponse(t))
	}
	return &dto.RenewalListResponse{Items: items}, nil
}

// StatusFor calcula el estado derivado de renovación de una licencia:
// PENDING si hay alguna tarea activa, REJECTED si existen tareas y todas
// están rechazadas (habilita "Retry Renewal"), NONE en cualquier otro caso.
func (uc *UseCase) StatusFor(licenseID string) (entity.LicenseRenewalStatus, error) {
	tasks, err := uc.renewalRepo.ListByLicense(licenseID)
	if err != nil {
		return "", err
	}
	return DeriveStatus(tasks), nil
}

// DeriveStatus agrega el estado derivado sobre un conjunto de tareas.
// Separado del repo para poder reutilizarlo sobre instantáneas del poller.
func DeriveStatus(tasks []*entity.RenewalTask) entity.LicenseRenewalStatus {
	if len(tasks) == 0 {
		return entity.RenewalStateNone
	}
	allRejected := true
	for _, t := range tasks {
		if t.Status.IsActive() {
			return entity.RenewalStatePending
		}
		if t.Status != entity.RenewalRejected {
			allRejected = false
		}
	}
	if allRejected {
		return entity.RenewalStateRejected
	}
	return entity.RenewalStateNone
}

// actionForTransition mapea el estado destino a la capacidad requerida.
// Quote Req también es una decisión de Finanzas (sigue activa la tarea).
func actionForTransition(target entity.RenewalStatus) authz.Action {
	if target == entity.RenewalRejected {
		return authz.ActionRejectRenewal
	}
	return authz.ActionApproveRenewal
}

func auditVerb(s entity.RenewalStatus) string {
	switch s {
	case entity.RenewalApproved:
		return "approve"
	case entity.RenewalRejected:
		return "reject"
	default:
		return "update"
	}
}

// renewedExpiry extiende un año desde el vencimiento vigente; si la licencia
// era perpetua o el dato falta, desde hoy.
func renewedExpiry(l *entity.License, today time.Time) time.Time {
	if l.ExpiryDate != nil {
		return l.ExpiryDate.AddDate(1, 0, 0)
	}
	return today.AddDate(1, 0, 0)
}

func hasExpiryAlert(alerts []*entity.AlertEvent) bool {
	for _, a := range alerts {
		if a.Type == entity.AlertExpiry {
			return true
		}
	}
	return false
}

func toRenewalResponse(t *entity.RenewalTask) *dto.RenewalResponse {
	if t == nil {
		return nil
	}
	return &dto.RenewalResponse{
		RenewalID:    t.ID,
		LicenseID:    t.LicenseID,
		SoftwareName: t.SoftwareName,
		DueDate:      t.DueDate,
		QuoteDetails: t.QuoteDetails,
		Cost:         t.Cost,
		Status:       string(t.Status),
		CreatedAt:    t.CreatedAt,
	}
}

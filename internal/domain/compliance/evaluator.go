// Package compliance contiene las reglas puras de cumplimiento de licencias:
// cálculo de estado (gap + vencimiento) y emisión de alertas. Sin efectos
// secundarios ni acceso a datos; quien persiste alertas es responsable de
// deduplicar (ver application/compliance).
package compliance

import (
	"fmt"
	"time"

	"github.com/jhoicas/slms-api/internal/domain"
	"github.com/jhoicas/slms-api/internal/domain/entity"
)

// Status estado de cumplimiento derivado de una licencia. No se persiste;
// se recalcula en cada evaluación y exactamente uno aplica a la vez.
type Status string

const (
	StatusExpired   Status = "Expired"
	StatusOverused  Status = "Overused"
	StatusUnused    Status = "Unused"
	StatusCompliant Status = "Compliant"
)

// Policy umbrales de severidad configurables.
type Policy struct {
	// UnusedMediumPercent: si el gap positivo alcanza este porcentaje de los
	// entitlements, el alerta Unused sube de Low a Medium.
	UnusedMediumPercent int
	// ExpiryWarningDays: días de anticipación con que se alerta un vencimiento
	// próximo (Medium). El estado sigue siendo el que dicte el gap.
	ExpiryWarningDays int
}

// DefaultPolicy valores por defecto: 20% de asientos ociosos ⇒ Medium,
// aviso de vencimiento con 30 días de anticipación.
func DefaultPolicy() Policy {
	return Policy{UnusedMediumPercent: 20, ExpiryWarningDays: 30}
}

// Evaluation resultado de evaluar una licencia.
type Evaluation struct {
	Status Status
	Gap    int
	Alerts []entity.AlertEvent
}

// Evaluate evalúa una licencia contra la fecha actual y la política dada.
// Es una función pura del estado actual (no de la historia): reevaluar datos
// sin cambios produce exactamente el mismo resultado, sin duplicar alertas.
// Entradas malformadas (conteos negativos) se rechazan, nunca se corrigen en silencio.
func Evaluate(l *entity.License, today time.Time, p Policy) (Evaluation, error) {
	if l == nil {
		return Evaluation{}, fmt.Errorf("licencia nula: %w", domain.ErrInvalidInput)
	}
	if l.TotalEntitlements < 0 {
		return Evaluation{}, fmt.Errorf("totalEntitlements negativo (%d): %w", l.TotalEntitlements, domain.ErrInvalidInput)
	}
	if l.AssignedLicenses < 0 {
		return Evaluation{}, fmt.Errorf("assignedLicenses negativo (%d): %w", l.AssignedLicenses, domain.ErrInvalidInput)
	}

	gap := l.Gap()
	ev := Evaluation{Gap: gap}

	switch {
	case l.IsExpired(today):
		ev.Status = StatusExpired
		ev.Alerts = append(ev.Alerts, entity.AlertEvent{
			LicenseID:  l.ID,
			Type:       entity.AlertExpiry,
			Severity:   entity.SeverityHigh,
			Details:    fmt.Sprintf("La licencia de %s venció el %s.", l.ProductName, l.ExpiryDate.Format("2006-01-02")),
			DetectedAt: today,
		})
	case gap < 0:
		ev.Status = StatusOverused
		ev.Alerts = append(ev.Alerts, entity.AlertEvent{
			LicenseID:  l.ID,
			Type:       entity.AlertOverUse,
			Severity:   entity.SeverityHigh,
			Details:    fmt.Sprintf("%s sobreusada: %d instaladas sobre %d entitlements (%d de más).", l.ProductName, l.AssignedLicenses, l.TotalEntitlements, -gap),
			DetectedAt: today,
		})
	case gap > 0:
		ev.Status = StatusUnused
		ev.Alerts = append(ev.Alerts, entity.AlertEvent{
			LicenseID:  l.ID,
			Type:       entity.AlertUnused,
			Severity:   unusedSeverity(gap, l.TotalEntitlements, p),
			Details:    fmt.Sprintf("%s tiene %d asiento(s) sin usar (%d/%d asignadas).", l.ProductName, gap, l.AssignedLicenses, l.TotalEntitlements),
			DetectedAt: today,
		})
	default:
		ev.Status = StatusCompliant
	}

	// Aviso anticipado de vencimiento: se emite además del alerta por gap,
	// solo mientras la licencia aún no venció.
	if ev.Status != StatusExpired && expiresSoon(l, today, p.ExpiryWarningDays) {
		ev.Alerts = append(ev.Alerts, entity.AlertEvent{
			LicenseID:  l.ID,
			Type:       entity.AlertExpiry,
			Severity:   entity.SeverityMedium,
			Details:    fmt.Sprintf("La licencia de %s vence el %s.", l.ProductName, l.ExpiryDate.Format("2006-01-02")),
			DetectedAt: today,
		})
	}

	return ev, nil
}

// unusedSeverity aplica el corte de severidad para asientos ociosos:
// gap >= UnusedMediumPercent% de los entitlements ⇒ Medium, si no Low.
func unusedSeverity(gap, total int, p Policy) entity.Severity {
	if total > 0 && gap*100 >= p.UnusedMediumPercent*total {
		return entity.SeverityMedium
	}
	return entity.SeverityLow
}

func expiresSoon(l *entity.License, today time.Time, days int) bool {
	if l.ExpiryDate == nil || days <= 0 {
		return false
	}
	return !l.ExpiryDate.Before(today) && l.ExpiryDate.Before(today.AddDate(0, 0, days))
}

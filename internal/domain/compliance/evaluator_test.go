package compliance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/slms-api/internal/domain"
	"github.com/jhoicas/slms-api/internal/domain/compliance"
	"github.com/jhoicas/slms-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var hoy = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

// licencia construye una licencia con vencimiento lejano (fuera de la ventana
// de aviso) para que los tests de gap no emitan alertas de vencimiento.
func licencia(total, asignadas int) *entity.License {
	exp := hoy.AddDate(1, 0, 0)
	return &entity.License{
		ID:                "lic-1",
		ProductName:       "Adobe Photoshop",
		Vendor:            "Adobe",
		LicenseType:       entity.LicenseTypePerUser,
		TotalEntitlements: total,
		AssignedLicenses:  asignadas,
		PurchaseDate:      hoy.AddDate(-1, 0, 0),
		ExpiryDate:        &exp,
	}
}

func conVencimiento(l *entity.License, exp time.Time) *entity.License {
	l.ExpiryDate = &exp
	return l
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado derivado: exactamente uno aplica por evaluación
// ──────────────────────────────────────────────────────────────────────────────

// Licencia con 10 entitlements y 12 instaladas, sin vencer → Overused con
// gap -2 y una sola alerta High de sobreuso.
func TestEvaluate_SobreusoEmiteAlertaHigh(t *testing.T) {
	ev, err := compliance.Evaluate(licencia(10, 12), hoy, compliance.DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, compliance.StatusOverused, ev.Status)
	assert.Equal(t, -2, ev.Gap, "el gap debe ser entitlements - asignadas")
	require.Len(t, ev.Alerts, 1, "sobreuso emite exactamente una alerta")
	assert.Equal(t, entity.AlertOverUse, ev.Alerts[0].Type)
	assert.Equal(t, entity.SeverityHigh, ev.Alerts[0].Severity)
}

// Vencida Y sobreusada a la vez → manda el vencimiento: estado Expired y la
// única alerta es la de Expiry (High).
func TestEvaluate_VencimientoPrecedeAlSobreuso(t *testing.T) {
	l := conVencimiento(licencia(10, 12), hoy.AddDate(0, 0, -1))
	ev, err := compliance.Evaluate(l, hoy, compliance.DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, compliance.StatusExpired, ev.Status,
		"una licencia vencida es Expired aunque también esté sobreusada")
	require.Len(t, ev.Alerts, 1)
	assert.Equal(t, entity.AlertExpiry, ev.Alerts[0].Type)
	assert.Equal(t, entity.SeverityHigh, ev.Alerts[0].Severity)
}

func TestEvaluate_GapCeroEsCompliantSinAlertas(t *testing.T) {
	ev, err := compliance.Evaluate(licencia(10, 10), hoy, compliance.DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, compliance.StatusCompliant, ev.Status)
	assert.Equal(t, 0, ev.Gap)
	assert.Empty(t, ev.Alerts, "compliant no emite alertas")
}

func TestEvaluate_PerpetuaNuncaVence(t *testing.T) {
	l := licencia(5, 5)
	l.ExpiryDate = nil
	ev, err := compliance.Evaluate(l, hoy, compliance.DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, compliance.StatusCompliant, ev.Status)
	assert.Empty(t, ev.Alerts)
}

// ──────────────────────────────────────────────────────────────────────────────
// Severidad del alerta Unused: corte configurable por política
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluate_UnusedBajoElCorteEsLow(t *testing.T) {
	// 1 de 10 ociosa = 10% < 20% ⇒ Low
	ev, err := compliance.Evaluate(licencia(10, 9), hoy, compliance.DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, compliance.StatusUnused, ev.Status)
	require.Len(t, ev.Alerts, 1)
	assert.Equal(t, entity.AlertUnused, ev.Alerts[0].Type)
	assert.Equal(t, entity.SeverityLow, ev.Alerts[0].Severity)
}

func TestEvaluate_UnusedEnElCorteSubeAMedium(t *testing.T) {
	// 2 de 10 ociosas = 20% ⇒ Medium (el corte es inclusivo)
	ev, err := compliance.Evaluate(licencia(10, 8), hoy, compliance.DefaultPolicy())
	require.NoError(t, err)

	require.Len(t, ev.Alerts, 1)
	assert.Equal(t, entity.SeverityMedium, ev.Alerts[0].Severity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aviso anticipado de vencimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluate_VencimientoProximoAgregaAvisoMedium(t *testing.T) {
	// Compliant por gap pero vence en 10 días → aviso Medium adicional.
	l := conVencimiento(licencia(10, 10), hoy.AddDate(0, 0, 10))
	ev, err := compliance.Evaluate(l, hoy, compliance.DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, compliance.StatusCompliant, ev.Status,
		"el aviso anticipado no cambia el estado derivado")
	require.Len(t, ev.Alerts, 1)
	assert.Equal(t, entity.AlertExpiry, ev.Alerts[0].Type)
	assert.Equal(t, entity.SeverityMedium, ev.Alerts[0].Severity)
}

func TestEvaluate_AvisoConviveConAlertaDeGap(t *testing.T) {
	// Sobreusada y venciendo pronto → dos alertas: OverUse High + Expiry Medium.
	l := conVencimiento(licencia(10, 12), hoy.AddDate(0, 0, 5))
	ev, err := compliance.Evaluate(l, hoy, compliance.DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, compliance.StatusOverused, ev.Status)
	require.Len(t, ev.Alerts, 2)
	assert.Equal(t, entity.AlertOverUse, ev.Alerts[0].Type)
	assert.Equal(t, entity.AlertExpiry, ev.Alerts[1].Type)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas malformadas: se rechazan, nunca se corrigen en silencio
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluate_ConteosNegativosRetornanError(t *testing.T) {
	l := licencia(-1, 0)
	_, err := compliance.Evaluate(l, hoy, compliance.DefaultPolicy())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	l = licencia(10, -3)
	_, err = compliance.Evaluate(l, hoy, compliance.DefaultPolicy())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEvaluate_LicenciaNulaRetornaError(t *testing.T) {
	_, err := compliance.Evaluate(nil, hoy, compliance.DefaultPolicy())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Reevaluar los mismos datos produce exactamente el mismo resultado.
func TestEvaluate_EsDeterminista(t *testing.T) {
	l := conVencimiento(licencia(10, 12), hoy.AddDate(0, 0, -1))
	a, err := compliance.Evaluate(l, hoy, compliance.DefaultPolicy())
	require.NoError(t, err)
	b, err := compliance.Evaluate(l, hoy, compliance.DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

package renewal_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/slms-api/internal/application/audit"
	"github.com/jhoicas/slms-api/internal/application/dto"
	"github.com/jhoicas/slms-api/internal/application/renewal"
	"github.com/jhoicas/slms-api/internal/domain"
	"github.com/jhoicas/slms-api/internal/domain/authz"
	"github.com/jhoicas/slms-api/internal/domain/entity"
	"github.com/jhoicas/slms-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeLicenseRepo struct {
	items map[string]*entity.License
}

func newFakeLicenseRepo(ls ...*entity.License) *fakeLicenseRepo {
	r := &fakeLicenseRepo{items: make(map[string]*entity.License)}
	for _, l := range ls {
		r.items[l.ID] = l
	}
	return r
}

func (r *fakeLicenseRepo) Create(l *entity.License) error { r.items[l.ID] = l; return nil }
func (r *fakeLicenseRepo) GetByID(id string) (*entity.License, error) {
	return r.items[id], nil
}
func (r *fakeLicenseRepo) List(limit, offset int) ([]*entity.License, error) { return r.ListAll() }
func (r *fakeLicenseRepo) ListAll() ([]*entity.License, error) {
	out := make([]*entity.License, 0, len(r.items))
	for _, l := range r.items {
		out = append(out, l)
	}
	return out, nil
}
func (r *fakeLicenseRepo) Update(l *entity.License) error { r.items[l.ID] = l; return nil }
func (r *fakeLicenseRepo) UpdateExpiry(id string, expiry time.Time) error {
	if l, ok := r.items[id]; ok {
		l.ExpiryDate = &expiry
	}
	return nil
}
func (r *fakeLicenseRepo) Delete(id string) error { delete(r.items, id); return nil }

type fakeAlertRepo struct {
	items []*entity.AlertEvent
}

func (r *fakeAlertRepo) List() ([]*entity.AlertEvent, error) { return r.items, nil }
func (r *fakeAlertRepo) ListByLicense(licenseID string) ([]*entity.AlertEvent, error) {
	out := []*entity.AlertEvent{}
	for _, a := range r.items {
		if a.LicenseID == licenseID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r *fakeAlertRepo) Create(a *entity.AlertEvent) error { r.items = append(r.items, a); return nil }
func (r *fakeAlertRepo) Delete(id string) error {
	out := r.items[:0]
	for _, a := range r.items {
		if a.ID != id {
			out = append(out, a)
		}
	}
	r.items = out
	return nil
}
func (r *fakeAlertRepo) DeleteByLicenseAndType(licenseID string, t entity.AlertType) error {
	out := r.items[:0]
	for _, a := range r.items {
		if !(a.LicenseID == licenseID && a.Type == t) {
			out = append(out, a)
		}
	}
	r.items = out
	return nil
}
func (r *fakeAlertRepo) DeleteByLicense(licenseID string) error {
	out := r.items[:0]
	for _, a := range r.items {
		if a.LicenseID != licenseID {
			out = append(out, a)
		}
	}
	r.items = out
	return nil
}

// fakeRenewalRepo replica en memoria la autoridad del índice único parcial:
// Create rechaza con ErrRenewalPending si ya hay tarea activa para la licencia.
type fakeRenewalRepo struct {
	items map[string]*entity.RenewalTask
}

func newFakeRenewalRepo() *fakeRenewalRepo {
	return &fakeRenewalRepo{items: make(map[string]*entity.RenewalTask)}
}

func (r *fakeRenewalRepo) Create(t *entity.RenewalTask) error {
	for _, existing := range r.items {
		if existing.LicenseID == t.LicenseID && existing.Status.IsActive() {
			return domain.ErrRenewalPending
		}
	}
	cp := *t
	r.items[t.ID] = &cp
	return nil
}
func (r *fakeRenewalRepo) GetByID(id string) (*entity.RenewalTask, error) {
	if t, ok := r.items[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeRenewalRepo) List() ([]*entity.RenewalTask, error) {
	out := make([]*entity.RenewalTask, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, t)
	}
	return out, nil
}
func (r *fakeRenewalRepo) ListByLicense(licenseID string) ([]*entity.RenewalTask, error) {
	out := []*entity.RenewalTask{}
	for _, t := range r.items {
		if t.LicenseID == licenseID {
			out = append(out, t)
		}
	}
	return out, nil
}
func (r *fakeRenewalRepo) GetActiveByLicense(licenseID string) (*entity.RenewalTask, error) {
	for _, t := range r.items {
		if t.LicenseID == licenseID && t.Status.IsActive() {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *fakeRenewalRepo) UpdateStatus(id string, status entity.RenewalStatus) error {
	if t, ok := r.items[id]; ok {
		t.Status = status
	}
	return nil
}
func (r *fakeRenewalRepo) Delete(id string) error { delete(r.items, id); return nil }

// fakeTx pasa los repos directamente, sin transacción real.
type fakeTx struct {
	renewals *fakeRenewalRepo
	licenses *fakeLicenseRepo
	alerts   *fakeAlertRepo
}

func (tx *fakeTx) RunRenewal(_ context.Context, fn func(
	repository.RenewalRepository,
	repository.LicenseRepository,
	repository.AlertRepository,
) error) error {
	return fn(tx.renewals, tx.licenses, tx.alerts)
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del escenario
// ──────────────────────────────────────────────────────────────────────────────

var venceEn30 = time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	uc       *renewal.UseCase
	licenses *fakeLicenseRepo
	alerts   *fakeAlertRepo
	renewals *fakeRenewalRepo
}

// nuevaFixture arma una licencia por vencer con su alerta Expiry activa.
func nuevaFixture(t *testing.T) *fixture {
	t.Helper()
	exp := venceEn30
	lic := &entity.License{
		ID:                "lic-1",
		ProductName:       "Adobe Photoshop",
		Vendor:            "Adobe",
		TotalEntitlements: 10,
		Cost:              decimal.NewFromInt(1200),
		ExpiryDate:        &exp,
	}
	licenses := newFakeLicenseRepo(lic)
	alerts := &fakeAlertRepo{items: []*entity.AlertEvent{
		{ID: "al-1", LicenseID: "lic-1", Type: entity.AlertExpiry, Severity: entity.SeverityMedium},
	}}
	renewals := newFakeRenewalRepo()
	tx := &fakeTx{renewals: renewals, licenses: licenses, alerts: alerts}
	uc := renewal.NewUseCase(tx, renewals, audit.NewRecorder(nil, nil))
	return &fixture{uc: uc, licenses: licenses, alerts: alerts, renewals: renewals}
}

func (f *fixture) solicitar(t *testing.T, role authz.Role) (*dto.RenewalResponse, error) {
	t.Helper()
	return f.uc.Create(context.Background(), role, dto.CreateRenewalRequest{LicenseID: "lic-1"})
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación de solicitudes
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_GeneraTareaPendingDesdeLaLicencia(t *testing.T) {
	f := nuevaFixture(t)
	out, err := f.solicitar(t, authz.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, "Pending", out.Status)
	assert.Equal(t, "Adobe Photoshop", out.SoftwareName, "el software se copia de la licencia")
	assert.True(t, out.Cost.Equal(decimal.NewFromInt(1200)), "el costo se copia de la licencia")
	assert.True(t, out.DueDate.Equal(venceEn30), "la fecha límite es el vencimiento de la licencia")
}

// Con una tarea activa, una segunda solicitud (de cualquier rol habilitado)
// se rechaza con conflicto y no se crea nada.
func TestCreate_SegundaSolicitudConTareaActivaDevuelveConflicto(t *testing.T) {
	f := nuevaFixture(t)
	_, err := f.solicitar(t, authz.RoleAdmin)
	require.NoError(t, err)

	_, err = f.solicitar(t, authz.RoleAuditor)
	assert.ErrorIs(t, err, domain.ErrRenewalPending)

	tareas, _ := f.renewals.List()
	assert.Len(t, tareas, 1, "la solicitud duplicada no debe crear otra tarea")
}

func TestCreate_ViewerNoPuedeSolicitar(t *testing.T) {
	f := nuevaFixture(t)
	_, err := f.solicitar(t, authz.RoleViewer)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_SinAlertaDeVencimientoSeRechaza(t *testing.T) {
	f := nuevaFixture(t)
	f.alerts.items = nil
	_, err := f.solicitar(t, authz.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrNotExpiryAlert)
}

func TestCreate_LicenciaInexistenteDevuelveNotFound(t *testing.T) {
	f := nuevaFixture(t)
	_, err := f.uc.Create(context.Background(), authz.RoleAdmin, dto.CreateRenewalRequest{LicenseID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_SoloFinanzasApruebaYSeDisparaElEfecto(t *testing.T) {
	f := nuevaFixture(t)
	created, err := f.solicitar(t, authz.RoleAdmin)
	require.NoError(t, err)

	out, err := f.uc.UpdateStatus(context.Background(), authz.RoleFinance, created.RenewalID, "Approved")
	require.NoError(t, err)
	assert.Equal(t, "Approved", out.Status)

	// Efecto de aprobación: +1 año de vencimiento y alerta Expiry limpiada.
	lic, _ := f.licenses.GetByID("lic-1")
	require.NotNil(t, lic.ExpiryDate)
	assert.True(t, lic.ExpiryDate.Equal(venceEn30.AddDate(1, 0, 0)),
		"aprobar extiende el vencimiento un año desde el vigente")
	restantes, _ := f.alerts.ListByLicense("lic-1")
	assert.Empty(t, restantes, "la alerta de vencimiento debe desaparecer al aprobar")
}

func TestUpdateStatus_RolesSinCapacidadNoMutanLaTarea(t *testing.T) {
	f := nuevaFixture(t)
	created, err := f.solicitar(t, authz.RoleAdmin)
	require.NoError(t, err)

	for _, rol := range []authz.Role{authz.RoleAdmin, authz.RoleAuditor, authz.RoleViewer} {
		_, err := f.uc.UpdateStatus(context.Background(), rol, created.RenewalID, "Approved")
		assert.ErrorIs(t, err, domain.ErrForbidden, "rol %s", rol)
	}

	tarea, _ := f.renewals.GetByID(created.RenewalID)
	assert.Equal(t, entity.RenewalPending, tarea.Status,
		"una transición denegada no debe cambiar el estado")
}

func TestUpdateStatus_TareasTerminalesSonInmutables(t *testing.T) {
	f := nuevaFixture(t)
	created, err := f.solicitar(t, authz.RoleAdmin)
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(context.Background(), authz.RoleFinance, created.RenewalID, "Approved")
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(context.Background(), authz.RoleFinance, created.RenewalID, "Rejected")
	assert.ErrorIs(t, err, domain.ErrRenewalTerminal)
}

func TestUpdateStatus_PendingNoEsDestinoValido(t *testing.T) {
	f := nuevaFixture(t)
	created, err := f.solicitar(t, authz.RoleAdmin)
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(context.Background(), authz.RoleFinance, created.RenewalID, "Pending")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.UpdateStatus(context.Background(), authz.RoleFinance, created.RenewalID, "Escalated")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_QuoteReqSigueActivaYBloqueaOtraSolicitud(t *testing.T) {
	f := nuevaFixture(t)
	created, err := f.solicitar(t, authz.RoleAdmin)
	require.NoError(t, err)

	out, err := f.uc.UpdateStatus(context.Background(), authz.RoleFinance, created.RenewalID, "Quote Req")
	require.NoError(t, err)
	assert.Equal(t, "Quote Req", out.Status)

	_, err = f.solicitar(t, authz.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrRenewalPending,
		"Quote Req cuenta como tarea activa: no se admite otra solicitud")
}

// Rechazada la tarea, la licencia vuelve a admitir una solicitud nueva.
func TestUpdateStatus_RechazoHabilitaReintento(t *testing.T) {
	f := nuevaFixture(t)
	created, err := f.solicitar(t, authz.RoleAdmin)
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(context.Background(), authz.RoleFinance, created.RenewalID, "Rejected")
	require.NoError(t, err)

	estado, err := f.uc.StatusFor("lic-1")
	require.NoError(t, err)
	assert.Equal(t, entity.RenewalStateRejected, estado)

	// El vencimiento no se tocó y la alerta sigue activa: reintento válido.
	lic, _ := f.licenses.GetByID("lic-1")
	assert.True(t, lic.ExpiryDate.Equal(venceEn30), "rechazar no extiende la licencia")

	out, err := f.solicitar(t, authz.RoleAuditor)
	require.NoError(t, err)
	assert.Equal(t, "Pending", out.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminación y estado derivado
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_ViewerNoPuedeEliminar(t *testing.T) {
	f := nuevaFixture(t)
	created, err := f.solicitar(t, authz.RoleAdmin)
	require.NoError(t, err)

	err = f.uc.Delete(context.Background(), authz.RoleViewer, created.RenewalID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = f.uc.Delete(context.Background(), authz.RoleFinance, created.RenewalID)
	require.NoError(t, err)

	err = f.uc.Delete(context.Background(), authz.RoleFinance, created.RenewalID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "eliminar dos veces debe fallar con not found")
}

func TestDeriveStatus_TablaDeCasos(t *testing.T) {
	pendiente := &entity.RenewalTask{Status: entity.RenewalPending}
	cotizando := &entity.RenewalTask{Status: entity.RenewalQuoteReq}
	aprobada := &entity.RenewalTask{Status: entity.RenewalApproved}
	rechazada := &entity.RenewalTask{Status: entity.RenewalRejected}

	casos := []struct {
		nombre string
		tareas []*entity.RenewalTask
		quiero entity.LicenseRenewalStatus
	}{
		{"sin tareas", nil, entity.RenewalStateNone},
		{"una pendiente", []*entity.RenewalTask{pendiente}, entity.RenewalStatePending},
		{"cotización en curso", []*entity.RenewalTask{cotizando}, entity.RenewalStatePending},
		{"todas rechazadas", []*entity.RenewalTask{rechazada, rechazada}, entity.RenewalStateRejected},
		{"aprobada histórica", []*entity.RenewalTask{aprobada}, entity.RenewalStateNone},
		{"rechazada y aprobada", []*entity.RenewalTask{rechazada, aprobada}, entity.RenewalStateNone},
		{"rechazada y pendiente", []*entity.RenewalTask{rechazada, pendiente}, entity.RenewalStatePending},
	}
	for _, c := range casos {
		assert.Equal(t, c.quiero, renewal.DeriveStatus(c.tareas), c.nombre)
	}
}

package compliance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/slms-api/internal/domain/compliance"
	"github.com/jhoicas/slms-api/internal/domain/entity"
)

func alertasDeEjemplo() []entity.AlertEvent {
	return []entity.AlertEvent{
		{ID: "a1", Severity: entity.SeverityHigh},
		{ID: "a2", Severity: entity.SeverityMedium},
		{ID: "a3", Severity: entity.SeverityLow},
		{ID: "a4", Severity: entity.SeverityHigh},
	}
}

func TestParseSeverityFilter_TokensDesconocidosCaenEnAll(t *testing.T) {
	assert.Equal(t, compliance.FilterHigh, compliance.ParseSeverityFilter("High"))
	assert.Equal(t, compliance.FilterAll, compliance.ParseSeverityFilter(""))
	assert.Equal(t, compliance.FilterAll, compliance.ParseSeverityFilter("critical"))
	assert.Equal(t, compliance.FilterAll, compliance.ParseSeverityFilter("high"),
		"el filtro distingue mayúsculas: tokens fuera del enum no filtran")
}

func TestFilterAlerts_PreservaElOrden(t *testing.T) {
	out := compliance.FilterAlerts(alertasDeEjemplo(), compliance.FilterHigh)
	assert.Len(t, out, 2)
	assert.Equal(t, "a1", out[0].ID)
	assert.Equal(t, "a4", out[1].ID)

	out = compliance.FilterAlerts(alertasDeEjemplo(), compliance.FilterAll)
	assert.Len(t, out, 4, "All no filtra")
}

func TestSummarize_CuentaPorSeveridad(t *testing.T) {
	s := compliance.Summarize(alertasDeEjemplo())
	assert.Equal(t, 2, s.Critical)
	assert.Equal(t, 1, s.Warnings)
	assert.Equal(t, 1, s.Notices)
	assert.Equal(t, 4, s.Total)
	assert.False(t, s.AllClear())
}

func TestSummarize_SinAlertasEsAllClear(t *testing.T) {
	s := compliance.Summarize(nil)
	assert.True(t, s.AllClear())
	assert.Zero(t, s.Total)
}

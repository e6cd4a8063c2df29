package compliance

import "github.com/jhoicas/slms-api/internal/domain/entity"

// SeverityFilter filtro de listado de alertas. "All" (o vacío) no filtra.
type SeverityFilter string

const (
	FilterAll    SeverityFilter = "All"
	FilterHigh   SeverityFilter = "High"
	FilterMedium SeverityFilter = "Medium"
	FilterLow    SeverityFilter = "Low"
)

// ParseSeverityFilter normaliza el token recibido; tokens desconocidos caen en All.
func ParseSeverityFilter(s string) SeverityFilter {
	switch SeverityFilter(s) {
	case FilterHigh, FilterMedium, FilterLow:
		return SeverityFilter(s)
	}
	return FilterAll
}

func (f SeverityFilter) matches(s entity.Severity) bool {
	switch f {
	case FilterHigh:
		return s == entity.SeverityHigh
	case FilterMedium:
		return s == entity.SeverityMedium
	case FilterLow:
		return s == entity.SeverityLow
	}
	return true
}

// FilterAlerts devuelve las alertas cuya severidad pasa el filtro,
// preservando el orden de entrada.
func FilterAlerts(alerts []entity.AlertEvent, f SeverityFilter) []entity.AlertEvent {
	out := make([]entity.AlertEvent, 0, len(alerts))
	for _, a := range alerts {
		if f.matches(a.Severity) {
			out = append(out, a)
		}
	}
	return out
}

// Summary conteos para las tarjetas del tablero de alertas.
type Summary struct {
	Critical int // severidad High
	Warnings int // severidad Medium
	Notices  int // severidad Low
	Total    int
}

// AllClear indica que no hay alertas activas.
func (s Summary) AllClear() bool { return s.Total == 0 }

// Summarize calcula los conteos de resumen sobre la colección completa.
func Summarize(alerts []entity.AlertEvent) Summary {
	var s Summary
	for _, a := range alerts {
		switch a.Severity {
		case entity.SeverityHigh:
			s.Critical++
		case entity.SeverityMedium:
			s.Warnings++
		case entity.SeverityLow:
			s.Notices++
		}
	}
	s.Total = len(alerts)
	return s
}

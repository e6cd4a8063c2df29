package entity

import "time"

// AlertType condición de cumplimiento detectada. Enum cerrado, serializado como entero.
type AlertType int

const (
	AlertExpiry  AlertType = iota // licencia vencida o próxima a vencer
	AlertOverUse                  // más instalaciones que entitlements
	AlertUnused                   // asientos comprados sin usar
)

// Label devuelve el texto que se muestra por tipo. El tipo manda sobre el texto;
// la severidad sigue mandando sobre color/urgencia.
func (t AlertType) Label() string {
	switch t {
	case AlertOverUse:
		return "Over Usage"
	case AlertUnused:
		return "Unused"
	default:
		return "Expiry"
	}
}

// Severity urgencia del alerta. Enum cerrado, serializado como entero.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

var severityNames = [...]string{"Low", "Medium", "High"}

// String devuelve la etiqueta fija de la severidad (0=Low, 1=Medium, 2=High).
func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "Unknown"
	}
	return severityNames[s]
}

// AlertEvent evento de incumplimiento producido por el evaluador.
// Inmutable una vez detectado; desaparece cuando la condición subyacente se resuelve.
type AlertEvent struct {
	ID         string
	LicenseID  string
	Type       AlertType
	Severity   Severity
	Details    string
	DetectedAt time.Time
}

package dto

import "time"

// AlertResponse alerta activa con el resumen de su licencia embebido.
// severity fija la urgencia (2=High/Critical, 1=Medium/Warning, 0=Low/Notice);
// typeLabel manda sobre el texto mostrado.
type AlertResponse struct {
	EventID       string          `json:"eventId"`
	LicenseID     string          `json:"licenseId"`
	Type          int             `json:"type"`
	TypeLabel     string          `json:"typeLabel"`
	Severity      int             `json:"severity"`
	SeverityLabel string          `json:"severityLabel"`
	Details       string          `json:"details"`
	DetectedAt    time.Time       `json:"detectedAt"`
	License       *LicenseSummary `json:"license,omitempty"`
	// Estado derivado de renovación de la licencia (NONE/PENDING/REJECTED):
	// decide qué acción mostrar para alertas de vencimiento.
	RenewalStatus string `json:"renewalStatus,omitempty"`
}

// AlertSummaryResponse tarjetas de resumen del tablero.
type AlertSummaryResponse struct {
	Critical int  `json:"critical"`
	Warnings int  `json:"warnings"`
	Notices  int  `json:"notices"`
	Total    int  `json:"total"`
	AllClear bool `json:"allClear"`
}

// AlertListResponse alertas (posiblemente filtradas) más el resumen global.
type AlertListResponse struct {
	Items   []AlertResponse      `json:"items"`
	Summary AlertSummaryResponse `json:"summary"`
	Filter  string               `json:"filter"`
}

// ComplianceRowResponse fila del reporte de cumplimiento por licencia.
type ComplianceRowResponse struct {
	LicenseID         string `json:"licenseId"`
	ProductName       string `json:"productName"`
	LicenseType       int    `json:"licenseType"`
	LicenseTypeName   string `json:"licenseTypeName"`
	TotalEntitlements int    `json:"totalEntitlements"`
	AssignedLicenses  int    `json:"assignedLicenses"`
	Gap               int    `json:"gap"`
	Status            string `json:"status"`
}

// ComplianceReportResponse reporte completo (uso vs. propiedad).
type ComplianceReportResponse struct {
	Rows        []ComplianceRowResponse `json:"rows"`
	GeneratedAt time.Time               `json:"generatedAt"`
}

// ComplianceOverviewResponse instantánea reconciliada que sirve el coordinador
// de polling: alertas anotadas con estado de renovación más las tareas vigentes.
type ComplianceOverviewResponse struct {
	Alerts    []AlertResponse      `json:"alerts"`
	Renewals  []RenewalResponse    `json:"renewals"`
	Summary   AlertSummaryResponse `json:"summary"`
	FetchedAt time.Time            `json:"fetchedAt"`
	Stale     bool                 `json:"stale"`
}

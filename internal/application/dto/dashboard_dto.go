package dto

// DashboardResponse conteos agregados para el tablero principal.
type DashboardResponse struct {
	TotalLicenses    int            `json:"totalLicenses"`
	TotalDevices     int            `json:"totalDevices"`
	ActiveAlerts     int            `json:"activeAlerts"`
	CriticalAlerts   int            `json:"criticalAlerts"`
	RenewalsByStatus map[string]int `json:"renewalsByStatus"`
}

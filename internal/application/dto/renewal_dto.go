package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRenewalRequest solicitud de renovación a partir de una alerta de
// vencimiento. El servidor completa software, fecha y costo desde la licencia.
type CreateRenewalRequest struct {
	LicenseID    string `json:"licenseId" validate:"required"`
	QuoteDetails string `json:"quoteDetails,omitempty"`
}

// UpdateRenewalStatusRequest transición de estado (solo Finanzas aprueba/rechaza).
type UpdateRenewalStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// RenewalResponse tarea de renovación.
type RenewalResponse struct {
	RenewalID    string          `json:"renewalId"`
	LicenseID    string          `json:"licenseId"`
	SoftwareName string          `json:"softwareName"`
	DueDate      time.Time       `json:"dueDate"`
	QuoteDetails string          `json:"quoteDetails,omitempty"`
	Cost         decimal.Decimal `json:"cost"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// RenewalListResponse listado completo de tareas.
type RenewalListResponse struct {
	Items []RenewalResponse `json:"items"`
}

// RenewalStatusResponse estado derivado por licencia (NONE/PENDING/REJECTED).
type RenewalStatusResponse struct {
	LicenseID string `json:"licenseId"`
	Status    string `json:"status"`
}

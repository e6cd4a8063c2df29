package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RenewalStatus estado de una tarea de renovación. Tokens fijos en la API.
type RenewalStatus string

const (
	RenewalPending  RenewalStatus = "Pending"
	RenewalApproved RenewalStatus = "Approved"
	RenewalRejected RenewalStatus = "Rejected"
	RenewalQuoteReq RenewalStatus = "Quote Req"
)

// Valid indica si el token pertenece al enum.
func (s RenewalStatus) Valid() bool {
	switch s {
	case RenewalPending, RenewalApproved, RenewalRejected, RenewalQuoteReq:
		return true
	}
	return false
}

// IsActive indica si la tarea sigue viva (cuenta contra el invariante de
// "a lo sumo una renovación activa por licencia"). Quote Req es no-terminal.
func (s RenewalStatus) IsActive() bool {
	return s == RenewalPending || s == RenewalQuoteReq
}

// IsTerminal indica si la tarea ya no admite transiciones.
func (s RenewalStatus) IsTerminal() bool {
	return s == RenewalApproved || s == RenewalRejected
}

// RenewalTask solicitud de renovación de una licencia, sujeta a aprobación de Finanzas.
// Solo muta vía transiciones de estado; el evaluador de cumplimiento nunca la toca.
type RenewalTask struct {
	ID           string
	LicenseID    string
	SoftwareName string
	DueDate      time.Time
	QuoteDetails string
	Cost         decimal.Decimal
	Status       RenewalStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LicenseRenewalStatus estado derivado de renovación para una licencia
// (agregado sobre todas sus tareas, ver RenewalUseCase.StatusFor).
type LicenseRenewalStatus string

const (
	RenewalStateNone     LicenseRenewalStatus = "NONE"     // sin tareas: se puede solicitar
	RenewalStatePending  LicenseRenewalStatus = "PENDING"  // hay tarea activa: no se admite otra
	RenewalStateRejected LicenseRenewalStatus = "REJECTED" // todas rechazadas: se puede reintentar
)

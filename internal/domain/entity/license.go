package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LicenseType esquema de licenciamiento. Se serializa como entero (enum cerrado).
type LicenseType int

const (
	LicenseTypePerUser LicenseType = iota
	LicenseTypePerDevice
	LicenseTypeConcurrent
	LicenseTypeSubscription
)

var licenseTypeNames = [...]string{"Per User", "Per Device", "Concurrent", "Subscription"}

// String devuelve el nombre legible del tipo.
func (t LicenseType) String() string {
	if t < 0 || int(t) >= len(licenseTypeNames) {
		return "Unknown"
	}
	return licenseTypeNames[t]
}

// Valid indica si el valor pertenece al enum.
func (t LicenseType) Valid() bool {
	return t >= LicenseTypePerUser && t <= LicenseTypeSubscription
}

// License representa una licencia de software del catálogo.
// AssignedLicenses es derivado (conteo de instalaciones); este dominio nunca lo edita directamente.
type License struct {
	ID                string
	ProductName       string
	Vendor            string
	LicenseType       LicenseType
	TotalEntitlements int
	AssignedLicenses  int
	Cost              decimal.Decimal
	PurchaseDate      time.Time
	ExpiryDate        *time.Time // nil = perpetua, no vence
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Gap devuelve entitlements menos licencias asignadas.
// Positivo = asientos ociosos; negativo = sobreuso (violación de licenciamiento).
func (l *License) Gap() int {
	return l.TotalEntitlements - l.AssignedLicenses
}

// IsExpired indica si la licencia está vencida respecto a la fecha dada.
func (l *License) IsExpired(today time.Time) bool {
	return l.ExpiryDate != nil && l.ExpiryDate.Before(today)
}

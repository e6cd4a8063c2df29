package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLicenseRequest alta de licencia en el catálogo.
// Las fechas viajan como ISO-8601 (yyyy-mm-dd o RFC3339).
type CreateLicenseRequest struct {
	ProductName       string          `json:"productName" validate:"required"`
	Vendor            string          `json:"vendor" validate:"required"`
	LicenseType       int             `json:"licenseType" validate:"min=0,max=3"`
	TotalEntitlements int             `json:"totalEntitlements" validate:"min=0"`
	Cost              decimal.Decimal `json:"cost"`
	PurchaseDate      string          `json:"purchaseDate" validate:"required"`
	ExpiryDate        string          `json:"expiryDate,omitempty"` // vacío = perpetua
}

// UpdateLicenseRequest edición parcial; assignedLicenses no es editable (derivado).
type UpdateLicenseRequest struct {
	ProductName       *string          `json:"productName,omitempty"`
	Vendor            *string          `json:"vendor,omitempty"`
	LicenseType       *int             `json:"licenseType,omitempty"`
	TotalEntitlements *int             `json:"totalEntitlements,omitempty" validate:"omitempty,min=0"`
	Cost              *decimal.Decimal `json:"cost,omitempty"`
	ExpiryDate        *string          `json:"expiryDate,omitempty"`
}

// LicenseResponse licencia con el conteo de asignaciones calculado.
type LicenseResponse struct {
	LicenseID         string          `json:"licenseId"`
	ProductName       string          `json:"productName"`
	Vendor            string          `json:"vendor"`
	LicenseType       int             `json:"licenseType"`
	LicenseTypeName   string          `json:"licenseTypeName"`
	TotalEntitlements int             `json:"totalEntitlements"`
	AssignedLicenses  int             `json:"assignedLicenses"`
	Cost              decimal.Decimal `json:"cost"`
	PurchaseDate      time.Time       `json:"purchaseDate"`
	ExpiryDate        *time.Time      `json:"expiryDate,omitempty"`
}

// LicenseListResponse listado paginado.
type LicenseListResponse struct {
	Items []LicenseResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// LicenseSummary resumen embebido en alertas.
type LicenseSummary struct {
	LicenseID   string `json:"licenseId"`
	ProductName string `json:"productName"`
	Vendor      string `json:"vendor"`
}

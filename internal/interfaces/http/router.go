package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/slms-api/internal/application/audit"
	appcompliance "github.com/jhoicas/slms-api/internal/application/compliance"
	"github.com/jhoicas/slms-api/internal/application/dto"
	"github.com/jhoicas/slms-api/internal/application/reconcile"
	"github.com/jhoicas/slms-api/internal/application/renewal"
	"github.com/jhoicas/slms-api/internal/application/usecase"
	"github.com/jhoicas/slms-api/internal/domain/authz"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LicenseUC      *usecase.LicenseUseCase
	DeviceUC       *usecase.DeviceUseCase
	DashboardUC    *usecase.DashboardUseCase
	ComplianceUC   *appcompliance.UseCase
	RenewalUC      *renewal.UseCase
	AuditRecorder  *audit.Recorder
	PDFGenerator   ReportPDFGenerator
	OverviewPoller *reconcile.Poller[dto.ComplianceOverviewResponse]
	ReportPoller   *reconcile.Poller[dto.ComplianceReportResponse]
	JWTSecret      string
	JWTIssuer      string
	JWTMinutes     int
}

// Router registra las rutas de la API. Cada ruta mutante o sensible lleva su
// guard de capacidad (RequireAction); los casos de uso vuelven a verificar.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público): stub de selección de rol
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.JWTSecret, deps.JWTIssuer, deps.JWTMinutes)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/roles", authHandler.Roles)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Licenses (lectura libre para sesiones válidas; escritura solo Admin)
	licenses := protected.Group("/licenses")
	licenseHandler := NewLicenseHandler(deps.LicenseUC)
	licenses.Get("/", licenseHandler.List)
	licenses.Get("/:id", licenseHandler.GetByID)
	licenses.Post("/", RequireAction(authz.ActionEditInventory), licenseHandler.Create)
	licenses.Put("/:id", RequireAction(authz.ActionEditInventory), licenseHandler.Update)
	licenses.Delete("/:id", RequireAction(authz.ActionEditInventory), licenseHandler.Delete)
	licenses.Post("/:id/renew", RequireAction(authz.ActionEditInventory), licenseHandler.Renew)

	// Devices e instalaciones
	devices := protected.Group("/devices")
	deviceHandler := NewDeviceHandler(deps.DeviceUC)
	devices.Get("/", deviceHandler.List)
	devices.Post("/", RequireAction(authz.ActionEditInventory), deviceHandler.Onboard)
	devices.Post("/installations", RequireAction(authz.ActionEditInventory), deviceHandler.Install)
	devices.Delete("/installations/:id", RequireAction(authz.ActionEditInventory), deviceHandler.Uninstall)
	devices.Get("/:id", deviceHandler.GetByID)
	devices.Put("/:id", RequireAction(authz.ActionEditInventory), deviceHandler.Update)
	devices.Delete("/:id", RequireAction(authz.ActionEditInventory), deviceHandler.Delete)

	// Compliance
	comp := protected.Group("/compliance")
	complianceHandler := NewComplianceHandler(deps.ComplianceUC, deps.PDFGenerator, deps.OverviewPoller, deps.ReportPoller)
	comp.Post("/run-check", RequireAction(authz.ActionEditInventory), complianceHandler.RunCheck)
	comp.Get("/alerts", RequireAction(authz.ActionViewAlerts), complianceHandler.Alerts)
	comp.Get("/report", RequireAction(authz.ActionViewAlerts), complianceHandler.Report)
	comp.Get("/report/pdf", RequireAction(authz.ActionExportAudit), complianceHandler.ReportPDF)
	comp.Get("/overview", RequireAction(authz.ActionViewAlerts), complianceHandler.Overview)

	// Renewals
	renewals := protected.Group("/renewals")
	renewalHandler := NewRenewalHandler(deps.RenewalUC)
	renewals.Get("/", RequireAction(authz.ActionViewRenewals), renewalHandler.List)
	renewals.Post("/", RequireAction(authz.ActionRequestRenewal), renewalHandler.Create)
	renewals.Put("/:id/status", renewalHandler.UpdateStatus)
	renewals.Delete("/:id", RequireAction(authz.ActionDeleteRenewal), renewalHandler.Delete)
	renewals.Get("/license/:licenseId/status", RequireAction(authz.ActionViewRenewals), renewalHandler.StatusForLicense)

	// Audit (Admin/Auditor)
	auditHandler := NewAuditHandler(deps.AuditRecorder)
	protected.Get("/audit-logs", RequireAction(authz.ActionExportAudit), auditHandler.List)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)
}

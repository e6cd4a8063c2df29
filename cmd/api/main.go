package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/slms-api/internal/application/audit"
	appcompliance "github.com/jhoicas/slms-api/internal/application/compliance"
	"github.com/jhoicas/slms-api/internal/application/reconcile"
	"github.com/jhoicas/slms-api/internal/application/renewal"
	"github.com/jhoicas/slms-api/internal/application/usecase"
	domcompliance "github.com/jhoicas/slms-api/internal/domain/compliance"
	infrapdf "github.com/jhoicas/slms-api/internal/infrastructure/pdf"
	"github.com/jhoicas/slms-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/slms-api/internal/interfaces/http"
	"github.com/jhoicas/slms-api/pkg/config"
	"github.com/jhoicas/slms-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	licenseRepo := postgres.NewLicenseRepository(pool)
	deviceRepo := postgres.NewDeviceRepository(pool)
	instRepo := postgres.NewInstallationRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	renewalRepo := postgres.NewRenewalRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	auditRec := audit.NewRecorder(auditRepo, log)
	policy := domcompliance.Policy{
		UnusedMediumPercent: cfg.Compliance.UnusedMediumPercent,
		ExpiryWarningDays:   cfg.Compliance.ExpiryWarningDays,
	}

	licenseUC := usecase.NewLicenseUseCase(licenseRepo, alertRepo, auditRec)
	deviceUC := usecase.NewDeviceUseCase(deviceRepo, instRepo, licenseRepo, auditRec)
	dashboardUC := usecase.NewDashboardUseCase(licenseRepo, deviceRepo, alertRepo, renewalRepo)
	renewalUC := renewal.NewUseCase(txRunner, renewalRepo, auditRec)
	complianceUC := appcompliance.NewUseCase(txRunner, licenseRepo, alertRepo, renewalRepo, policy)

	// Pollers de reconciliación: reemplazan la instantánea completa en cada
	// tick. El de overview cruza alertas y renovaciones; el de reporte fuerza
	// un recálculo del motor antes de leer.
	overviewPoller := reconcile.NewPoller(
		"compliance-overview",
		cfg.Poll.OverviewInterval,
		complianceUC.Overview,
		log,
	)
	reportPoller := reconcile.NewPoller(
		"compliance-report",
		cfg.Poll.ReportInterval,
		complianceUC.RefreshedReport,
		log,
	)
	pollCtx, stopPollers := context.WithCancel(ctx)
	defer stopPollers()
	go overviewPoller.Run(pollCtx)
	go reportPoller.Run(pollCtx)

	pdfGenerator := infrapdf.NewCompliancePDFGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SLMS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LicenseUC:      licenseUC,
		DeviceUC:       deviceUC,
		DashboardUC:    dashboardUC,
		ComplianceUC:   complianceUC,
		RenewalUC:      renewalUC,
		AuditRecorder:  auditRec,
		PDFGenerator:   pdfGenerator,
		OverviewPoller: overviewPoller,
		ReportPoller:   reportPoller,
		JWTSecret:      cfg.JWT.Secret,
		JWTIssuer:      cfg.JWT.Issuer,
		JWTMinutes:     cfg.JWT.Expiration,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	// Primero se frenan los pollers para que no muten estado durante el cierre.
	stopPollers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

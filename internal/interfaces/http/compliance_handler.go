package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/slms-api/internal/application/compliance"
	"github.com/jhoicas/slms-api/internal/application/dto"
	"github.com/jhoicas/slms-api/internal/application/reconcile"
)

// ReportPDFGenerator genera la versión exportable del reporte.
type ReportPDFGenerator interface {
	GenerateCompliancePDF(ctx context.Context, report dto.ComplianceReportResponse) ([]byte, error)
}

// ComplianceHandler maneja las peticiones del motor de cumplimiento.
// La vista combinada (overview) se sirve desde la instantánea del poller en
// lugar de golpear la base en cada request.
type ComplianceHandler struct {
	uc             *compliance.UseCase
	pdf            ReportPDFGenerator
	overviewPoller *reconcile.Poller[dto.ComplianceOverviewResponse]
	reportPoller   *reconcile.Poller[dto.ComplianceReportResponse]
}

// NewComplianceHandler construye el handler.
func NewComplianceHandler(
	uc *compliance.UseCase,
	pdf ReportPDFGenerator,
	overviewPoller *reconcile.Poller[dto.ComplianceOverviewResponse],
	reportPoller *reconcile.Poller[dto.ComplianceReportResponse],
) *ComplianceHandler {
	return &ComplianceHandler{uc: uc, pdf: pdf, overviewPoller: overviewPoller, reportPoller: reportPoller}
}

// RunCheck godoc
// @Summary      Recalcular cumplimiento
// @Description  Reevalúa todas las licencias y reconcilia la tabla de alertas (idempotente).
// @Tags         compliance
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AlertSummaryResponse
// @Router       /api/compliance/run-check [post]
func (h *ComplianceHandler) RunCheck(c *fiber.Ctx) error {
	if _, err := h.uc.RunCheck(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	// Acorta la ventana de consistencia eventual de las vistas pollled.
	if h.overviewPoller != nil {
		h.overviewPoller.Refresh(c.UserContext())
	}
	out, err := h.uc.Alerts(GetRole(c), "")
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out.Summary)
}

// Alerts godoc
// @Summary      Alertas activas
// @Description  Filtrables por severidad (All/High/Medium/Low); el resumen siempre es global.
// @Tags         compliance
// @Security     Bearer
// @Produce      json
// @Param        severity  query  string  false  "Filtro de severidad"  default(All)
// @Success      200  {object}  dto.AlertListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/compliance/alerts [get]
func (h *ComplianceHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.uc.Alerts(GetRole(c), c.Query("severity", "All"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte de cumplimiento
// @Description  Uso vs. propiedad por licencia con el estado derivado en el momento.
// @Tags         compliance
// @Security     Bearer
// @Produce      json
// @Param        live  query  bool  false  "Servir la instantánea auto-refrescada del poller"
// @Success      200  {object}  dto.ComplianceReportResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/compliance/report [get]
func (h *ComplianceHandler) Report(c *fiber.Ctx) error {
	if c.QueryBool("live") && h.reportPoller != nil && !h.reportPoller.Loading() {
		snap, fetchedAt, _ := h.reportPoller.Snapshot()
		snap.GeneratedAt = fetchedAt
		return c.JSON(snap)
	}
	out, err := h.uc.Report(GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReportPDF godoc
// @Summary      Exportar el reporte de cumplimiento a PDF
// @Tags         compliance
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/compliance/report/pdf [get]
func (h *ComplianceHandler) ReportPDF(c *fiber.Ctx) error {
	report, err := h.uc.Report(GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	bytes, err := h.pdf.GenerateCompliancePDF(c.UserContext(), *report)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="compliance-report.pdf"`)
	return c.Send(bytes)
}

// Overview godoc
// @Summary      Vista reconciliada de alertas y renovaciones
// @Description  Sirve la última instantánea buena del poller; si el último ciclo falló se marca stale.
// @Tags         compliance
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ComplianceOverviewResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/compliance/overview [get]
func (h *ComplianceHandler) Overview(c *fiber.Ctx) error {
	if h.overviewPoller == nil || h.overviewPoller.Loading() {
		// Todavía no hay instantánea: camino directo a la base.
		out, err := h.uc.Overview(c.UserContext())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
	snap, fetchedAt, _ := h.overviewPoller.Snapshot()
	snap.FetchedAt = fetchedAt
	snap.Stale = h.overviewPoller.Stale()
	return c.JSON(snap)
}

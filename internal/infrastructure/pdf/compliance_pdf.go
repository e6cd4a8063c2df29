// Package pdf implementa la exportación del Reporte de Cumplimiento a PDF
// (uso vs. propiedad por licencia, con el estado derivado de cada una).
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/slms-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 37, Green: 99, Blue: 235}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 220, Green: 38, Blue: 38}
	colorOK      = &props.Color{Red: 22, Green: 163, Blue: 74}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// CompliancePDFGenerator genera la versión imprimible del reporte usando Maroto v2.
type CompliancePDFGenerator struct{}

// NewCompliancePDFGenerator construye el generador.
func NewCompliancePDFGenerator() *CompliancePDFGenerator { return &CompliancePDFGenerator{} }

// GenerateCompliancePDF genera el PDF y devuelve sus bytes.
func (g *CompliancePDFGenerator) GenerateCompliancePDF(_ context.Context, report dto.ComplianceReportResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Compliance Report", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report.GeneratedAt))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range report.Rows {
		m.AddRows(licenseRow(r))
	}
	if len(report.Rows) == 0 {
		m.AddRows(row.New(8).Add(
			text.NewCol(12, "Sin datos de licencias.", props.Text{Align: align.Center, Color: colorGray}),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar PDF de cumplimiento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("SLMS — Compliance Report", props.Text{
				Size: 14, Style: fontstyle.Bold, Color: colorPrimary,
			}),
			text.New("Uso vs. propiedad por licencia", props.Text{
				Top: 7, Size: 8, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Size: 8, Style: fontstyle.Bold}
	return row.New(7).Add(
		text.NewCol(4, "Producto", header),
		text.NewCol(2, "Tipo", header),
		text.NewCol(2, "Entitlements", headerAligned(header)),
		text.NewCol(1, "Usadas", headerAligned(header)),
		text.NewCol(1, "Gap", headerAligned(header)),
		text.NewCol(2, "Estado", header),
	)
}

func headerAligned(p props.Text) props.Text {
	p.Align = align.Right
	return p
}

func licenseRow(r dto.ComplianceRowResponse) core.Row {
	statusColor := colorOK
	if r.Status == "Expired" || r.Status == "Overused" {
		statusColor = colorDanger
	}
	gapColor := colorGray
	if r.Gap < 0 {
		gapColor = colorDanger
	} else if r.Gap > 0 {
		gapColor = colorOK
	}
	return row.New(6).Add(
		text.NewCol(4, r.ProductName, props.Text{Size: 8}),
		text.NewCol(2, r.LicenseTypeName, props.Text{Size: 8, Color: colorGray}),
		text.NewCol(2, fmt.Sprintf("%d", r.TotalEntitlements), props.Text{Size: 8, Align: align.Right}),
		text.NewCol(1, fmt.Sprintf("%d", r.AssignedLicenses), props.Text{Size: 8, Align: align.Right}),
		text.NewCol(1, fmt.Sprintf("%+d", r.Gap), props.Text{Size: 8, Align: align.Right, Color: gapColor}),
		text.NewCol(2, r.Status, props.Text{Size: 8, Style: fontstyle.Bold, Color: statusColor}),
	)
}

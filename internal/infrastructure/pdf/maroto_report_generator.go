// Package pdf implementa la exportación del estado de resultados anual con
// Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa  │  Estado de Resultados <año>             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Concepto | Año | Año anterior | % Ingresos | Δ      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLES: gastos por tipo y ingresos por contraparte       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contabilidad-api/internal/application/usecase"
	"github.com/jhoicas/Contabilidad-api/internal/domain/report"
)

// Asegura que MarotoReportGenerator implementa usecase.PLReportRenderer.
var _ usecase.PLReportRenderer = (*MarotoReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportGenerator genera el PDF del estado de resultados usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) Render(companyName string, pl *report.AnnualPL) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Estado de Resultados %d", pl.Year), true).
		WithAuthor(companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(companyName, pl))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(statementHeaderRow(pl))
	for _, r := range pl.Rows {
		m.AddRows(statementRow(r))
	}

	if pl.HasUnassignedExpenses {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New("Advertencia: hay gastos sin categoría asignada que no aparecen en las líneas del estado.", props.Text{
				Size: 7, Color: colorGray, Top: 2,
			}),
		)))
	}

	addDetailSection(m, "Costos directos", pl.DirectCostDetails)
	addDetailSection(m, "Gastos operativos", pl.OperatingExpenseDetails)
	addDetailSection(m, "Financieros / Otros", pl.FinancialOtherDetails)
	addDetailSection(m, "Impuestos", pl.TaxDetails)
	addIncomeSection(m, pl.IncomeDetails)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(companyName string, pl *report.AnnualPL) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("ESTADO DE RESULTADOS", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d vs %d", pl.Year, pl.PriorYear), props.Text{
				Size: 10, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func statementHeaderRow(pl *report.AnnualPL) core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Align: align.Right}
	return row.New(7).Add(
		col.New(4).Add(text.New("Concepto", header)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", pl.Year), headerRight)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", pl.PriorYear), headerRight)),
		col.New(2).Add(text.New("% Ingresos", headerRight)),
		col.New(2).Add(text.New("Δ interanual", headerRight)),
	)
}

func statementRow(r report.StatementRow) core.Row {
	label := props.Text{Size: 8}
	value := props.Text{Size: 8, Align: align.Right}
	if r.Kind == report.RowKindSubtotal {
		label.Style = fontstyle.Bold
		value.Style = fontstyle.Bold
	}
	return row.New(6).Add(
		col.New(4).Add(text.New(r.Label, label)),
		col.New(2).Add(text.New(formatCents(r.Current), value)),
		col.New(2).Add(text.New(formatCents(r.Prior), value)),
		col.New(2).Add(text.New(formatRatio(r.ShareCurrent), value)),
		col.New(2).Add(text.New(formatRatio(r.Delta), value)),
	)
}

func addDetailSection(m core.Maroto, title string, details []report.ExpenseDetailRow) {
	if len(details) == 0 {
		return
	}
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3}),
	)))
	for _, d := range details {
		m.AddRows(row.New(5).Add(
			col.New(6).Add(text.New(d.Label, props.Text{Size: 8})),
			col.New(2).Add(text.New(formatCents(d.Current), props.Text{Size: 8, Align: align.Right})),
			col.New(2).Add(text.New(formatCents(d.Prior), props.Text{Size: 8, Align: align.Right, Color: colorGray})),
			col.New(2).Add(text.New(formatRatio(d.ShareCurrent), props.Text{Size: 8, Align: align.Right, Color: colorGray})),
		))
	}
}

func addIncomeSection(m core.Maroto, details []report.IncomeDetailRow) {
	if len(details) == 0 {
		return
	}
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Ingresos por contraparte", props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3}),
	)))
	for _, d := range details {
		m.AddRows(row.New(5).Add(
			col.New(8).Add(text.New(d.CounterpartyName, props.Text{Size: 8})),
			col.New(2).Add(text.New(formatCents(d.Current), props.Text{Size: 8, Align: align.Right})),
			col.New(2).Add(text.New(formatCents(d.Prior), props.Text{Size: 8, Align: align.Right, Color: colorGray})),
		))
	}
}

// ── Formato ───────────────────────────────────────────────────────────────────

// formatCents convierte centavos a una cifra con dos decimales.
func formatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}

// formatRatio presenta una razón como porcentaje; las indefinidas salen como guion.
func formatRatio(r report.Ratio) string {
	if !r.Defined {
		return "–"
	}
	return r.Value.Mul(decimal.NewFromInt(100)).StringFixed(1) + " %"
}

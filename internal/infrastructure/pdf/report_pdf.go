// Package pdf renderiza el reporte financiero de inventario a PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Valoración de Inventario + fecha de generación      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Artículo | Producto | Cant | P.Unit | Valor          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: valor total del inventario                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"strconv"

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

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/report"
)

var _ report.FinancialPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.FinancialPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// Generate genera el PDF del reporte financiero y devuelve sus bytes.
func (g *MarotoReportGenerator) Generate(_ context.Context, rep *dto.FinancialReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Valoración de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rep.Rows {
		m.AddRows(tableDetailRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(rep))

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func headerRow(rep *dto.FinancialReportDTO) core.Row {
	return row.New(12).Add(
		col.New(8).Add(
			text.New("Valoración de Inventario", props.Text{
				Size: 14, Style: fontstyle.Bold, Color: colorPrimary,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+rep.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 3,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary}
	return row.New(7).Add(
		col.New(2).Add(text.New("Artículo", header)),
		col.New(5).Add(text.New("Producto", header)),
		col.New(1).Add(text.New("Cant", propsRight(header))),
		col.New(2).Add(text.New("P. Unit", propsRight(header))),
		col.New(2).Add(text.New("Valor", propsRight(header))),
	)
}

func tableDetailRow(r dto.FinancialReportRowDTO) core.Row {
	cell := props.Text{Size: 8}
	return row.New(5).Add(
		col.New(2).Add(text.New(r.Article, cell)),
		col.New(5).Add(text.New(r.Name, cell)),
		col.New(1).Add(text.New(formatInt(r.Quantity), propsRight(cell))),
		col.New(2).Add(text.New(r.Price.StringFixed(2), propsRight(cell))),
		col.New(2).Add(text.New(r.TotalValue.StringFixed(2), propsRight(cell))),
	)
}

func totalRow(rep *dto.FinancialReportDTO) core.Row {
	return row.New(8).Add(
		col.New(8),
		col.New(2).Add(text.New("TOTAL", props.Text{
			Size: 10, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary,
		})),
		col.New(2).Add(text.New(rep.TotalValue.StringFixed(2), props.Text{
			Size: 10, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary,
		})),
	)
}

func propsRight(p props.Text) props.Text {
	p.Align = align.Right
	return p
}

func formatInt(n int) string {
	return strconv.Itoa(n)
}

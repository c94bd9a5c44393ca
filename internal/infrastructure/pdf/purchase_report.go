// Package pdf genera el reporte de una compra guardada.
//
// Layout de la página A4 horizontal:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│  HEADER: Proveedor            │  Compra N° + Fecha            │
//	│  ──────────────────────────────────────────────────────────  │
//	│  GASTOS: Envío / Extras / Bolsas / Factura física             │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Cant | Costo final | Precio | Margen | ... │
//	│  ──────────────────────────────────────────────────────────  │
//	│  RESUMEN: Inversión / Ganancia / Markup / Margen / Diferencia │
//	└──────────────────────────────────────────────────────────────┘
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
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/compras-api/internal/domain/compras"
	"github.com/jhoicas/compras-api/internal/domain/entity"
	"github.com/jhoicas/compras-api/pkg/numfmt"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// PurchaseReport genera el PDF de una compra con Maroto v2.
type PurchaseReport struct{}

// NewPurchaseReport construye el generador.
func NewPurchaseReport() *PurchaseReport { return &PurchaseReport{} }

// ContentType tipo MIME del reporte.
func (g *PurchaseReport) ContentType() string { return "application/pdf" }

// Extension extensión de archivo del reporte.
func (g *PurchaseReport) Extension() string { return "pdf" }

// Generate genera el PDF y devuelve sus bytes.
func (g *PurchaseReport) Generate(p *entity.Purchase) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("pdf: compra nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Compra %d", p.SequenceID), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(costsRow(p.ExtraCosts))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableItemRows(p.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(p))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(p *entity.Purchase) core.Row {
	fecha := "—"
	if !p.CreatedAt.IsZero() {
		fecha = p.CreatedAt.Local().Format("02/01/2006")
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New(nonEmpty(p.Supplier, "Proveedor sin nombre"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d productos · %s unidades", p.TotalItems, formatQty(p.TotalUnits)), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("COMPRA N° %d", p.SequenceID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func costsRow(c entity.PurchaseCosts) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("GASTOS COMPARTIDOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Envío: %s   |   Extra 1: %s   |   Extra 2: %s   |   Bolsas: %s   |   Factura física: %s",
				formatMoney(c.Shipping), formatMoney(c.Extra1), formatMoney(c.Extra2),
				formatMoney(c.BagFee), formatMoney(c.PhysicalInvoiceTotal),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 3, align.Left),
		h("Cant.", 1, align.Center),
		h("Costo final", 2, align.Right),
		h("Precio venta", 2, align.Right),
		h("Margen", 1, align.Center),
		h("Mín. venta", 1, align.Center),
		h("Ganancia total", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableItemRows una fila por producto; el margen va con el color de su banda.
func tableItemRows(items []entity.PurchaseItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		rgb := compras.MarginBand(it.Band).Color()
		bandColor := &props.Color{Red: rgb.R, Green: rgb.G, Blue: rgb.B}

		name := it.ProductName
		if it.Brand != "" {
			name += " (" + it.Brand + ")"
		}
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(formatQty(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatMoney(it.FinalUnitCost), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatMoney(it.SalePrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(formatPercent(it.MarginPercent), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: bandColor,
			})),
			col.New(1).Add(text.New(formatQty(it.MinimumUnitsToBreakEven), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatMoney(it.ProjectedTotalProfit), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func summaryRow(p *entity.Purchase) core.Row {
	s := p.Summary
	label := func(v string) core.Component {
		return text.New(v, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(v string) core.Component {
		return text.New(v, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(34).Add(
		col.New(6),
		col.New(3).Add(
			label("Total compra:"),
			label("Inversión total:"),
			label("Ganancia proyectada:"),
			label("Ganancia realizada:"),
			label("Markup / Margen:"),
			label("Diferencia vs factura:"),
		),
		col.New(3).Add(
			value(formatMoney(s.TotalPurchaseCost)),
			value(formatMoney(s.TotalInvestment)),
			value(formatMoney(s.TotalProjectedProfit)),
			value(formatMoney(s.TotalRealizedProfit)),
			value(formatPercent(s.MarkupPercent)+" / "+formatPercent(s.MarginPercent)),
			value(formatMoney(s.ReconciliationDifference)),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func formatMoney(v float64) string   { return numfmt.Money(decimal.NewFromFloat(v)) }
func formatPercent(v float64) string { return numfmt.Percent(decimal.NewFromFloat(v)) }
func formatQty(v float64) string     { return numfmt.Qty(decimal.NewFromFloat(v)) }

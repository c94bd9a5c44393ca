// Package xlsx exporta una compra guardada a una hoja de cálculo con excelize.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/compras-api/internal/domain/compras"
	"github.com/jhoicas/compras-api/internal/domain/entity"
)

const (
	sheetItems   = "Productos"
	sheetSummary = "Resumen"
)

var itemHeaders = []string{
	"Ref", "Producto", "Marca", "Cantidad", "Costo total", "Precio venta", "Vendidos",
	"Costo unitario", "Costo con gastos", "Costo final", "Margen %", "Banda",
	"Mínimo venta", "Ganancia unidad", "Ganancia total", "Ganancia real", "Stock", "Facturado",
}

// PurchaseExport genera el libro XLSX de una compra.
type PurchaseExport struct{}

// NewPurchaseExport construye el exportador.
func NewPurchaseExport() *PurchaseExport { return &PurchaseExport{} }

// ContentType tipo MIME del libro.
func (e *PurchaseExport) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension extensión de archivo del libro.
func (e *PurchaseExport) Extension() string { return "xlsx" }

// Generate arma las hojas Productos y Resumen y devuelve el archivo en memoria.
func (e *PurchaseExport) Generate(p *entity.Purchase) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("xlsx: compra nil")
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetItems); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if err := writeItems(f, p.Items); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja resumen: %w", err)
	}
	if err := writeSummary(f, p); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeItems(f *excelize.File, items []entity.PurchaseItem) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#00467F"}},
	})
	if err != nil {
		return fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}
	if err := f.SetSheetRow(sheetItems, "A1", &itemHeaders); err != nil {
		return fmt.Errorf("xlsx: cabecera: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(itemHeaders), 1)
	if err := f.SetCellStyle(sheetItems, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}

	bandStyles := map[compras.MarginBand]int{}
	for i, it := range items {
		r := i + 2
		band := compras.MarginBand(it.Band)
		values := []any{
			it.ExternalRef, it.ProductName, it.Brand, it.Quantity, it.LineTotalCost, it.SalePrice, it.UnitsSold,
			it.BaseUnitCost, it.TotalWithSharedCosts, it.FinalUnitCost, it.MarginPercent, band.Label(),
			it.MinimumUnitsToBreakEven, it.ProfitPerUnit, it.ProjectedTotalProfit, it.RealizedTotalProfit,
			it.RemainingStock, it.RealizedRevenue,
		}
		start, _ := excelize.CoordinatesToCellName(1, r)
		if err := f.SetSheetRow(sheetItems, start, &values); err != nil {
			return fmt.Errorf("xlsx: fila %d: %w", r, err)
		}

		style, ok := bandStyles[band]
		if !ok {
			style, err = f.NewStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#" + band.Color().Hex()}},
			})
			if err != nil {
				return fmt.Errorf("xlsx: estilo banda: %w", err)
			}
			bandStyles[band] = style
		}
		marginCell, _ := excelize.CoordinatesToCellName(11, r)
		bandCell, _ := excelize.CoordinatesToCellName(12, r)
		if err := f.SetCellStyle(sheetItems, marginCell, bandCell, style); err != nil {
			return fmt.Errorf("xlsx: estilo fila %d: %w", r, err)
		}
	}
	return f.SetColWidth(sheetItems, "B", "B", 32)
}

func writeSummary(f *excelize.File, p *entity.Purchase) error {
	s := p.Summary
	rows := [][]any{
		{"Compra N°", p.SequenceID},
		{"Proveedor", p.Supplier},
		{"Productos", p.TotalItems},
		{"Unidades", p.TotalUnits},
		{"Envío", p.ExtraCosts.Shipping},
		{"Extra 1", p.ExtraCosts.Extra1},
		{"Extra 2", p.ExtraCosts.Extra2},
		{"Bolsas", p.ExtraCosts.BagFee},
		{"Factura física", p.ExtraCosts.PhysicalInvoiceTotal},
		{"Gasto por unidad", s.PerUnitSharedCost},
		{"Total compra", s.TotalPurchaseCost},
		{"Inversión total", s.TotalInvestment},
		{"Ganancia proyectada", s.TotalProjectedProfit},
		{"Ganancia realizada", s.TotalRealizedProfit},
		{"Total facturado", s.TotalRealizedRevenue},
		{"Diferencia vs factura", s.ReconciliationDifference},
		{"Markup %", s.MarkupPercent},
		{"Margen %", s.MarginPercent},
	}
	for i, values := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheetSummary, cell, &values); err != nil {
			return fmt.Errorf("xlsx: resumen fila %d: %w", i+1, err)
		}
	}
	return f.SetColWidth(sheetSummary, "A", "A", 24)
}

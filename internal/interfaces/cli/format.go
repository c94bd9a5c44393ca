package cli

import (
	"fmt"
	"io"

	"github.com/jhoicas/compras-api/internal/domain/compras"
	"github.com/jhoicas/compras-api/pkg/numfmt"
)

var (
	printer = numfmt.Printer()
	money   = numfmt.Money
	pct     = numfmt.Percent
	qty     = numfmt.Qty
)

// printResult imprime el detalle por línea y el resumen de la compra.
func printResult(w io.Writer, inv *compras.PurchaseInvoice, res compras.Result) {
	fmt.Fprintf(w, "Compra %d · %s\n\n", inv.SequenceID, inv.SupplierName)
	printer.Fprintf(w, "%-28s %8s %14s %14s %8s %-10s %6s %14s\n",
		"Producto", "Cant.", "Costo final", "Precio", "Margen", "Banda", "Mín.", "Ganancia")
	for i, lr := range res.Lines {
		l := inv.Lines[i]
		if l.IsBlank() {
			continue
		}
		printer.Fprintf(w, "%-28s %8s %14s %14s %8s %-10s %6s %14s\n",
			truncate(l.ProductName, 28), qty(lr.Quantity), money(lr.FinalUnitCost), money(lr.SalePrice),
			pct(lr.MarginPercent), lr.Band.Label(), qty(lr.MinimumUnitsToBreakEven), money(lr.ProjectedTotalProfit))
	}

	s := res.Summary
	fmt.Fprintf(w, "\nProductos: %d   Unidades: %s   Gasto por unidad: %s\n", s.ItemCount, qty(s.TotalUnits), money(s.PerUnitSharedCost))
	printer.Fprintf(w, "Total compra:        %s\n", money(s.TotalPurchaseCost))
	printer.Fprintf(w, "Inversión total:     %s\n", money(s.TotalInvestment))
	printer.Fprintf(w, "Ganancia proyectada: %s\n", money(s.TotalProjectedProfit))
	printer.Fprintf(w, "Ganancia realizada:  %s\n", money(s.TotalRealizedProfit))
	printer.Fprintf(w, "Markup / Margen:     %s / %s\n", pct(s.MarkupPercent), pct(s.MarginPercent))
	printer.Fprintf(w, "Diferencia factura:  %s\n", money(s.ReconciliationDifference))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

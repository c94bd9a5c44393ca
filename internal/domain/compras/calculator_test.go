package compras_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/compras-api/internal/domain/compras"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "%s: se esperaba %s, se obtuvo %s", msg, want, got)
}

func linea(nombre, cantidad, costo, precio, vendidos string) compras.PurchaseLine {
	l := compras.NewPurchaseLine()
	l.ProductName = nombre
	l.PurchasedQuantity = cantidad
	l.LineTotalCost = costo
	l.SalePrice = precio
	l.UnitsSold = vendidos
	return l
}

func TestCalculate_RepartoDeGastosPorUnidad(t *testing.T) {
	inv := compras.NewPurchaseInvoice(101)
	inv.Shared = compras.SharedCostsInput{Shipping: "10", Extra1: "0", Extra2: "0", BagFee: "5"}
	inv.Lines = []compras.PurchaseLine{
		linea("Taza", "2", "20", "30", "1"),
		linea("Plato", "3", "30", "25", "0"),
	}

	res := compras.Calculate(inv)
	s := res.Summary

	assertDec(t, "10", s.DistributableSharedCosts, "distribuible")
	assertDec(t, "15", s.AllocatableSharedCosts, "repartible")
	assertDec(t, "5", s.TotalUnits, "unidades")
	assertDec(t, "3", s.PerUnitSharedCost, "gasto por unidad")

	require.Len(t, res.Lines, 2)
	assertDec(t, "26", res.Lines[0].TotalWithSharedCosts, "línea 1 con gastos")
	assertDec(t, "39", res.Lines[1].TotalWithSharedCosts, "línea 2 con gastos")
	assertDec(t, "10", res.Lines[0].BaseUnitCost, "costo unitario sin gastos")
	assertDec(t, "13", res.Lines[0].FinalUnitCost, "costo final")
	assertDec(t, "17", res.Lines[0].ProfitPerUnit, "ganancia por unidad")
	assertDec(t, "34", res.Lines[0].ProjectedTotalProfit, "ganancia proyectada")
	assertDec(t, "17", res.Lines[0].RealizedTotalProfit, "ganancia real")
	assertDec(t, "1", res.Lines[0].RemainingStock, "stock")
	assertDec(t, "30", res.Lines[0].RealizedRevenue, "facturado")
	assertDec(t, "1", res.Lines[0].MinimumUnitsToBreakEven, "mínimo de venta")
}

func TestCalculate_CantidadCeroNoDivide(t *testing.T) {
	inv := compras.NewPurchaseInvoice(1)
	inv.Lines = []compras.PurchaseLine{linea("Vacío", "0", "50", "10", "")}

	lr := compras.Calculate(inv).Lines[0]
	assert.True(t, lr.BaseUnitCost.IsZero())
	assert.True(t, lr.FinalUnitCost.IsZero())
	assertDec(t, "50", lr.TotalWithSharedCosts, "total con gastos")
	assertDec(t, "100", lr.MarginPercent, "margen sin costo unitario")
}

func TestCalculate_PrecioCero(t *testing.T) {
	inv := compras.NewPurchaseInvoice(1)
	inv.Lines = []compras.PurchaseLine{linea("Regalo", "4", "40", "", "")}

	lr := compras.Calculate(inv).Lines[0]
	assert.True(t, lr.MarginPercent.IsZero())
	assert.True(t, lr.MinimumUnitsToBreakEven.IsZero())
	assert.Equal(t, compras.BandCritical, lr.Band)
	assertDec(t, "-10", lr.ProfitPerUnit, "ganancia por unidad")
}

func TestCalculate_PuntoDeEquilibrio(t *testing.T) {
	inv := compras.NewPurchaseInvoice(1)
	inv.Lines = []compras.PurchaseLine{linea("Lámpara", "3", "100", "40", "")}

	lr := compras.Calculate(inv).Lines[0]
	assertDec(t, "100", lr.TotalWithSharedCosts, "total con gastos")
	assertDec(t, "3", lr.MinimumUnitsToBreakEven, "ceil(100/40)")
}

// El total de inversión suma envío y extras otra vez sobre el total de compra,
// que ya incluye bolsas. Se conserva tal cual.
func TestCalculate_TotalInversionSumaDistribuible(t *testing.T) {
	inv := compras.NewPurchaseInvoice(1)
	inv.Shared = compras.SharedCostsInput{Shipping: "10", Extra1: "4", Extra2: "6", BagFee: "5"}
	inv.PhysicalInvoiceTotal = "100"
	inv.Lines = []compras.PurchaseLine{
		linea("A", "2", "40", "40", "2"),
		linea("B", "3", "60", "30", "1"),
	}

	s := compras.Calculate(inv).Summary
	assertDec(t, "105", s.TotalPurchaseCost, "total compra = líneas + bolsas")
	assertDec(t, "125", s.TotalInvestment, "inversión = compra + distribuible")
	assertDec(t, "5", s.ReconciliationDifference, "diferencia con factura física")
	assertDec(t, "110", s.TotalRealizedRevenue, "facturado")

	// reparto: 25 / 5 unidades = 5 por unidad
	// A: costo final 25, ganancia 15*2 = 30; B: costo final 25, ganancia 5*3 = 15
	assertDec(t, "45", s.TotalProjectedProfit, "ganancia proyectada")
	assertDec(t, "35", s.TotalRealizedProfit, "ganancia real")
	assertDec(t, "36", s.MarkupPercent, "markup = 45/125")
	assert.True(t, s.MarginPercent.Sub(dec("26.4705882352941176")).Abs().LessThan(dec("0.0000001")),
		"margen = 45/170, obtenido %s", s.MarginPercent)
}

func TestCalculate_SinUnidadesNiInversion(t *testing.T) {
	inv := compras.NewPurchaseInvoice(1)
	inv.Shared.Shipping = "20"
	s := compras.Calculate(inv).Summary
	assert.True(t, s.PerUnitSharedCost.IsZero())
	assert.True(t, s.TotalUnits.IsZero())
	assertDec(t, "20", s.TotalInvestment, "inversión")
	assert.True(t, s.MarkupPercent.IsZero())
	assert.True(t, s.MarginPercent.IsZero())
	assert.Equal(t, 0, s.ItemCount)
}

func TestCalculate_StockNegativoNoSeRecorta(t *testing.T) {
	inv := compras.NewPurchaseInvoice(1)
	inv.Lines = []compras.PurchaseLine{linea("Sobreventa", "2", "10", "10", "5")}
	assertDec(t, "-3", compras.Calculate(inv).Lines[0].RemainingStock, "stock")
}

func TestCalculate_ConteoDeItems(t *testing.T) {
	inv := compras.NewPurchaseInvoice(1)
	inv.AddLine()
	inv.Lines[0].Brand = "Acme"
	inv.Lines[1].SalePrice = "100" // el precio no cuenta para el ítem
	inv.Lines[2].PurchasedQuantity = "0"

	s := compras.Calculate(inv).Summary
	assert.Equal(t, 2, s.ItemCount)
	assert.Len(t, compras.Calculate(inv).Lines, 3)
}

func TestCalculate_SeparadoresDecimales(t *testing.T) {
	inv := compras.NewPurchaseInvoice(1)
	inv.Shared.BagFee = "1,5"
	inv.Lines = []compras.PurchaseLine{linea("Caja", "3", "1.234,50", "600", "")}

	res := compras.Calculate(inv)
	assertDec(t, "1236", res.Summary.TotalPurchaseCost, "1234.5 + 1.5")
	assertDec(t, "0.5", res.Summary.PerUnitSharedCost, "1.5 / 3")
}

// 20/3 no es exacto: la parte de la línea debe volver a 20 y el mínimo de venta
// no puede subir una unidad por residuo.
func TestCalculate_RepartoPeriodicoSinResiduo(t *testing.T) {
	casos := []struct {
		precio string
		minimo string
	}{
		{"1", "120"},
		{"2", "60"},
		{"40", "3"},
		{"41", "3"},
	}
	for _, c := range casos {
		t.Run("precio "+c.precio, func(t *testing.T) {
			inv := compras.NewPurchaseInvoice(1)
			inv.Shared.Shipping = "20"
			inv.Lines = []compras.PurchaseLine{linea("Vela", "3", "100", c.precio, "")}

			lr := compras.Calculate(inv).Lines[0]
			assertDec(t, "120", lr.TotalWithSharedCosts, "total con gastos")
			assertDec(t, "40", lr.FinalUnitCost, "costo final")
			assertDec(t, c.minimo, lr.MinimumUnitsToBreakEven, "mínimo de venta")
		})
	}
}

func TestCalculate_BandaEnElLimiteConRepartoPeriodico(t *testing.T) {
	inv := compras.NewPurchaseInvoice(1)
	inv.Shared.Shipping = "20"
	inv.Lines = []compras.PurchaseLine{linea("Vela", "3", "100", "50", "")}

	lr := compras.Calculate(inv).Lines[0]
	assertDec(t, "20", lr.MarginPercent, "margen (50-40)/50")
	assert.Equal(t, compras.BandLow, lr.Band)
}

func TestCalculate_PartesPeriodicasSumanLoRepartible(t *testing.T) {
	inv := compras.NewPurchaseInvoice(1)
	inv.Shared.Shipping = "20"
	inv.Lines = []compras.PurchaseLine{
		linea("A", "1", "10", "", ""),
		linea("B", "2", "20", "", ""),
	}

	res := compras.Calculate(inv)
	assertDec(t, "16.6666666667", res.Lines[0].TotalWithSharedCosts, "A")
	assertDec(t, "33.3333333333", res.Lines[1].TotalWithSharedCosts, "B")
	suma := res.Lines[0].TotalWithSharedCosts.Add(res.Lines[1].TotalWithSharedCosts)
	assertDec(t, "50", suma, "costos + envío")
	assertDec(t, "6.6666666667", res.Summary.PerUnitSharedCost, "gasto por unidad")
}

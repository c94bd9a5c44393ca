package compras

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// scale decimales con los que se fijan los valores derivados de una división.
// Absorbe el residuo de DivisionPrecision antes de Ceil y de comparar bandas.
const scale = 10

// SharedCosts gastos compartidos ya interpretados.
type SharedCosts struct {
	Shipping decimal.Decimal
	Extra1   decimal.Decimal
	Extra2   decimal.Decimal
	BagFee   decimal.Decimal
}

// Parse interpreta los gastos digitados.
func (s SharedCostsInput) Parse() SharedCosts {
	return SharedCosts{
		Shipping: ParseNumber(s.Shipping),
		Extra1:   ParseNumber(s.Extra1),
		Extra2:   ParseNumber(s.Extra2),
		BagFee:   ParseNumber(s.BagFee),
	}
}

// Distributable envío + extra1 + extra2 (sin bolsas).
func (s SharedCosts) Distributable() decimal.Decimal {
	return s.Shipping.Add(s.Extra1).Add(s.Extra2)
}

// Allocatable lo que se reparte por unidad: distribuible + bolsas.
func (s SharedCosts) Allocatable() decimal.Decimal {
	return s.Distributable().Add(s.BagFee)
}

// LineResult valores derivados de una fila.
type LineResult struct {
	Index int

	Quantity      decimal.Decimal
	LineTotalCost decimal.Decimal
	SalePrice     decimal.Decimal
	UnitsSold     decimal.Decimal

	BaseUnitCost            decimal.Decimal // costo unitario sin gastos
	TotalWithSharedCosts    decimal.Decimal
	FinalUnitCost           decimal.Decimal
	MarginPercent           decimal.Decimal
	Band                    MarginBand
	MinimumUnitsToBreakEven decimal.Decimal
	ProfitPerUnit           decimal.Decimal
	ProjectedTotalProfit    decimal.Decimal // supone venta de toda la cantidad comprada
	RealizedTotalProfit     decimal.Decimal // sobre unidades vendidas
	RemainingStock          decimal.Decimal // puede ser negativo
	RealizedRevenue         decimal.Decimal
}

// Summary agregados de la compra.
type Summary struct {
	Shared                   SharedCosts
	DistributableSharedCosts decimal.Decimal
	AllocatableSharedCosts   decimal.Decimal
	PerUnitSharedCost        decimal.Decimal

	TotalPurchaseCost        decimal.Decimal
	TotalInvestment          decimal.Decimal
	TotalProjectedProfit     decimal.Decimal
	TotalRealizedProfit      decimal.Decimal
	TotalRealizedRevenue     decimal.Decimal
	PhysicalInvoiceTotal     decimal.Decimal
	ReconciliationDifference decimal.Decimal
	MarkupPercent            decimal.Decimal
	MarginPercent            decimal.Decimal

	ItemCount  int
	TotalUnits decimal.Decimal
}

// Result cálculo completo de una compra.
type Result struct {
	Lines   []LineResult
	Summary Summary
}

// Calculate reparte los gastos compartidos por unidad y deriva costos, márgenes y totales.
// Nunca falla: toda división por cero vale 0.
func Calculate(inv *PurchaseInvoice) Result {
	shared := inv.Shared.Parse()
	distributable := shared.Distributable()
	allocatable := shared.Allocatable()

	totalUnits := decimal.Zero
	for _, l := range inv.Lines {
		totalUnits = totalUnits.Add(ParseNumber(l.PurchasedQuantity))
	}
	perUnitShared := decimal.Zero
	if totalUnits.IsPositive() {
		perUnitShared = allocatable.Div(totalUnits).Round(scale)
	}

	res := Result{Lines: make([]LineResult, 0, len(inv.Lines))}
	sumLineCost := decimal.Zero
	s := &res.Summary
	for i, l := range inv.Lines {
		lr := calculateLine(l, allocatable, totalUnits)
		lr.Index = i
		res.Lines = append(res.Lines, lr)

		sumLineCost = sumLineCost.Add(lr.LineTotalCost)
		s.TotalRealizedRevenue = s.TotalRealizedRevenue.Add(lr.RealizedRevenue)
		s.TotalProjectedProfit = s.TotalProjectedProfit.Add(lr.ProjectedTotalProfit)
		s.TotalRealizedProfit = s.TotalRealizedProfit.Add(lr.RealizedTotalProfit)
		if !l.IsBlank() {
			s.ItemCount++
		}
	}

	s.Shared = shared
	s.DistributableSharedCosts = distributable
	s.AllocatableSharedCosts = allocatable
	s.PerUnitSharedCost = perUnitShared
	s.TotalUnits = totalUnits
	s.TotalPurchaseCost = sumLineCost.Add(shared.BagFee)
	// envío y extras se suman otra vez sobre el total de compra
	s.TotalInvestment = s.TotalPurchaseCost.Add(distributable)
	s.PhysicalInvoiceTotal = ParseNumber(inv.PhysicalInvoiceTotal)
	s.ReconciliationDifference = s.TotalPurchaseCost.Sub(s.PhysicalInvoiceTotal)
	if s.TotalInvestment.IsPositive() {
		s.MarkupPercent = s.TotalProjectedProfit.Div(s.TotalInvestment).Mul(hundred)
	}
	if revenue := s.TotalInvestment.Add(s.TotalProjectedProfit); revenue.IsPositive() {
		s.MarginPercent = s.TotalProjectedProfit.Div(revenue).Mul(hundred)
	}
	return res
}

// calculateLine la parte de gastos de la línea es repartible*cantidad/unidades,
// multiplicando antes de dividir.
func calculateLine(l PurchaseLine, allocatable, totalUnits decimal.Decimal) LineResult {
	qty := ParseNumber(l.PurchasedQuantity)
	cost := ParseNumber(l.LineTotalCost)
	price := ParseNumber(l.SalePrice)
	sold := ParseNumber(l.UnitsSold)

	lr := LineResult{
		Quantity:      qty,
		LineTotalCost: cost,
		SalePrice:     price,
		UnitsSold:     sold,
	}
	lr.TotalWithSharedCosts = cost
	if totalUnits.IsPositive() {
		share := allocatable.Mul(qty).Div(totalUnits)
		lr.TotalWithSharedCosts = cost.Add(share).Round(scale)
	}
	if qty.IsPositive() {
		lr.BaseUnitCost = cost.Div(qty).Round(scale)
		lr.FinalUnitCost = lr.TotalWithSharedCosts.Div(qty).Round(scale)
	}
	if price.IsPositive() {
		lr.MarginPercent = price.Sub(lr.FinalUnitCost).Mul(hundred).Div(price).Round(scale)
		lr.MinimumUnitsToBreakEven = lr.TotalWithSharedCosts.Div(price).Round(scale).Ceil()
	}
	lr.Band = ClassifyMargin(lr.MarginPercent)
	lr.ProfitPerUnit = price.Sub(lr.FinalUnitCost)
	lr.ProjectedTotalProfit = lr.ProfitPerUnit.Mul(qty)
	lr.RealizedTotalProfit = lr.ProfitPerUnit.Mul(sold)
	lr.RemainingStock = qty.Sub(sold)
	lr.RealizedRevenue = sold.Mul(price)
	return lr
}

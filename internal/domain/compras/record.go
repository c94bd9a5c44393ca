package compras

import (
	"github.com/jhoicas/compras-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ToRecord arma el documento a persistir con la foto calculada de la compra.
func ToRecord(inv *PurchaseInvoice, res Result) *entity.Purchase {
	s := res.Summary
	rec := &entity.Purchase{
		ID:         inv.ID,
		SequenceID: inv.SequenceID,
		Supplier:   inv.SupplierName,
		TotalItems: s.ItemCount,
		TotalUnits: f64(s.TotalUnits),
		ExtraCosts: entity.PurchaseCosts{
			Shipping:             f64(s.Shared.Shipping),
			Extra1:               f64(s.Shared.Extra1),
			Extra2:               f64(s.Shared.Extra2),
			BagFee:               f64(s.Shared.BagFee),
			PhysicalInvoiceTotal: f64(s.PhysicalInvoiceTotal),
		},
		Summary: entity.PurchaseSummary{
			TotalPurchaseCost:        f64(s.TotalPurchaseCost),
			TotalInvestment:          f64(s.TotalInvestment),
			TotalProjectedProfit:     f64(s.TotalProjectedProfit),
			TotalRealizedProfit:      f64(s.TotalRealizedProfit),
			TotalRealizedRevenue:     f64(s.TotalRealizedRevenue),
			ReconciliationDifference: f64(s.ReconciliationDifference),
			MarkupPercent:            f64(s.MarkupPercent),
			MarginPercent:            f64(s.MarginPercent),
			PerUnitSharedCost:        f64(s.PerUnitSharedCost),
		},
		Items:     make([]entity.PurchaseItem, 0, len(inv.Lines)),
		CreatedAt: inv.CreatedAt,
	}
	for i, l := range inv.Lines {
		lr := res.Lines[i]
		item := entity.PurchaseItem{
			ExternalRef:             l.ExternalRef,
			ProductName:             l.ProductName,
			Brand:                   l.Brand,
			Quantity:                f64(lr.Quantity),
			LineTotalCost:           f64(lr.LineTotalCost),
			SalePrice:               f64(lr.SalePrice),
			UnitsSold:               f64(lr.UnitsSold),
			Counted:                 !l.IsBlank(),
			BaseUnitCost:            f64(lr.BaseUnitCost),
			TotalWithSharedCosts:    f64(lr.TotalWithSharedCosts),
			FinalUnitCost:           f64(lr.FinalUnitCost),
			MarginPercent:           f64(lr.MarginPercent),
			Band:                    string(lr.Band),
			MinimumUnitsToBreakEven: f64(lr.MinimumUnitsToBreakEven),
			ProfitPerUnit:           f64(lr.ProfitPerUnit),
			ProjectedTotalProfit:    f64(lr.ProjectedTotalProfit),
			RealizedTotalProfit:     f64(lr.RealizedTotalProfit),
			RemainingStock:          f64(lr.RemainingStock),
			RealizedRevenue:         f64(lr.RealizedRevenue),
		}
		if len(l.CompetitorPrices) > 0 {
			item.CompetitorPrices = make(map[string]string, len(l.CompetitorPrices))
			for c, v := range l.CompetitorPrices {
				item.CompetitorPrices[string(c)] = v
			}
		}
		rec.Items = append(rec.Items, item)
	}
	return rec
}

// FromRecord rehidrata una compra guardada para seguir editándola.
// Campos ausentes quedan como en una fila vacía.
func FromRecord(rec *entity.Purchase) *PurchaseInvoice {
	inv := &PurchaseInvoice{
		ID:           rec.ID,
		SequenceID:   rec.SequenceID,
		SupplierName: rec.Supplier,
		Shared: SharedCostsInput{
			Shipping: FormatNumber(rec.ExtraCosts.Shipping),
			Extra1:   FormatNumber(rec.ExtraCosts.Extra1),
			Extra2:   FormatNumber(rec.ExtraCosts.Extra2),
			BagFee:   FormatNumber(rec.ExtraCosts.BagFee),
		},
		PhysicalInvoiceTotal: FormatNumber(rec.ExtraCosts.PhysicalInvoiceTotal),
		Lines:                make([]PurchaseLine, 0, len(rec.Items)),
		CreatedAt:            rec.CreatedAt,
	}
	for _, it := range rec.Items {
		l := NewPurchaseLine()
		l.ExternalRef = it.ExternalRef
		l.ProductName = it.ProductName
		l.Brand = it.Brand
		l.PurchasedQuantity = FormatNumber(it.Quantity)
		l.LineTotalCost = FormatNumber(it.LineTotalCost)
		l.SalePrice = FormatNumber(it.SalePrice)
		l.UnitsSold = FormatNumber(it.UnitsSold)
		// 0 vuelve como texto vacío; una fila contada no puede quedar en blanco.
		if it.Counted && l.IsBlank() {
			l.PurchasedQuantity = "0"
		}
		for c, v := range it.CompetitorPrices {
			if IsCompetitor(Competitor(c)) {
				l.CompetitorPrices[Competitor(c)] = v
			}
		}
		inv.Lines = append(inv.Lines, l)
	}
	if len(inv.Lines) == 0 {
		inv.Lines = []PurchaseLine{NewPurchaseLine(), NewPurchaseLine()}
	}
	return inv
}

func f64(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

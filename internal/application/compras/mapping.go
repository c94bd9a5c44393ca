package compras

import (
	"fmt"

	"github.com/jhoicas/compras-api/internal/application/dto"
	"github.com/jhoicas/compras-api/internal/domain"
	"github.com/jhoicas/compras-api/internal/domain/compras"
	"github.com/jhoicas/compras-api/internal/domain/entity"
)

// InvoiceFromRequest arma la compra en edición a partir de la petición HTTP.
// Una petición sin productos queda con las dos filas vacías de una compra nueva.
func InvoiceFromRequest(in dto.PurchaseRequest) (*compras.PurchaseInvoice, error) {
	inv := compras.NewPurchaseInvoice(in.SequenceID)
	inv.ID = in.ID
	inv.SupplierName = in.Supplier
	inv.Shared = compras.SharedCostsInput{
		Shipping: string(in.Shipping),
		Extra1:   string(in.Extra1),
		Extra2:   string(in.Extra2),
		BagFee:   string(in.BagFee),
	}
	inv.PhysicalInvoiceTotal = string(in.PhysicalInvoiceTotal)
	if len(in.Lines) == 0 {
		return inv, nil
	}

	inv.Lines = make([]compras.PurchaseLine, 0, len(in.Lines))
	for i, l := range in.Lines {
		line := compras.NewPurchaseLine()
		line.ExternalRef = l.ExternalRef
		line.ProductName = l.ProductName
		line.Brand = l.Brand
		line.PurchasedQuantity = string(l.Quantity)
		line.LineTotalCost = string(l.LineTotalCost)
		line.SalePrice = string(l.SalePrice)
		line.UnitsSold = string(l.UnitsSold)
		for name, price := range l.CompetitorPrices {
			c := compras.Competitor(name)
			if !compras.IsCompetitor(c) {
				return nil, fmt.Errorf("%w: fila %d: competidor desconocido %q", domain.ErrInvalidInput, i+1, name)
			}
			line.CompetitorPrices[c] = price
		}
		inv.Lines = append(inv.Lines, line)
	}
	return inv, nil
}

// ListItem resume un documento guardado para los listados.
func ListItem(p *entity.Purchase) dto.PurchaseListItem {
	item := dto.PurchaseListItem{
		ID:              p.ID,
		SequenceID:      p.SequenceID,
		Supplier:        p.Supplier,
		TotalItems:      p.TotalItems,
		TotalInvestment: p.Summary.TotalInvestment,
		MarginPercent:   p.Summary.MarginPercent,
	}
	if !p.CreatedAt.IsZero() {
		item.CreatedAt = p.CreatedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return item
}

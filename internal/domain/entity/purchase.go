package entity

import "time"

// Purchase es el documento persistido de una compra (colección "compras").
// Todos los montos llegan ya calculados; el backend nunca recibe texto digitado.
type Purchase struct {
	ID         string          `json:"_id,omitempty"`
	SequenceID int             `json:"idCompra"`
	Supplier   string          `json:"proveedor"`
	TotalItems int             `json:"totalItems"`
	TotalUnits float64         `json:"totalUnidades"`
	ExtraCosts PurchaseCosts   `json:"gastosExtras"`
	Summary    PurchaseSummary `json:"resumen"`
	Items      []PurchaseItem  `json:"productos"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  *time.Time      `json:"updatedAt,omitempty"`
}

// PurchaseCosts gastos compartidos de la compra.
type PurchaseCosts struct {
	Shipping             float64 `json:"envio"`
	Extra1               float64 `json:"extra1"`
	Extra2               float64 `json:"extra2"`
	BagFee               float64 `json:"bolsas"`
	PhysicalInvoiceTotal float64 `json:"facturaFisica"`
}

// PurchaseSummary foto de los agregados al momento de guardar.
type PurchaseSummary struct {
	TotalPurchaseCost        float64 `json:"totalCompra"`
	TotalInvestment          float64 `json:"totalInversion"`
	TotalProjectedProfit     float64 `json:"gananciaTotal"`
	TotalRealizedProfit      float64 `json:"gananciaReal"`
	TotalRealizedRevenue     float64 `json:"totalFacturado"`
	ReconciliationDifference float64 `json:"diferencia"`
	MarkupPercent            float64 `json:"markup"`
	MarginPercent            float64 `json:"margen"`
	PerUnitSharedCost        float64 `json:"gastoPorUnidad"`
}

// PurchaseItem línea de producto con sus valores derivados embebidos.
type PurchaseItem struct {
	ExternalRef      string            `json:"ref"`
	ProductName      string            `json:"producto"`
	Brand            string            `json:"marca"`
	Quantity         float64           `json:"cantidad"`
	LineTotalCost    float64           `json:"costoTotal"`
	SalePrice        float64           `json:"precioVenta"`
	UnitsSold        float64           `json:"vendidos"`
	CompetitorPrices map[string]string `json:"competencia,omitempty"`

	// Counted la fila cuenta en totalItems aunque todos sus números valgan 0.
	Counted bool `json:"contado,omitempty"`

	BaseUnitCost            float64 `json:"costoUnitario"`
	TotalWithSharedCosts    float64 `json:"costoConGastos"`
	FinalUnitCost           float64 `json:"costoFinal"`
	MarginPercent           float64 `json:"margen"`
	Band                    string  `json:"banda"`
	MinimumUnitsToBreakEven float64 `json:"minimoVenta"`
	ProfitPerUnit           float64 `json:"gananciaUnidad"`
	ProjectedTotalProfit    float64 `json:"gananciaTotal"`
	RealizedTotalProfit     float64 `json:"gananciaReal"`
	RemainingStock          float64 `json:"stock"`
	RealizedRevenue         float64 `json:"facturado"`
}

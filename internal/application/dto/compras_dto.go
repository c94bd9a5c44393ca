package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jhoicas/compras-api/internal/domain/entity"
)

// NumberText valor numérico tal como lo digita el usuario. Acepta string o número JSON;
// la interpretación se hace después con las reglas tolerantes de la calculadora.
type NumberText string

// UnmarshalJSON acepta "12,5", 12.5 o null.
func (n *NumberText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumberText(s)
		return nil
	}
	var f json.Number
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("número inválido: %s", string(b))
	}
	if _, err := strconv.ParseFloat(f.String(), 64); err != nil {
		return fmt.Errorf("número inválido: %s", string(b))
	}
	*n = NumberText(f.String())
	return nil
}

// PurchaseLineRequest fila de producto con los valores digitados.
type PurchaseLineRequest struct {
	ExternalRef      string            `json:"ref"`
	ProductName      string            `json:"producto"`
	Brand            string            `json:"marca"`
	Quantity         NumberText        `json:"cantidad" swaggertype:"string"`
	LineTotalCost    NumberText        `json:"costoTotal" swaggertype:"string"`
	SalePrice        NumberText        `json:"precioVenta" swaggertype:"string"`
	UnitsSold        NumberText        `json:"vendidos" swaggertype:"string"`
	CompetitorPrices map[string]string `json:"competencia,omitempty"`
}

// PurchaseRequest compra a calcular o guardar.
// Para crear se omite _id; idCompra en 0 toma el siguiente consecutivo.
type PurchaseRequest struct {
	ID                   string                `json:"_id,omitempty"`
	SequenceID           int                   `json:"idCompra"`
	Supplier             string                `json:"proveedor"`
	Shipping             NumberText            `json:"envio" swaggertype:"string"`
	Extra1               NumberText            `json:"extra1" swaggertype:"string"`
	Extra2               NumberText            `json:"extra2" swaggertype:"string"`
	BagFee               NumberText            `json:"bolsas" swaggertype:"string"`
	PhysicalInvoiceTotal NumberText            `json:"facturaFisica" swaggertype:"string"`
	Lines                []PurchaseLineRequest `json:"productos"`
}

// NextSequenceResponse siguiente idCompra disponible.
type NextSequenceResponse struct {
	SequenceID int    `json:"idCompra"`
	Warning    string `json:"warning,omitempty"` // presente cuando se usó el valor por defecto
}

// SavePurchaseResponse resultado de guardar.
type SavePurchaseResponse struct {
	ID         string           `json:"_id"`
	SequenceID int              `json:"idCompra"`
	Created    bool             `json:"created"`
	Purchase   *entity.Purchase `json:"compra"`
}

// PurchaseListItem resumen para listados.
type PurchaseListItem struct {
	ID              string  `json:"_id"`
	SequenceID      int     `json:"idCompra"`
	Supplier        string  `json:"proveedor"`
	TotalItems      int     `json:"totalItems"`
	TotalInvestment float64 `json:"totalInversion"`
	MarginPercent   float64 `json:"margen"`
	CreatedAt       string  `json:"createdAt"`
}

// PurchaseListResponse listado de compras. Total cuenta todas las compras, no solo la página.
type PurchaseListResponse struct {
	Items []PurchaseListItem `json:"items"`
	Total int                `json:"total"`
	PageResponse
}

// DocumentResponse envoltura {data: ...} de la colección genérica.
type DocumentResponse struct {
	Data any `json:"data"`
}

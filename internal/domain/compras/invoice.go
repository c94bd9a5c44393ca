package compras

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/compras-api/internal/domain"
)

// Competitor identifica una tienda de referencia cuyo precio se anota por línea.
type Competitor string

// Competidores observados. Sus precios son informativos: no entran en ningún cálculo.
const (
	CompetitorMercadoLibre Competitor = "mercadolibre"
	CompetitorFalabella    Competitor = "falabella"
	CompetitorExito        Competitor = "exito"
	CompetitorAlkosto      Competitor = "alkosto"
	CompetitorKtronix      Competitor = "ktronix"
	CompetitorHomecenter   Competitor = "homecenter"
	CompetitorJumbo        Competitor = "jumbo"
	CompetitorOlimpica     Competitor = "olimpica"
	CompetitorLinio        Competitor = "linio"
	CompetitorAmazon       Competitor = "amazon"
	CompetitorTemu         Competitor = "temu"
)

// Competitors lista los once competidores en orden de presentación.
var Competitors = []Competitor{
	CompetitorMercadoLibre, CompetitorFalabella, CompetitorExito, CompetitorAlkosto,
	CompetitorKtronix, CompetitorHomecenter, CompetitorJumbo, CompetitorOlimpica,
	CompetitorLinio, CompetitorAmazon, CompetitorTemu,
}

// IsCompetitor informa si c es uno de los competidores conocidos.
func IsCompetitor(c Competitor) bool {
	for _, k := range Competitors {
		if k == c {
			return true
		}
	}
	return false
}

// CompetitorPrices guarda el texto libre anotado para cada competidor.
type CompetitorPrices map[Competitor]string

// Field nombra una celda editable de una línea.
type Field string

// Campos editables de una línea. Todos aceptan pegado masivo.
const (
	FieldExternalRef   Field = "ref"
	FieldProductName   Field = "producto"
	FieldBrand         Field = "marca"
	FieldQuantity      Field = "cantidad"
	FieldLineTotalCost Field = "costoTotal"
	FieldSalePrice     Field = "precioVenta"
	FieldUnitsSold     Field = "vendidos"

	competitorFieldPrefix = "competencia."
)

// CompetitorField devuelve el campo editable del precio de un competidor.
func CompetitorField(c Competitor) Field {
	return Field(competitorFieldPrefix + string(c))
}

// SharedCostsInput son los gastos compartidos tal como se digitan.
type SharedCostsInput struct {
	Shipping string
	Extra1   string
	Extra2   string
	BagFee   string
}

// PurchaseLine es una fila de producto comprado. Los numéricos se guardan como texto libre
// y se interpretan con ParseNumber.
type PurchaseLine struct {
	ExternalRef       string
	ProductName       string
	Brand             string
	PurchasedQuantity string
	LineTotalCost     string // costo facturado de toda la cantidad, no unitario
	SalePrice         string // precio de venta unitario al público
	UnitsSold         string
	CompetitorPrices  CompetitorPrices
}

// NewPurchaseLine crea una fila vacía.
func NewPurchaseLine() PurchaseLine {
	return PurchaseLine{CompetitorPrices: CompetitorPrices{}}
}

// IsBlank indica si la fila no cuenta como ítem.
func (l PurchaseLine) IsBlank() bool {
	return strings.TrimSpace(l.ProductName) == "" &&
		strings.TrimSpace(l.Brand) == "" &&
		strings.TrimSpace(l.ExternalRef) == "" &&
		strings.TrimSpace(l.PurchasedQuantity) == "" &&
		strings.TrimSpace(l.LineTotalCost) == ""
}

// Set asigna el valor de un campo.
func (l *PurchaseLine) Set(field Field, value string) error {
	switch field {
	case FieldExternalRef:
		l.ExternalRef = value
	case FieldProductName:
		l.ProductName = value
	case FieldBrand:
		l.Brand = value
	case FieldQuantity:
		l.PurchasedQuantity = value
	case FieldLineTotalCost:
		l.LineTotalCost = value
	case FieldSalePrice:
		l.SalePrice = value
	case FieldUnitsSold:
		l.UnitsSold = value
	default:
		c := Competitor(strings.TrimPrefix(string(field), competitorFieldPrefix))
		if !strings.HasPrefix(string(field), competitorFieldPrefix) || !IsCompetitor(c) {
			return fmt.Errorf("%w: campo desconocido %q", domain.ErrInvalidInput, field)
		}
		if l.CompetitorPrices == nil {
			l.CompetitorPrices = CompetitorPrices{}
		}
		l.CompetitorPrices[c] = value
	}
	return nil
}

func (l PurchaseLine) clone() PurchaseLine {
	out := l
	out.CompetitorPrices = make(CompetitorPrices, len(l.CompetitorPrices))
	for k, v := range l.CompetitorPrices {
		out.CompetitorPrices[k] = v
	}
	return out
}

// PurchaseInvoice es una compra a un proveedor en edición.
// ID vacío significa que aún no se ha persistido.
type PurchaseInvoice struct {
	ID                   string
	SequenceID           int
	SupplierName         string
	Shared               SharedCostsInput
	PhysicalInvoiceTotal string
	Lines                []PurchaseLine
	CreatedAt            time.Time
}

// NewPurchaseInvoice crea una compra nueva con dos filas vacías.
func NewPurchaseInvoice(sequenceID int) *PurchaseInvoice {
	return &PurchaseInvoice{
		SequenceID: sequenceID,
		Lines:      []PurchaseLine{NewPurchaseLine(), NewPurchaseLine()},
	}
}

// IsNew informa si la compra aún no tiene id persistido.
func (inv *PurchaseInvoice) IsNew() bool {
	return inv.ID == ""
}

// AddLine agrega una fila vacía al final.
func (inv *PurchaseInvoice) AddLine() {
	inv.Lines = append(inv.Lines, NewPurchaseLine())
}

// RemoveLine quita la fila i de la lista en memoria.
func (inv *PurchaseInvoice) RemoveLine(i int) error {
	if i < 0 || i >= len(inv.Lines) {
		return fmt.Errorf("%w: fila %d fuera de rango", domain.ErrInvalidInput, i)
	}
	inv.Lines = append(inv.Lines[:i], inv.Lines[i+1:]...)
	return nil
}

// SetField asigna un campo de la fila row.
func (inv *PurchaseInvoice) SetField(row int, field Field, value string) error {
	if row < 0 || row >= len(inv.Lines) {
		return fmt.Errorf("%w: fila %d fuera de rango", domain.ErrInvalidInput, row)
	}
	return inv.Lines[row].Set(field, value)
}

// Clone devuelve una copia profunda.
func (inv *PurchaseInvoice) Clone() *PurchaseInvoice {
	out := *inv
	out.Lines = make([]PurchaseLine, len(inv.Lines))
	for i, l := range inv.Lines {
		out.Lines[i] = l.clone()
	}
	return &out
}

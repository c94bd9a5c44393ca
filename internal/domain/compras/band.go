package compras

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MarginBand clasifica el margen de una línea para resaltarla.
type MarginBand string

// Bandas de margen, intervalos semiabiertos [desde, hasta).
const (
	BandCritical  MarginBand = "critical"  // < 20 %
	BandLow       MarginBand = "low"       // 20 % – 29,99 %
	BandModerate  MarginBand = "moderate"  // 30 % – 39,99 %
	BandHealthy   MarginBand = "healthy"   // 40 % – 59,99 %
	BandExcellent MarginBand = "excellent" // >= 60 %
)

// RGB color de presentación de una banda.
type RGB struct {
	R, G, B int
}

var (
	pct20 = decimal.NewFromInt(20)
	pct30 = decimal.NewFromInt(30)
	pct40 = decimal.NewFromInt(40)
	pct60 = decimal.NewFromInt(60)
)

// ClassifyMargin ubica un porcentaje de margen en su banda.
func ClassifyMargin(marginPercent decimal.Decimal) MarginBand {
	switch {
	case marginPercent.LessThan(pct20):
		return BandCritical
	case marginPercent.LessThan(pct30):
		return BandLow
	case marginPercent.LessThan(pct40):
		return BandModerate
	case marginPercent.LessThan(pct60):
		return BandHealthy
	default:
		return BandExcellent
	}
}

// Label texto corto para reportes.
func (b MarginBand) Label() string {
	switch b {
	case BandCritical:
		return "Crítico"
	case BandLow:
		return "Bajo"
	case BandModerate:
		return "Moderado"
	case BandHealthy:
		return "Saludable"
	case BandExcellent:
		return "Excelente"
	}
	return string(b)
}

// Color devuelve el color de fondo usado en PDF y XLSX.
func (b MarginBand) Color() RGB {
	switch b {
	case BandCritical:
		return RGB{R: 239, G: 68, B: 68}
	case BandLow:
		return RGB{R: 249, G: 115, B: 22}
	case BandModerate:
		return RGB{R: 234, G: 179, B: 8}
	case BandHealthy:
		return RGB{R: 132, G: 204, B: 22}
	case BandExcellent:
		return RGB{R: 34, G: 197, B: 94}
	}
	return RGB{R: 255, G: 255, B: 255}
}

// Hex devuelve el color como "RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

package compras

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// leadingFloat reconoce el prefijo numérico más largo, igual que parseFloat en un navegador.
var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber convierte un campo de texto libre en número.
// Acepta "." y "," como separador decimal: si hay coma, los puntos son separadores de miles
// y la última coma es el decimal. Vacío, ilegible o no finito → 0.
func ParseNumber(text string) decimal.Decimal {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		i := strings.LastIndex(s, ",")
		s = s[:i] + "." + s[i+1:]
	}
	m := leadingFloat.FindString(s)
	if m == "" {
		return decimal.Zero
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.NewFromFloat(f)
	}
	return d
}

// FormatNumber devuelve el texto editable de un valor guardado. Cero se muestra como campo vacío.
func FormatNumber(f float64) string {
	if f == 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return ""
	}
	return decimal.NewFromFloat(f).String()
}

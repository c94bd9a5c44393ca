// Package numfmt formatea cifras para reportes y consola con convenciones de Colombia (1.234,5).
package numfmt

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("es-CO"))

// Printer devuelve el printer es-CO compartido.
func Printer() *message.Printer { return printer }

// Money redondea a pesos. Ej: 25000 → "$25.000", -25000,4 → "-$25.000".
func Money(d decimal.Decimal) string {
	d = d.Round(0)
	if d.IsNegative() {
		return "-" + Money(d.Neg())
	}
	return printer.Sprintf("$%v", number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(0)))
}

// Percent con un decimal. Ej: 58.33 → "58,3%".
func Percent(d decimal.Decimal) string {
	return printer.Sprintf("%v%%", number.Decimal(d.Round(1).InexactFloat64(), number.MinFractionDigits(1), number.MaxFractionDigits(1)))
}

// Qty cantidades con hasta cuatro decimales. Ej: 2.5 → "2,5".
func Qty(d decimal.Decimal) string {
	return printer.Sprintf("%v", number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(4)))
}

package compras

import (
	"fmt"
	"strings"

	"github.com/jhoicas/compras-api/internal/domain"
)

// Paste aplica texto del portapapeles a la columna field desde la fila row.
// Con varias líneas, cada una llena una fila siguiente y se crean filas vacías si faltan.
// Una sola línea se trata como edición normal.
func (inv *PurchaseInvoice) Paste(row int, field Field, clipboard string) error {
	if row < 0 || row >= len(inv.Lines) {
		return fmt.Errorf("%w: fila %d fuera de rango", domain.ErrInvalidInput, row)
	}
	values := splitClipboard(clipboard)
	if len(values) == 1 {
		return inv.SetField(row, field, values[0])
	}
	// validar el campo antes de crear filas
	probe := NewPurchaseLine()
	if err := probe.Set(field, ""); err != nil {
		return err
	}
	for i, v := range values {
		r := row + i
		for r >= len(inv.Lines) {
			inv.AddLine()
		}
		if err := inv.Lines[r].Set(field, v); err != nil {
			return err
		}
	}
	return nil
}

// splitClipboard separa por líneas. Las hojas de cálculo suelen terminar con un salto de línea extra.
func splitClipboard(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

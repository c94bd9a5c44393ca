package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	appcompras "github.com/jhoicas/compras-api/internal/application/compras"
	"github.com/jhoicas/compras-api/internal/domain/compras"
)

// importColumns orden de las columnas del TSV copiado de la hoja de cálculo.
var importColumns = []compras.Field{
	compras.FieldExternalRef,
	compras.FieldProductName,
	compras.FieldBrand,
	compras.FieldQuantity,
	compras.FieldLineTotalCost,
	compras.FieldSalePrice,
	compras.FieldUnitsSold,
}

func newImportCommand(d Deps) *cobra.Command {
	var (
		path, supplier                 string
		shipping, extra1, extra2, bags string
		invoiceTotal                   string
		header, save                   bool
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Importar líneas separadas por tabulador y calcular la compra",
		Long: `import lee filas separadas por tabulador con las columnas
ref, producto, marca, cantidad, costoTotal, precioVenta, vendidos
(las columnas finales pueden faltar) y las pega en una compra nueva.`,
		Example: `  compras import --file lineas.tsv --supplier "Distribuidora Norte" --shipping 12000 --save`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := readTSV(cmd.InOrStdin(), path, header)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return fmt.Errorf("el archivo %s no tiene filas", path)
			}

			var svc appcompras.Service
			var uc *appcompras.UseCase
			if save {
				var closeFn func()
				uc, closeFn, err = d.OpenUseCase(cmd.Context())
				if err != nil {
					return err
				}
				defer closeFn()
				svc = uc
			} else {
				svc = offlineService{}
			}

			ed := appcompras.NewEditor(cmd.Context(), svc)
			for c, field := range importColumns {
				col := make([]string, len(rows))
				for r, row := range rows {
					if c < len(row) {
						col[r] = strings.TrimSpace(row[c])
					}
				}
				if err := ed.Paste(0, field, strings.Join(col, "\n")); err != nil {
					return err
				}
			}
			if err := ed.Edit(func(inv *compras.PurchaseInvoice) error {
				inv.SupplierName = supplier
				inv.Shared = compras.SharedCostsInput{Shipping: shipping, Extra1: extra1, Extra2: extra2, BagFee: bags}
				inv.PhysicalInvoiceTotal = invoiceTotal
				return nil
			}); err != nil {
				return err
			}

			printResult(cmd.OutOrStdout(), ed.Invoice(), ed.Result())
			if !save {
				return nil
			}
			res, err := ed.Save(cmd.Context())
			if err != nil {
				return err
			}
			d.Log.Info().Str("id", res.ID).Int("id_compra", res.SequenceID).Msg("compra importada")
			fmt.Fprintf(cmd.OutOrStdout(), "\nGuardada: %s (idCompra %d)\n", res.ID, res.SequenceID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&path, "file", "f", "", "Archivo TSV (- para stdin)")
	f.StringVar(&supplier, "supplier", "", "Proveedor")
	f.StringVar(&shipping, "shipping", "", "Envío")
	f.StringVar(&extra1, "extra1", "", "Gasto extra 1")
	f.StringVar(&extra2, "extra2", "", "Gasto extra 2")
	f.StringVar(&bags, "bags", "", "Costo de bolsas")
	f.StringVar(&invoiceTotal, "invoice-total", "", "Total de la factura física")
	f.BoolVar(&header, "header", false, "La primera fila es encabezado")
	f.BoolVar(&save, "save", false, "Guardar la compra en la persistencia configurada")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readTSV(stdin io.Reader, path string, header bool) ([][]string, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("abrir %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer TSV: %w", err)
	}
	if header && len(rows) > 0 {
		rows = rows[1:]
	}
	return rows, nil
}

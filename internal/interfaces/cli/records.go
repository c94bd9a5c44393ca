package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newNextIDCommand(d Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "next-id",
		Short: "Mostrar el siguiente idCompra disponible",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, closeFn, err := d.OpenUseCase(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			seq, err := uc.NextSequenceID(cmd.Context())
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "aviso: %v; se usa el valor por defecto\n", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), seq)
			return nil
		},
	}
}

func newListCommand(d Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Listar las compras guardadas (la más reciente primero)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, closeFn, err := d.OpenUseCase(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			list, err := uc.List(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-8s %-36s %-30s %6s %16s %8s\n", "N°", "ID", "Proveedor", "Ítems", "Inversión", "Margen")
			for _, p := range list {
				fmt.Fprintf(w, "%-8d %-36s %-30s %6d %16s %8s\n",
					p.SequenceID, p.ID, truncate(p.Supplier, 30), p.TotalItems,
					money(decimal.NewFromFloat(p.Summary.TotalInvestment)), pct(decimal.NewFromFloat(p.Summary.MarginPercent)))
			}
			return nil
		},
	}
}

func newExportCommand(d Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Exportar una compra guardada a PDF o XLSX",
		Example: `  compras export --id 6650f1c2 --format xlsx --out compra.xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetString("id")
			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")

			report, ok := d.Reports[strings.ToLower(format)]
			if !ok {
				return fmt.Errorf("formato no soportado: %q", format)
			}
			uc, closeFn, err := d.OpenUseCase(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			rec, err := uc.GetRecord(cmd.Context(), id)
			if err != nil {
				return err
			}
			data, err := report.Generate(rec)
			if err != nil {
				return err
			}
			if out == "" {
				out = fmt.Sprintf("compra-%d.%s", rec.SequenceID, report.Extension())
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", out, err)
			}
			d.Log.Info().Str("archivo", out).Int("id_compra", rec.SequenceID).Msg("compra exportada")
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().String("id", "", "ID de la compra")
	cmd.Flags().String("format", "pdf", "Formato: pdf o xlsx")
	cmd.Flags().StringP("out", "o", "", "Archivo de salida (por defecto compra-<idCompra>.<ext>)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

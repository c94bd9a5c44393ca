package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	appcompras "github.com/jhoicas/compras-api/internal/application/compras"
	"github.com/jhoicas/compras-api/internal/application/dto"
	"github.com/jhoicas/compras-api/internal/domain/compras"
)

func newCalcCommand(d Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calcular una compra desde un archivo JSON sin guardarla",
		Example: `  compras calc --file compra.json
  cat compra.json | compras calc --file - --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("file")
			asJSON, _ := cmd.Flags().GetBool("json")

			in, err := readRequest(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}
			inv, err := appcompras.InvoiceFromRequest(in)
			if err != nil {
				return err
			}
			res := compras.Calculate(inv)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(compras.ToRecord(inv, res))
			}
			printResult(cmd.OutOrStdout(), inv, res)
			return nil
		},
	}
	cmd.Flags().StringP("file", "f", "", "Archivo JSON con la compra (- para stdin)")
	cmd.Flags().Bool("json", false, "Imprimir el documento calculado en JSON")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readRequest(stdin io.Reader, path string) (dto.PurchaseRequest, error) {
	var in dto.PurchaseRequest
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return in, fmt.Errorf("abrir %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return in, fmt.Errorf("leer compra: %w", err)
	}
	return in, nil
}

// Package cli implementa los comandos de línea de la calculadora de compras.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	appcompras "github.com/jhoicas/compras-api/internal/application/compras"
	"github.com/jhoicas/compras-api/internal/domain/entity"
	"github.com/jhoicas/compras-api/pkg/config"
	"github.com/jhoicas/compras-api/pkg/logger"
)

var version = "1.0.0"

// Report genera un archivo a partir de una compra guardada.
type Report interface {
	Generate(p *entity.Purchase) ([]byte, error)
	Extension() string
}

// Deps dependencias de los comandos.
type Deps struct {
	Config *config.Config
	Log    *logger.Logger
	Out    io.Writer
	// OpenUseCase abre la persistencia configurada; el func devuelto la cierra.
	OpenUseCase func(ctx context.Context) (*appcompras.UseCase, func(), error)
	Reports     map[string]Report // por formato: pdf, xlsx
}

// NewRootCommand arma el árbol de comandos.
func NewRootCommand(d Deps) *cobra.Command {
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	root := &cobra.Command{
		Use:   "compras",
		Short: "Calculadora de costos de compras",
		Long: `compras reparte los gastos compartidos de una compra (envío, extras y bolsas)
entre las unidades compradas y calcula costo final, margen y ganancia de cada producto.

Los comandos que consultan o guardan usan la persistencia configurada en COMPRAS_STORE
(postgres o rest).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(d.Out)

	root.AddCommand(
		newCalcCommand(d),
		newNextIDCommand(d),
		newListCommand(d),
		newImportCommand(d),
		newExportCommand(d),
		newTokenCommand(d),
	)
	return root
}

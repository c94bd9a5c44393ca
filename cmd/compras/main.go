package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	appcompras "github.com/jhoicas/compras-api/internal/application/compras"
	infrapdf "github.com/jhoicas/compras-api/internal/infrastructure/pdf"
	"github.com/jhoicas/compras-api/internal/infrastructure/store"
	infraxlsx "github.com/jhoicas/compras-api/internal/infrastructure/xlsx"
	"github.com/jhoicas/compras-api/internal/interfaces/cli"
	"github.com/jhoicas/compras-api/pkg/config"
	"github.com/jhoicas/compras-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	// stdout queda para la salida de los comandos
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	root := cli.NewRootCommand(cli.Deps{
		Config: cfg,
		Log:    log,
		OpenUseCase: func(ctx context.Context) (*appcompras.UseCase, func(), error) {
			st, err := store.Open(ctx, cfg, log)
			if err != nil {
				return nil, nil, err
			}
			return st.UseCase(log.Component("compras"), cfg.Compras.DefaultSequenceID), st.Close, nil
		},
		Reports: map[string]cli.Report{
			"pdf":  infrapdf.NewPurchaseReport(),
			"xlsx": infraxlsx.NewPurchaseExport(),
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// Package store abre la persistencia de compras configurada (PostgreSQL o API de documentos).
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appcompras "github.com/jhoicas/compras-api/internal/application/compras"
	"github.com/jhoicas/compras-api/internal/domain/repository"
	"github.com/jhoicas/compras-api/internal/infrastructure/docapi"
	"github.com/jhoicas/compras-api/internal/infrastructure/postgres"
	"github.com/jhoicas/compras-api/pkg/config"
	"github.com/jhoicas/compras-api/pkg/logger"
)

// Store persistencia abierta. Pool y Tx son nil cuando las compras viven en la API de documentos.
type Store struct {
	Purchases repository.PurchaseRepository
	Tx        appcompras.TxRunner
	Pool      *pgxpool.Pool
}

// Open conecta el backend indicado por COMPRAS_STORE. En PostgreSQL aplica el esquema.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Store, error) {
	switch cfg.Compras.Store {
	case config.StoreREST:
		log.Info().Str("base_url", cfg.DocAPI.BaseURL).Str("database", cfg.DocAPI.Database).Msg("compras en API de documentos")
		return &Store{Purchases: docapi.NewClient(cfg.DocAPI, log.Component("docapi"))}, nil
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Store{
			Purchases: postgres.NewPurchaseRepository(pool, cfg.Compras.Database),
			Tx:        postgres.NewTxRunner(pool, cfg.Compras.Database),
			Pool:      pool,
		}, nil
	}
	return nil, fmt.Errorf("store desconocido: %q", cfg.Compras.Store)
}

// Collection devuelve la colección {database} en PostgreSQL, o nil si no hay pool.
func (s *Store) Collection(database string) *postgres.PurchaseRepo {
	if s.Pool == nil {
		return nil
	}
	return postgres.NewPurchaseRepository(s.Pool, database)
}

// Close libera las conexiones.
func (s *Store) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

// UseCase arma el caso de uso de compras sobre esta persistencia.
func (s *Store) UseCase(log zerolog.Logger, defaultSeq int) *appcompras.UseCase {
	uc := appcompras.NewUseCase(s.Purchases, log, defaultSeq)
	if s.Tx != nil {
		uc.WithTx(s.Tx)
	}
	return uc
}

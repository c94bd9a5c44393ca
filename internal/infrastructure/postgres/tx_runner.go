package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appcompras "github.com/jhoicas/compras-api/internal/application/compras"
	"github.com/jhoicas/compras-api/internal/domain/repository"
)

var _ appcompras.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Las escrituras de una misma colección se serializan con un advisory lock de transacción.
type TxRunner struct {
	pool     *pgxpool.Pool
	database string
}

// NewTxRunner construye el runner para la colección database.
func NewTxRunner(pool *pgxpool.Pool, database string) *TxRunner {
	return &TxRunner{pool: pool, database: database}
}

// Run inicia una transacción, ejecuta fn con un repositorio atado a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repo repository.PurchaseRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "compras:"+r.database); err != nil {
		return fmt.Errorf("lock colección %s: %w", r.database, err)
	}
	if err := fn(NewPurchaseRepository(tx, r.database)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

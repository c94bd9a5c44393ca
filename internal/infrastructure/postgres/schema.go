package postgres

import (
	"context"
	"fmt"
)

// schemaDDL crea la tabla de compras. Cada fila guarda el documento completo en JSONB
// y repite en columnas los campos por los que se filtra u ordena.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS compras (
	id                     UUID PRIMARY KEY,
	database_name          TEXT NOT NULL,
	sequence_id            INTEGER NOT NULL,
	supplier               TEXT NOT NULL DEFAULT '',
	total_items            INTEGER NOT NULL DEFAULT 0,
	total_investment       NUMERIC(18,4) NOT NULL DEFAULT 0,
	total_projected_profit NUMERIC(18,4) NOT NULL DEFAULT 0,
	document               JSONB NOT NULL,
	created_at             TIMESTAMPTZ NOT NULL,
	updated_at             TIMESTAMPTZ,
	CONSTRAINT compras_database_sequence_key UNIQUE (database_name, sequence_id)
);
CREATE INDEX IF NOT EXISTS compras_database_created_idx ON compras (database_name, created_at DESC);
`

// EnsureSchema aplica el DDL (idempotente).
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("crear esquema compras: %w", err)
	}
	return nil
}

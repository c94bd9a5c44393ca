package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/compras-api/internal/domain"
	"github.com/jhoicas/compras-api/internal/domain/entity"
	"github.com/jhoicas/compras-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL (usable con pool o tx).
// database separa colecciones lógicas, igual que el segmento {database} de la API de documentos.
type PurchaseRepo struct {
	q        Querier
	database string
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier, database string) *PurchaseRepo {
	return &PurchaseRepo{q: q, database: database}
}

const selectPurchase = `SELECT id, document, created_at, updated_at FROM compras`

// List devuelve las compras de la colección, la más reciente primero.
func (r *PurchaseRepo) List(ctx context.Context) ([]*entity.Purchase, error) {
	rows, err := r.q.Query(ctx, selectPurchase+` WHERE database_name = $1 ORDER BY sequence_id DESC`, r.database)
	if err != nil {
		return nil, fmt.Errorf("list compras: %w", err)
	}
	defer rows.Close()

	var list []*entity.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list compras: %w", err)
	}
	return list, nil
}

// GetByID obtiene una compra por id. Un id que no es UUID se trata como inexistente.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	row := r.q.QueryRow(ctx, selectPurchase+` WHERE database_name = $1 AND id = $2`, r.database, uid)
	p, err := scanPurchase(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// FindBySequence busca por idCompra.
func (r *PurchaseRepo) FindBySequence(ctx context.Context, sequenceID int) (*entity.Purchase, error) {
	row := r.q.QueryRow(ctx, selectPurchase+` WHERE database_name = $1 AND sequence_id = $2`, r.database, sequenceID)
	p, err := scanPurchase(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// Create inserta la compra con un UUID nuevo. idCompra repetido devuelve domain.ErrDuplicate.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) (string, error) {
	id := uuid.New()
	doc, err := marshalDocument(p)
	if err != nil {
		return "", err
	}
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	query := `
		INSERT INTO compras (id, database_name, sequence_id, supplier, total_items, total_investment, total_projected_profit, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(ctx, query,
		id, r.database, p.SequenceID, p.Supplier, p.TotalItems,
		decimal.NewFromFloat(p.Summary.TotalInvestment), decimal.NewFromFloat(p.Summary.TotalProjectedProfit),
		doc, createdAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("%w: idCompra %d", domain.ErrDuplicate, p.SequenceID)
		}
		return "", fmt.Errorf("insert compra: %w", err)
	}
	return id.String(), nil
}

// Update reemplaza el documento completo.
func (r *PurchaseRepo) Update(ctx context.Context, id string, p *entity.Purchase) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrNotFound
	}
	doc, err := marshalDocument(p)
	if err != nil {
		return err
	}
	updatedAt := time.Now().UTC()
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}
	query := `
		UPDATE compras SET sequence_id = $3, supplier = $4, total_items = $5, total_investment = $6,
			total_projected_profit = $7, document = $8, updated_at = $9
		WHERE database_name = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		r.database, uid, p.SequenceID, p.Supplier, p.TotalItems,
		decimal.NewFromFloat(p.Summary.TotalInvestment), decimal.NewFromFloat(p.Summary.TotalProjectedProfit),
		doc, updatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: idCompra %d", domain.ErrDuplicate, p.SequenceID)
		}
		return fmt.Errorf("update compra: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Patch mezcla los campos de primer nivel recibidos sobre el documento guardado (jsonb ||).
// Las columnas indexadas se recalculan a partir del documento resultante.
func (r *PurchaseRepo) Patch(ctx context.Context, id string, fields map[string]json.RawMessage) (*entity.Purchase, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	delete(fields, "_id")
	patch, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	query := `
		UPDATE compras SET
			document = document || $3::jsonb,
			sequence_id = COALESCE((($3::jsonb)->>'idCompra')::int, sequence_id),
			supplier = COALESCE(($3::jsonb)->>'proveedor', supplier),
			total_items = COALESCE((($3::jsonb)->>'totalItems')::int, total_items),
			total_investment = COALESCE((($3::jsonb)->'resumen'->>'totalInversion')::numeric, total_investment),
			total_projected_profit = COALESCE((($3::jsonb)->'resumen'->>'gananciaTotal')::numeric, total_projected_profit),
			updated_at = $4
		WHERE database_name = $1 AND id = $2
		RETURNING id, document, created_at, updated_at`
	row := r.q.QueryRow(ctx, query, r.database, uid, patch, time.Now().UTC())
	p, err := scanPurchase(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, err
	}
	return p, nil
}

// marshalDocument serializa el documento sin _id ni updatedAt; id y fechas viven en columnas propias.
func marshalDocument(p *entity.Purchase) ([]byte, error) {
	cp := *p
	cp.ID = ""
	cp.UpdatedAt = nil
	doc, err := json.Marshal(&cp)
	if err != nil {
		return nil, fmt.Errorf("serializar compra: %w", err)
	}
	return doc, nil
}

func scanPurchase(row pgx.Row) (*entity.Purchase, error) {
	var (
		id        uuid.UUID
		doc       []byte
		createdAt time.Time
		updatedAt *time.Time
	)
	if err := row.Scan(&id, &doc, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan compra: %w", err)
	}
	var p entity.Purchase
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("documento de compra %s inválido: %w", id, err)
	}
	p.ID = id.String()
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	return &p, nil
}

package repository

import (
	"context"

	"github.com/jhoicas/compras-api/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para la colección de compras.
// GetByID y FindBySequence devuelven (nil, nil) cuando no existe el documento.
type PurchaseRepository interface {
	List(ctx context.Context) ([]*entity.Purchase, error)
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	FindBySequence(ctx context.Context, sequenceID int) (*entity.Purchase, error)
	// Create persiste la compra y devuelve el id asignado por el backend.
	Create(ctx context.Context, purchase *entity.Purchase) (string, error)
	Update(ctx context.Context, id string, purchase *entity.Purchase) error
}

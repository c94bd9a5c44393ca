package compras

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/compras-api/internal/domain"
	"github.com/jhoicas/compras-api/internal/domain/compras"
	"github.com/jhoicas/compras-api/internal/domain/entity"
	"github.com/jhoicas/compras-api/internal/domain/repository"
)

// DefaultSequenceID consecutivo usado cuando no se puede consultar el máximo existente.
const DefaultSequenceID = 100

// SaveResult resultado de guardar una compra.
type SaveResult struct {
	ID         string
	SequenceID int
	Created    bool
	Record     *entity.Purchase
	Result     compras.Result
}

// TxRunner ejecuta fn con un repositorio atado a una transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.PurchaseRepository) error) error
}

// UseCase casos de uso de la calculadora de compras.
type UseCase struct {
	repo       repository.PurchaseRepository
	tx         TxRunner
	log        zerolog.Logger
	defaultSeq int
	now        func() time.Time
}

// NewUseCase construye el caso de uso. defaultSeq <= 0 usa DefaultSequenceID.
func NewUseCase(repo repository.PurchaseRepository, log zerolog.Logger, defaultSeq int) *UseCase {
	if defaultSeq <= 0 {
		defaultSeq = DefaultSequenceID
	}
	return &UseCase{repo: repo, log: log, defaultSeq: defaultSeq, now: time.Now}
}

// WithTx hace que Save verifique y escriba dentro de una transacción.
func (uc *UseCase) WithTx(tx TxRunner) *UseCase {
	uc.tx = tx
	return uc
}

func (uc *UseCase) inTx(ctx context.Context, fn func(repo repository.PurchaseRepository) error) error {
	if uc.tx == nil {
		return fn(uc.repo)
	}
	return uc.tx.Run(ctx, fn)
}

// NextSequenceID devuelve max(idCompra)+1. Si la consulta falla devuelve el consecutivo por defecto
// junto con el error, para que el llamador decida si lo registra o lo muestra.
func (uc *UseCase) NextSequenceID(ctx context.Context) (int, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Int("fallback", uc.defaultSeq).Msg("no se pudo calcular el siguiente idCompra")
		return uc.defaultSeq, fmt.Errorf("listar compras: %w", err)
	}
	maxSeq := 0
	for _, p := range list {
		if p.SequenceID > maxSeq {
			maxSeq = p.SequenceID
		}
	}
	if maxSeq == 0 {
		return uc.defaultSeq, nil
	}
	return maxSeq + 1, nil
}

// Calculate vista previa sin persistir.
func (uc *UseCase) Calculate(inv *compras.PurchaseInvoice) compras.Result {
	return compras.Calculate(inv)
}

// Save crea la compra si no tiene id o la actualiza si ya existe.
// Una compra nueva sin consecutivo recibe el siguiente disponible.
func (uc *UseCase) Save(ctx context.Context, inv *compras.PurchaseInvoice) (*SaveResult, error) {
	if inv == nil {
		return nil, domain.ErrInvalidInput
	}
	inv = inv.Clone()
	created := inv.IsNew()

	if created && inv.SequenceID <= 0 {
		seq, err := uc.NextSequenceID(ctx)
		if err != nil {
			return nil, err
		}
		inv.SequenceID = seq
	}

	var (
		rec *entity.Purchase
		res compras.Result
	)
	err := uc.inTx(ctx, func(repo repository.PurchaseRepository) error {
		if created {
			existing, err := repo.FindBySequence(ctx, inv.SequenceID)
			if err != nil {
				return fmt.Errorf("verificar idCompra %d: %w", inv.SequenceID, err)
			}
			if existing != nil {
				return fmt.Errorf("%w: idCompra %d ya existe", domain.ErrDuplicate, inv.SequenceID)
			}
			if inv.CreatedAt.IsZero() {
				inv.CreatedAt = uc.now().UTC()
			}
		} else if inv.CreatedAt.IsZero() {
			stored, err := repo.GetByID(ctx, inv.ID)
			if err != nil {
				return fmt.Errorf("obtener compra %s: %w", inv.ID, err)
			}
			if stored == nil {
				return domain.ErrNotFound
			}
			inv.CreatedAt = stored.CreatedAt
		}

		res = compras.Calculate(inv)
		rec = compras.ToRecord(inv, res)

		if created {
			id, err := repo.Create(ctx, rec)
			if err != nil {
				return fmt.Errorf("crear compra %d: %w", inv.SequenceID, err)
			}
			if id == "" {
				return fmt.Errorf("%w: el backend no devolvió id para la compra %d", domain.ErrBackend, inv.SequenceID)
			}
			rec.ID = id
			return nil
		}
		now := uc.now().UTC()
		rec.UpdatedAt = &now
		if err := repo.Update(ctx, inv.ID, rec); err != nil {
			return fmt.Errorf("actualizar compra %s: %w", inv.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("id", rec.ID).
		Int("id_compra", rec.SequenceID).
		Bool("nueva", created).
		Int("items", rec.TotalItems).
		Float64("inversion", rec.Summary.TotalInvestment).
		Msg("compra guardada")

	return &SaveResult{
		ID:         rec.ID,
		SequenceID: rec.SequenceID,
		Created:    created,
		Record:     rec,
		Result:     res,
	}, nil
}

// GetRecord devuelve el documento guardado.
func (uc *UseCase) GetRecord(ctx context.Context, id string) (*entity.Purchase, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	rec, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener compra %s: %w", id, err)
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

// Get rehidrata una compra guardada para edición.
func (uc *UseCase) Get(ctx context.Context, id string) (*compras.PurchaseInvoice, error) {
	rec, err := uc.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	return compras.FromRecord(rec), nil
}

// List devuelve las compras, la más reciente (mayor idCompra) primero.
func (uc *UseCase) List(ctx context.Context) ([]*entity.Purchase, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar compras: %w", err)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].SequenceID > list[j].SequenceID
	})
	return list, nil
}

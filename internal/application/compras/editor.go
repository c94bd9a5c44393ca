package compras

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/compras-api/internal/domain"
	"github.com/jhoicas/compras-api/internal/domain/compras"
)

// Mode estado del formulario: compra nueva o compra ya guardada.
type Mode string

const (
	ModeNew      Mode = "nueva"
	ModeExisting Mode = "existente"
)

// Service lo que el editor necesita del caso de uso.
type Service interface {
	NextSequenceID(ctx context.Context) (int, error)
	Save(ctx context.Context, inv *compras.PurchaseInvoice) (*SaveResult, error)
	Get(ctx context.Context, id string) (*compras.PurchaseInvoice, error)
}

// Editor mantiene el estado de edición de una compra: la compra en memoria, el siguiente
// idCompra y el último error visible. El consecutivo vive aquí, no en un global.
type Editor struct {
	svc Service

	mu      sync.Mutex
	inv     *compras.PurchaseInvoice
	nextSeq int
	saving  bool
	errMsg  string
}

// NewEditor consulta el siguiente idCompra y abre una compra nueva con dos filas vacías.
func NewEditor(ctx context.Context, svc Service) *Editor {
	e := &Editor{svc: svc}
	e.Reset(ctx)
	return e
}

// Reset refresca el siguiente idCompra desde el backend y empieza una compra nueva.
// Si la consulta falla se usa el consecutivo por defecto, sin bajar del contador local.
func (e *Editor) Reset(ctx context.Context) {
	seq, err := e.svc.NextSequenceID(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil && e.nextSeq > seq {
		seq = e.nextSeq
	}
	e.nextSeq = seq
	e.inv = compras.NewPurchaseInvoice(seq)
	e.errMsg = ""
}

// Load reemplaza la compra en edición por una guardada.
func (e *Editor) Load(ctx context.Context, id string) error {
	inv, err := e.svc.Get(ctx, id)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.errMsg = "No se pudo cargar la compra: " + err.Error()
		return err
	}
	e.inv = inv
	e.errMsg = ""
	return nil
}

// Edit aplica fn sobre la compra en memoria. Se permite editar mientras se guarda.
func (e *Editor) Edit(fn func(inv *compras.PurchaseInvoice) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.inv)
}

// SetField asigna una celda.
func (e *Editor) SetField(row int, field compras.Field, value string) error {
	return e.Edit(func(inv *compras.PurchaseInvoice) error {
		return inv.SetField(row, field, value)
	})
}

// Paste pega texto del portapapeles en una columna desde row.
func (e *Editor) Paste(row int, field compras.Field, clipboard string) error {
	return e.Edit(func(inv *compras.PurchaseInvoice) error {
		return inv.Paste(row, field, clipboard)
	})
}

// AddLine agrega una fila vacía.
func (e *Editor) AddLine() {
	_ = e.Edit(func(inv *compras.PurchaseInvoice) error {
		inv.AddLine()
		return nil
	})
}

// RemoveLine quita una fila antes de guardar.
func (e *Editor) RemoveLine(i int) error {
	return e.Edit(func(inv *compras.PurchaseInvoice) error {
		return inv.RemoveLine(i)
	})
}

// Save persiste la compra. Rechaza un segundo guardado mientras otro está en curso.
// Ante un error la entrada queda intacta y el mensaje queda disponible en Err.
func (e *Editor) Save(ctx context.Context) (*SaveResult, error) {
	e.mu.Lock()
	if e.saving {
		e.mu.Unlock()
		return nil, domain.ErrSaveInProgress
	}
	e.saving = true
	e.errMsg = ""
	snapshot := e.inv.Clone()
	e.mu.Unlock()

	res, err := e.svc.Save(ctx, snapshot)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.saving = false
	if err != nil {
		e.errMsg = "Error al guardar la compra: " + err.Error()
		if errors.Is(err, domain.ErrDuplicate) && snapshot.IsNew() && e.inv.IsNew() {
			// otro usuario tomó el consecutivo: el siguiente intento usa uno nuevo
			e.nextSeq = snapshot.SequenceID + 1
			e.inv.SequenceID = e.nextSeq
		}
		return nil, err
	}
	if res.Created && e.inv.IsNew() {
		e.inv.ID = res.ID
		e.inv.SequenceID = res.SequenceID
		e.inv.CreatedAt = res.Record.CreatedAt
		if res.SequenceID >= e.nextSeq {
			e.nextSeq = res.SequenceID + 1
		}
	}
	return res, nil
}

// Invoice devuelve una copia de la compra en edición.
func (e *Editor) Invoice() *compras.PurchaseInvoice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inv.Clone()
}

// Result recalcula los derivados de la compra actual.
func (e *Editor) Result() compras.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return compras.Calculate(e.inv)
}

// Mode informa si la compra es nueva o ya existe.
func (e *Editor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inv.IsNew() {
		return ModeNew
	}
	return ModeExisting
}

// NextSequenceID consecutivo que recibirá la próxima compra nueva.
func (e *Editor) NextSequenceID() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nextSeq
}

// Saving informa si hay un guardado en curso.
func (e *Editor) Saving() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saving
}

// Err último mensaje de error visible; vacío si no hay.
func (e *Editor) Err() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errMsg
}

package compras_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/compras-api/internal/domain/entity"
)

var errBackendCaido = errors.New("backend caído")

// memRepo repositorio en memoria para los tests del caso de uso.
type memRepo struct {
	mu        sync.Mutex
	docs      map[string]*entity.Purchase
	order     []string
	seq       int
	failList  bool
	failWrite bool
	noID      bool
	creates   int
	updates   int
	block     chan struct{} // si no es nil, Create espera a que se cierre
}

func newMemRepo() *memRepo {
	return &memRepo{docs: map[string]*entity.Purchase{}}
}

func (r *memRepo) put(p *entity.Purchase) string {
	r.seq++
	id := fmt.Sprintf("doc-%d", r.seq)
	cp := *p
	cp.ID = id
	r.docs[id] = &cp
	r.order = append(r.order, id)
	return id
}

func (r *memRepo) List(_ context.Context) ([]*entity.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failList {
		return nil, errBackendCaido
	}
	out := make([]*entity.Purchase, 0, len(r.order))
	for _, id := range r.order {
		cp := *r.docs[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memRepo) FindBySequence(_ context.Context, seq int) (*entity.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failList {
		return nil, errBackendCaido
	}
	for _, id := range r.order {
		if r.docs[id].SequenceID == seq {
			cp := *r.docs[id]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRepo) Create(_ context.Context, p *entity.Purchase) (string, error) {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.failWrite {
		return "", errBackendCaido
	}
	id := r.put(p)
	if r.noID {
		return "", nil
	}
	return id, nil
}

func (r *memRepo) Update(_ context.Context, id string, p *entity.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	if r.failWrite {
		return errBackendCaido
	}
	if _, ok := r.docs[id]; !ok {
		return fmt.Errorf("compra %s no existe", id)
	}
	cp := *p
	cp.ID = id
	r.docs[id] = &cp
	return nil
}

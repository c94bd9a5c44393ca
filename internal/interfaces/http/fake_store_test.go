package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jhoicas/compras-api/internal/domain"
	"github.com/jhoicas/compras-api/internal/domain/entity"
)

// memCollection colección en memoria que cumple DocumentCollection.
type memCollection struct {
	mu   sync.Mutex
	docs map[string]*entity.Purchase
	seq  int
	fail error
}

func newMemCollection() *memCollection {
	return &memCollection{docs: map[string]*entity.Purchase{}}
}

func (m *memCollection) List(context.Context) ([]*entity.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	out := make([]*entity.Purchase, 0, len(m.docs))
	for _, d := range m.docs {
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memCollection) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (m *memCollection) FindBySequence(_ context.Context, seq int) (*entity.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	for _, d := range m.docs {
		if d.SequenceID == seq {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCollection) Create(_ context.Context, p *entity.Purchase) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return "", m.fail
	}
	for _, d := range m.docs {
		if d.SequenceID == p.SequenceID {
			return "", domain.ErrDuplicate
		}
	}
	m.seq++
	id := fmt.Sprintf("doc-%d", m.seq)
	cp := *p
	cp.ID = id
	m.docs[id] = &cp
	return id, nil
}

func (m *memCollection) Update(_ context.Context, id string, p *entity.Purchase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	cp.ID = id
	m.docs[id] = &cp
	return nil
}

func (m *memCollection) Patch(_ context.Context, id string, fields map[string]json.RawMessage) (*entity.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	for k, v := range fields {
		doc[k] = v
	}
	merged, _ := json.Marshal(doc)
	var out entity.Purchase
	if err := json.Unmarshal(merged, &out); err != nil {
		return nil, err
	}
	out.ID = id
	m.docs[id] = &out
	cp := out
	return &cp, nil
}

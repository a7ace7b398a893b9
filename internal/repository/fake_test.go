package repository

import (
	"context"
	"encoding/json"
	"reflect"
	"sync"

	"github.com/pkg/errors"
)

// memCollection is an in-memory stand-in for a store collection so the
// repository contracts can be tested without a running database.
type memCollection[T any] struct {
	mu    sync.Mutex
	docs  map[string]T
	order []string

	// insertErr forces Insert to fail, for the archive failure tests.
	insertErr error
}

func newMemCollection[T any]() *memCollection[T] {
	return &memCollection[T]{docs: make(map[string]T)}
}

func (m *memCollection[T]) Insert(_ context.Context, id string, doc T) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	if _, ok := m.docs[id]; ok {
		return nil, errors.Errorf("duplicate id %s", id)
	}
	m.docs[id] = doc
	m.order = append(m.order, id)
	return &doc, nil
}

func (m *memCollection[T]) All(_ context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.docs[id])
	}
	return out, nil
}

func (m *memCollection[T]) Get(_ context.Context, id string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (m *memCollection[T]) Find(_ context.Context, filter map[string]any) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	want, err := roundTrip(filter)
	if err != nil {
		return nil, err
	}

	var out []T
	for _, id := range m.order {
		fields, err := roundTrip(m.docs[id])
		if err != nil {
			return nil, err
		}
		matched := true
		for k, v := range want {
			if !reflect.DeepEqual(fields[k], v) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, m.docs[id])
		}
	}
	return out, nil
}

func (m *memCollection[T]) Merge(_ context.Context, id string, fields map[string]any) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, nil
	}

	current, err := roundTrip(doc)
	if err != nil {
		return nil, err
	}
	patch, err := roundTrip(fields)
	if err != nil {
		return nil, err
	}
	for k, v := range patch {
		current[k] = v
	}

	buf, err := json.Marshal(current)
	if err != nil {
		return nil, err
	}
	var merged T
	if err := json.Unmarshal(buf, &merged); err != nil {
		return nil, err
	}

	m.docs[id] = merged
	return &merged, nil
}

func (m *memCollection[T]) Replace(_ context.Context, id string, doc T) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return nil, nil
	}
	m.docs[id] = doc
	return &doc, nil
}

func (m *memCollection[T]) Take(_ context.Context, id string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, nil
	}
	delete(m.docs, id)
	for i, known := range m.order {
		if known == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return &doc, nil
}

// roundTrip renders a value as its json field map, the same normalisation
// the store codec applies.
func roundTrip(v any) (map[string]any, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(buf, &out); err != nil {
		return nil, err
	}
	return out, nil
}

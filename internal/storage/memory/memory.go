// Package memory provides an in-memory Store used by tests.
package memory

import (
	"context"
	"sync"

	"familymedt/internal/storage"
)

type store struct {
	mu     sync.RWMutex
	tables map[string]*storage.Table
}

// New returns an empty in-memory store.
func New() storage.Store {
	return &store{tables: make(map[string]*storage.Table)}
}

func (s *store) Read(ctx context.Context, name string) (*storage.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[name]
	if !ok {
		return nil, storage.ErrNotExist
	}
	return clone(t), nil
}

func (s *store) Write(ctx context.Context, name string, table *storage.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables[name] = clone(table)
	return nil
}

func (s *store) Exists(ctx context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.tables[name]
	return ok, nil
}

func (s *store) Remove(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tables, name)
	return nil
}

// clone deep-copies a table so callers never alias stored state.
func clone(t *storage.Table) *storage.Table {
	out := storage.NewTable(append([]string(nil), t.Columns...)...)
	for _, row := range t.Rows {
		copied := make(storage.Row, len(row))
		for k, v := range row {
			copied[k] = v
		}
		out.Append(copied)
	}
	return out
}

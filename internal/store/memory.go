package store

import (
	"context"
	"sync"
)

// MemoryStore keeps the document in process memory. Used by tests and the seeder's dry runs.
type MemoryStore struct {
	mu  sync.Mutex
	doc *Document
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{doc: NewDocument()}
}

func (s *MemoryStore) View(ctx context.Context, fn func(doc *Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	doc := s.doc.Clone()
	s.mu.Unlock()
	return fn(doc)
}

func (s *MemoryStore) Update(ctx context.Context, fn func(doc *Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.doc.Clone()
	if err := fn(doc); err != nil {
		return err
	}
	s.doc = doc.Clone()
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// Package store persists the tracker's state as one document of flat
// collections. Every mutation is a full read, an in-memory change and a full
// write of the document.
package store

import (
	"context"
)

// Store is a swappable persistence backend for the Document.
type Store interface {
	// View loads the document and passes it to fn. Changes made by fn are discarded.
	View(ctx context.Context, fn func(doc *Document) error) error
	// Update loads the document, passes it to fn and writes it back if fn
	// returns nil. Nothing is written when fn fails.
	Update(ctx context.Context, fn func(doc *Document) error) error
	Close() error
}

// Reset replaces the stored document with an empty one.
func Reset(ctx context.Context, s Store) error {
	return s.Update(ctx, func(doc *Document) error {
		*doc = *NewDocument()
		return nil
	})
}

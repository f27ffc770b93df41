package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var collectionsBucket = []byte("Collections")

// BoltStore keeps each collection as a JSON value in a bbolt bucket.
// Update runs inside a single bbolt write transaction.
type BoltStore struct {
	db *bbolt.DB
}

var _ Store = (*BoltStore)(nil)

// NewBoltStore opens (or creates) the bbolt file at path.
func NewBoltStore(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt store: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(collectionsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bolt bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) View(ctx context.Context, fn func(doc *Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var doc *Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		doc, err = readBucket(tx)
		return err
	})
	if err != nil {
		return err
	}
	return fn(doc)
}

func (s *BoltStore) Update(ctx context.Context, fn func(doc *Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		doc, err := readBucket(tx)
		if err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
		encoded, err := encodeCollections(doc)
		if err != nil {
			return err
		}
		b := tx.Bucket(collectionsBucket)
		for name, data := range encoded {
			if err := b.Put([]byte(name), data); err != nil {
				return fmt.Errorf("put %s: %w", name, err)
			}
		}
		return nil
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func readBucket(tx *bbolt.Tx) (*Document, error) {
	b := tx.Bucket(collectionsBucket)
	if b == nil {
		return nil, fmt.Errorf("bucket %s not found", collectionsBucket)
	}
	raw := make(map[string][]byte, len(Collections))
	for _, name := range Collections {
		if v := b.Get([]byte(name)); v != nil {
			// bbolt values are only valid for the life of the transaction
			raw[name] = append([]byte(nil), v...)
		}
	}
	return decodeCollections(raw)
}

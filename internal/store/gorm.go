package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CollectionRecord is one collection of the document stored as a JSON column.
type CollectionRecord struct {
	Name      string         `gorm:"primaryKey;size:64"`
	Body      datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName keeps the table name stable regardless of naming strategy.
func (CollectionRecord) TableName() string { return "store_collections" }

// GormStore keeps the document in a SQL table, one row per collection.
// Update locks the rows for the length of one transaction.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

// NewGormStore migrates the collections table and returns the store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&CollectionRecord{}); err != nil {
		return nil, fmt.Errorf("auto-migrate store: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) View(ctx context.Context, fn func(doc *Document) error) error {
	doc, err := loadRecords(s.db.WithContext(ctx), false)
	if err != nil {
		return err
	}
	return fn(doc)
}

func (s *GormStore) Update(ctx context.Context, fn func(doc *Document) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := loadRecords(tx, true)
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
		now := time.Now().UTC()
		records := make([]CollectionRecord, 0, len(encoded))
		for _, name := range Collections {
			records = append(records, CollectionRecord{Name: name, Body: datatypes.JSON(encoded[name]), UpdatedAt: now})
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
		}).Create(&records).Error
	})
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func loadRecords(db *gorm.DB, forUpdate bool) (*Document, error) {
	var records []CollectionRecord
	q := db
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load collections: %w", err)
	}
	raw := make(map[string][]byte, len(records))
	for _, r := range records {
		raw[r.Name] = []byte(r.Body)
	}
	return decodeCollections(raw)
}

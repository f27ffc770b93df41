package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"hwstars/internal/config"
	"hwstars/internal/db"
)

// Open creates the backend selected by cfg.StoreDriver.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverFile:
		return NewFileStore(cfg.StorePath)
	case config.StoreDriverBolt:
		return NewBoltStore(boltPath(cfg.StorePath))
	case config.StoreDriverMySQL:
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("database init: %w", err)
		}
		return NewGormStore(gormDB)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// boltPath swaps the default .json extension for .db so both backends can
// share STORE_PATH without clobbering each other.
func boltPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return strings.TrimSuffix(path, filepath.Ext(path)) + ".db"
	}
	return path
}

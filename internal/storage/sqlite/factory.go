package sqlite

import (
	"program-catalog/internal/storage"
)

func init() {
	storage.Register("sqlite", func(cfg *storage.FactoryConfig) (storage.Storage, error) {
		return NewAdapter(cfg.SQLitePath)
	})
}

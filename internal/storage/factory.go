package storage

import (
	"fmt"
)

// FactoryConfig selects and configures a storage backend
type FactoryConfig struct {
	Type string // "sqlite" or "postgres"

	// SQLite settings
	SQLitePath string

	// PostgreSQL settings
	PostgresHost     string
	PostgresPort     string
	PostgresDB       string
	PostgresUser     string
	PostgresPassword string
	PostgresSSLMode  string
}

// NewStorageFunc builds a Storage from a FactoryConfig. The concrete
// adapters register themselves here to keep driver imports out of this
// package.
type NewStorageFunc func(cfg *FactoryConfig) (Storage, error)

var backends = map[string]NewStorageFunc{}

// Register makes a storage backend available under the given type name
func Register(name string, fn NewStorageFunc) {
	backends[name] = fn
}

// New builds the storage backend named by cfg.Type
func New(cfg *FactoryConfig) (Storage, error) {
	name := cfg.Type
	if name == "postgresql" {
		name = "postgres"
	}

	fn, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}

	return fn(cfg)
}

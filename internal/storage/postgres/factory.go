package postgres

import (
	"program-catalog/internal/storage"
)

func init() {
	storage.Register("postgres", func(cfg *storage.FactoryConfig) (storage.Storage, error) {
		return NewAdapter(&Config{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			Database: cfg.PostgresDB,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPassword,
			SSLMode:  cfg.PostgresSSLMode,
		})
	})
}

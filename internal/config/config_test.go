package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func validConfig() *Config {
	cfg := Load()
	cfg.JWTSecret = testSecret
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.CatalogEnabled)
	assert.Equal(t, "catalog_service_worker", cfg.CatalogServiceUsername)
	assert.Equal(t, 0, cfg.CatalogCacheTTL)
	assert.Equal(t, "catalog.api.data", cfg.CatalogCachePrefix)
	assert.Equal(t, "60s", cfg.TokenExpiration)
	assert.Equal(t, "sqlite", cfg.DatabaseType)
	assert.Equal(t, "./modulestore.db", cfg.ModulestorePath)
	assert.Empty(t, cfg.RedisAddress)
	assert.Empty(t, cfg.WarmupSchedule)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CATALOG_ENABLED", "true")
	t.Setenv("CATALOG_API_URL", "http://catalog.example.com/api/v1")
	t.Setenv("CATALOG_CACHE_TTL", "300")
	t.Setenv("TOKEN_EXPIRATION", "2m")

	cfg := Load()

	assert.True(t, cfg.CatalogEnabled)
	assert.Equal(t, "http://catalog.example.com/api/v1", cfg.CatalogAPIURL)
	assert.Equal(t, 300, cfg.CatalogCacheTTL)
	assert.Equal(t, "2m", cfg.TokenExpiration)
}

func TestCatalog(t *testing.T) {
	cfg := validConfig()
	cfg.CatalogEnabled = true
	cfg.CatalogAPIURL = "http://catalog.example.com/api/v1"
	cfg.CatalogCacheTTL = 300
	cfg.TokenExpiration = "90s"

	integration := cfg.Catalog()

	assert.True(t, integration.Enabled)
	assert.Equal(t, "http://catalog.example.com/api/v1", integration.InternalAPIURL)
	assert.Equal(t, "catalog_service_worker", integration.ServiceUsername)
	assert.Equal(t, 5*time.Minute, integration.CacheTTL)
	assert.Equal(t, "catalog.api.data", integration.CacheKeyPrefix)
	assert.Equal(t, 90*time.Second, integration.TokenExpiry)
	assert.True(t, integration.IsCacheEnabled())
}

func TestIsCacheEnabled(t *testing.T) {
	integration := &CatalogIntegration{CacheTTL: 0}
	assert.False(t, integration.IsCacheEnabled())

	integration.CacheTTL = time.Second
	assert.True(t, integration.IsCacheEnabled())
}

func TestValidate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	t.Run("missing JWT secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("short JWT secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWTSecret = "too-short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("invalid port", func(t *testing.T) {
		cfg := validConfig()
		cfg.Port = "not-a-port"
		assert.Error(t, cfg.Validate())

		cfg.Port = "70000"
		assert.Error(t, cfg.Validate())
	})

	t.Run("enabled catalog requires API URL", func(t *testing.T) {
		cfg := validConfig()
		cfg.CatalogEnabled = true
		cfg.CatalogAPIURL = ""
		assert.Error(t, cfg.Validate())

		cfg.CatalogAPIURL = "http://catalog.example.com"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("negative cache TTL", func(t *testing.T) {
		cfg := validConfig()
		cfg.CatalogCacheTTL = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("invalid token expiration", func(t *testing.T) {
		cfg := validConfig()
		cfg.TokenExpiration = "sixty seconds"
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown database type", func(t *testing.T) {
		cfg := validConfig()
		cfg.DatabaseType = "oracle"
		assert.Error(t, cfg.Validate())
	})

	t.Run("postgres requires connection settings", func(t *testing.T) {
		cfg := validConfig()
		cfg.DatabaseType = "postgres"
		cfg.PostgresHost = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("redis settings validated when configured", func(t *testing.T) {
		cfg := validConfig()
		cfg.RedisAddress = "localhost:6379"
		cfg.RedisDB = "99"
		assert.Error(t, cfg.Validate())

		cfg.RedisDB = "0"
		cfg.RedisPoolSize = "0"
		assert.Error(t, cfg.Validate())

		cfg.RedisPoolSize = "10"
		assert.NoError(t, cfg.Validate())
	})
}

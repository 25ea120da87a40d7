// Package config provides configuration management for the program catalog
// service. It handles loading configuration from environment variables with
// sensible defaults and validates the configuration so the service starts
// safely.
//
// Environment Variables:
//
// Application Settings:
//   - PORT: Server port (default: 8080)
//   - LOG_LEVEL: Logging level (default: info)
//
// Catalog Integration:
//   - CATALOG_ENABLED: Whether the catalog integration is enabled (default: false)
//   - CATALOG_API_URL: Base URL of the catalog service API
//   - CATALOG_SERVICE_USERNAME: Username of the service account used for catalog requests
//   - CATALOG_CACHE_TTL: Cache TTL in seconds, 0 disables caching (default: 0)
//   - CATALOG_CACHE_PREFIX: Prefix for catalog cache keys (default: catalog.api.data)
//   - TOKEN_EXPIRATION: Lifetime of signed API tokens (default: 60s)
//
// Database Configuration (service-user store):
//   - DATABASE_TYPE: Database type - "sqlite" or "postgres" (default: sqlite)
//   - DATABASE_PATH: SQLite database file path (default: ./catalog_service.db)
//   - POSTGRES_HOST: PostgreSQL host (required if using PostgreSQL)
//   - POSTGRES_PORT: PostgreSQL port (default: 5432)
//   - POSTGRES_DB: PostgreSQL database name (required if using PostgreSQL)
//   - POSTGRES_USER: PostgreSQL username (required if using PostgreSQL)
//   - POSTGRES_PASSWORD: PostgreSQL password
//   - POSTGRES_SSL_MODE: PostgreSQL SSL mode (default: disable)
//
// Course Store:
//   - MODULESTORE_PATH: SQLite file holding course descriptors (default: ./modulestore.db)
//
// Redis Configuration:
//   - REDIS_ADDRESS: Redis server address, empty uses an in-process cache
//   - REDIS_PASSWORD: Redis password
//   - REDIS_DB: Redis database number 0-15 (default: 0)
//   - REDIS_POOL_SIZE: Redis connection pool size (default: 10)
//
// Security Configuration:
//   - JWT_SECRET: Token signing secret (required, minimum 32 characters)
//
// Cache Warm-up:
//   - WARMUP_SCHEDULE: Cron expression for cache warm-up, empty disables it
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values for the catalog service.
// All fields correspond to environment variables that can be set to
// override the default values.
type Config struct {
	// Application settings
	Port     string // Server port number
	LogLevel string // Logging level (debug, info, warn, error)

	// Catalog integration settings
	CatalogEnabled         bool   // Whether the catalog integration is active
	CatalogAPIURL          string // Base URL of the catalog service API
	CatalogServiceUsername string // Service account username for catalog requests
	CatalogCacheTTL        int    // Catalog cache TTL in seconds, 0 disables caching
	CatalogCachePrefix     string // Prefix for catalog cache keys
	TokenExpiration        string // Lifetime of signed API tokens (e.g. "60s")

	// Database configuration for the service-user store
	DatabaseType     string // Database type: "sqlite" or "postgres"
	DatabasePath     string // Path to SQLite database file
	PostgresHost     string // PostgreSQL host address
	PostgresPort     string // PostgreSQL port number
	PostgresDB       string // PostgreSQL database name
	PostgresUser     string // PostgreSQL username
	PostgresPassword string // PostgreSQL password
	PostgresSSLMode  string // PostgreSQL SSL mode (disable, require, etc.)

	// Course store configuration
	ModulestorePath string // SQLite file holding course descriptors

	// Redis configuration for the shared cache
	RedisAddress  string // Redis server address (host:port), empty uses in-process cache
	RedisPassword string // Redis authentication password
	RedisDB       string // Redis database number (0-15)
	RedisPoolSize string // Redis connection pool size

	// Token signing configuration
	JWTSecret string // Secret key for token signing (required)

	// Cache warm-up configuration
	WarmupSchedule string // Cron expression for cache warm-up, empty disables it
}

// CatalogIntegration describes how to reach the external catalog service.
// It is the read-only "current configuration" consumed by the catalog
// package; callers receive a value and must not treat it as mutable state.
type CatalogIntegration struct {
	Enabled         bool          // Whether catalog requests should be made at all
	InternalAPIURL  string        // Base URL for catalog API requests
	ServiceUsername string        // Username of the service account
	CacheTTL        time.Duration // How long catalog responses stay cached
	CacheKeyPrefix  string        // Prefix applied to catalog cache keys
	TokenExpiry     time.Duration // Lifetime of signed API tokens
}

// IsCacheEnabled reports whether catalog responses should be cached
func (ci *CatalogIntegration) IsCacheEnabled() bool {
	return ci.CacheTTL > 0
}

// Load creates a new Config instance with values loaded from environment
// variables. If an environment variable is not set, the corresponding
// default value is used.
//
// This function does not validate the configuration - call Validate() on the
// returned Config to ensure all required values are properly set and valid.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Catalog integration
		CatalogEnabled:         getBoolEnv("CATALOG_ENABLED", false),
		CatalogAPIURL:          getEnv("CATALOG_API_URL", ""),
		CatalogServiceUsername: getEnv("CATALOG_SERVICE_USERNAME", "catalog_service_worker"),
		CatalogCacheTTL:        getIntEnv("CATALOG_CACHE_TTL", 0),
		CatalogCachePrefix:     getEnv("CATALOG_CACHE_PREFIX", "catalog.api.data"),
		TokenExpiration:        getEnv("TOKEN_EXPIRATION", "60s"),

		// Database configuration
		DatabaseType:     getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:     getEnv("DATABASE_PATH", "./catalog_service.db"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresDB:       getEnv("POSTGRES_DB", "catalog_service"),
		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", ""),
		PostgresSSLMode:  getEnv("POSTGRES_SSL_MODE", "disable"),

		// Course store configuration
		ModulestorePath: getEnv("MODULESTORE_PATH", "./modulestore.db"),

		// Redis configuration
		RedisAddress:  getEnv("REDIS_ADDRESS", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnv("REDIS_DB", "0"),
		RedisPoolSize: getEnv("REDIS_POOL_SIZE", "10"),

		// Token signing
		JWTSecret: getEnv("JWT_SECRET", ""),

		// Cache warm-up
		WarmupSchedule: getEnv("WARMUP_SCHEDULE", ""),
	}
}

// Catalog returns the catalog integration view of the configuration.
func (c *Config) Catalog() *CatalogIntegration {
	expiry, err := time.ParseDuration(c.TokenExpiration)
	if err != nil {
		expiry = 60 * time.Second
	}

	return &CatalogIntegration{
		Enabled:         c.CatalogEnabled,
		InternalAPIURL:  c.CatalogAPIURL,
		ServiceUsername: c.CatalogServiceUsername,
		CacheTTL:        time.Duration(c.CatalogCacheTTL) * time.Second,
		CacheKeyPrefix:  c.CatalogCachePrefix,
		TokenExpiry:     expiry,
	}
}

// getEnv retrieves an environment variable value or returns a default value if not set.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBoolEnv retrieves a boolean environment variable value or returns a default value.
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getIntEnv retrieves an integer environment variable value or returns a default value.
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Validate performs validation on the configuration to ensure all required
// fields are present and all values are valid. The application should call
// this method after loading configuration and before starting.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long for security")
	}

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be a valid port number between 1 and 65535")
	}

	if c.CatalogEnabled && c.CatalogAPIURL == "" {
		return fmt.Errorf("CATALOG_API_URL is required when the catalog integration is enabled")
	}

	if c.CatalogCacheTTL < 0 {
		return fmt.Errorf("CATALOG_CACHE_TTL must not be negative")
	}

	if _, err := time.ParseDuration(c.TokenExpiration); err != nil {
		return fmt.Errorf("TOKEN_EXPIRATION must be a valid duration (e.g., '60s', '5m')")
	}

	switch c.DatabaseType {
	case "sqlite", "postgres", "postgresql":
		// Valid database types
	default:
		return fmt.Errorf("DATABASE_TYPE must be 'sqlite' or 'postgres'")
	}

	if c.DatabaseType == "postgres" || c.DatabaseType == "postgresql" {
		if c.PostgresHost == "" {
			return fmt.Errorf("POSTGRES_HOST is required when using PostgreSQL")
		}
		if c.PostgresDB == "" {
			return fmt.Errorf("POSTGRES_DB is required when using PostgreSQL")
		}
		if c.PostgresUser == "" {
			return fmt.Errorf("POSTGRES_USER is required when using PostgreSQL")
		}
		if port, err := strconv.Atoi(c.PostgresPort); err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("POSTGRES_PORT must be a valid port number")
		}
	}

	if c.RedisAddress != "" {
		if db, err := strconv.Atoi(c.RedisDB); err != nil || db < 0 || db > 15 {
			return fmt.Errorf("REDIS_DB must be a number between 0 and 15")
		}
		if poolSize, err := strconv.Atoi(c.RedisPoolSize); err != nil || poolSize < 1 {
			return fmt.Errorf("REDIS_POOL_SIZE must be a positive number")
		}
	}

	return nil
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"program-catalog/internal/auth"
	"program-catalog/internal/cache"
	"program-catalog/internal/catalog"
	"program-catalog/internal/common/logging"
	"program-catalog/internal/config"
	"program-catalog/internal/handlers"
	"program-catalog/internal/modulestore"
	"program-catalog/internal/redis"
	"program-catalog/internal/server"
	"program-catalog/internal/storage"
	_ "program-catalog/internal/storage/postgres"
	_ "program-catalog/internal/storage/sqlite"
	"program-catalog/internal/warmup"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := logging.NewZapLogger(logging.ParseLevel(cfg.LogLevel), nil)
	if err != nil {
		panic(err)
	}
	logging.SetGlobalLogger(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", err)
		os.Exit(1)
	}

	// Service-user store
	store, err := storage.New(&storage.FactoryConfig{
		Type:             cfg.DatabaseType,
		SQLitePath:       cfg.DatabasePath,
		PostgresHost:     cfg.PostgresHost,
		PostgresPort:     cfg.PostgresPort,
		PostgresDB:       cfg.PostgresDB,
		PostgresUser:     cfg.PostgresUser,
		PostgresPassword: cfg.PostgresPassword,
		PostgresSSLMode:  cfg.PostgresSSLMode,
	})
	if err != nil {
		logger.Error("failed to initialize user storage", err)
		os.Exit(1)
	}
	defer store.Close()

	// Course store
	courses, err := modulestore.NewSQLiteStore(cfg.ModulestorePath)
	if err != nil {
		logger.Error("failed to open course store", err)
		os.Exit(1)
	}
	defer courses.Close()

	// Shared cache: Redis when configured, in-process otherwise
	var catalogCache cache.Cache
	if cfg.RedisAddress != "" {
		redisClient, err := redis.NewClient(&redis.Config{
			Address:  cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       atoiOrZero(cfg.RedisDB),
			PoolSize: atoiOrZero(cfg.RedisPoolSize),
		})
		if err != nil {
			logger.Error("failed to connect to Redis", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		catalogCache = cache.NewRedisCache(redisClient.Raw(), "")
		logger.Info("using Redis cache", logging.String("address", cfg.RedisAddress))
	} else {
		catalogCache = cache.NewLocalCache(5*time.Minute, 10*time.Minute)
		logger.Info("using in-process cache")
	}

	builder := auth.NewTokenBuilder(cfg.JWTSecret, "program-catalog")

	service := catalog.New(cfg.Catalog, store, courses, catalogCache, builder, nil, logger)

	// Optional cache warm-up schedule
	if cfg.WarmupSchedule != "" {
		warmer := warmup.New(service, cfg.WarmupSchedule, logger)
		if err := warmer.Start(); err != nil {
			logger.Error("failed to start cache warm-up", err)
			os.Exit(1)
		}
		defer warmer.Stop()
		logger.Info("cache warm-up scheduled", logging.String("schedule", cfg.WarmupSchedule))
	}

	h := handlers.New(service, logger)

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/programs", h.GetPrograms).Methods(http.MethodGet)
	api.HandleFunc("/programs/{slug}", h.GetProgram).Methods(http.MethodGet)
	api.HandleFunc("/program_types", h.GetProgramTypes).Methods(http.MethodGet)
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	srv := server.New(router, cfg.Port)
	srv.Start()
	logger.Info("server started", logging.String("port", cfg.Port))

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", err)
	}
}

func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

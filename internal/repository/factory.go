// Package repository selects and opens the configured DocumentStore driver.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"coursetree/internal/config"
	"coursetree/internal/domain/repositories"
	"coursetree/internal/repository/file"
	"coursetree/internal/repository/gcs"
	"coursetree/internal/repository/memory"
	"coursetree/internal/repository/postgres"
	"coursetree/internal/repository/redis"
)

// OpenStore opens the driver named by cfg.StoreDriver. The caller must Close it.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.DocumentStore, error) {
	switch cfg.StoreDriver {
	case config.DriverFile:
		return file.NewStore(cfg.ContentFile, logger)

	case config.DriverMemory:
		logger.Warn("memory store selected: content is lost on restart")
		return memory.NewStore(nil), nil

	case config.DriverPostgres:
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create connection pool: %w", err)
		}
		store := postgres.NewDocumentStore(&postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		}, true)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		logger.Info("database connected", "table_prefix", cfg.TablePrefix)
		return store, nil

	case config.DriverGCS:
		return gcs.NewStore(ctx, gcs.Config{
			Bucket:       cfg.GCSBucket,
			Object:       cfg.GCSObject,
			EmulatorHost: cfg.StorageEmulatorHost,
		}, logger)

	case config.DriverRedis:
		return redis.NewStore(ctx, redis.Config{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisKeyPrefix,
		}, logger)

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

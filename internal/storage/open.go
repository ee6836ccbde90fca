package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/noah-isme/elitebuilders-client/internal/config"
	"github.com/noah-isme/elitebuilders-client/internal/database"
)

// Open builds the storage backend selected by cfg. The returned closer releases
// any connection the backend holds and is never nil.
func Open(ctx context.Context, cfg config.Config, logger zerolog.Logger) (Storage, io.Closer, error) {
	log := logger.With().Str("component", "storage").Str("driver", cfg.StorageDriver).Logger()

	switch cfg.StorageDriver {
	case config.StorageMemory:
		return NewMemoryStorage(), nopCloser{}, nil
	case config.StorageFile, "":
		log.Debug().Str("path", cfg.StoragePath).Msg("using file storage")
		return NewFileStorage(cfg.StoragePath), nopCloser{}, nil
	case config.StorageRedis:
		client, err := database.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStorage(client, cfg.StorageKeyPrefix), client, nil
	case config.StorageSQLite:
		db, err := database.ConnectSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store, err := NewGormStorage(db)
		if err != nil {
			return nil, nil, fmt.Errorf("migrate preferences: %w", err)
		}
		return store, gormCloser{store}, nil
	case config.StoragePostgres:
		db, err := database.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		store, err := NewGormStorage(db)
		if err != nil {
			return nil, nil, fmt.Errorf("migrate preferences: %w", err)
		}
		return store, gormCloser{store}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type gormCloser struct {
	store *GormStorage
}

func (g gormCloser) Close() error {
	sqlDB, err := g.store.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

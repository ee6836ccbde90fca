package storage

import (
	"context"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/elitebuilders-client/internal/config"
	"github.com/noah-isme/elitebuilders-client/internal/database"
)

func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, KeyToken)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, KeyToken, "abc"))
	value, err := s.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Equal(t, "abc", value)

	require.NoError(t, s.Set(ctx, KeyToken, "def"))
	value, err = s.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Equal(t, "def", value)

	require.NoError(t, s.Set(ctx, KeyDarkMode, "true"))
	require.Equal(t, "true", GetOr(ctx, s, KeyDarkMode, "false"))

	require.NoError(t, s.Delete(ctx, KeyToken))
	_, err = s.Get(ctx, KeyToken)
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, s.Delete(ctx, KeyToken))

	require.Equal(t, "fallback", GetOr(ctx, s, KeyToken, "fallback"))
}

func TestMemoryStorage(t *testing.T) {
	exerciseStorage(t, NewMemoryStorage())
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	exerciseStorage(t, NewFileStorage(path))

	reopened := NewFileStorage(path)
	value, err := reopened.Get(context.Background(), KeyDarkMode)
	require.NoError(t, err)
	require.Equal(t, "true", value)
}

func TestRedisStorage(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	defer client.Close()

	exerciseStorage(t, NewRedisStorage(client, "test:"))
	require.True(t, mini.Exists("test:darkMode"))
}

func TestGormStorage(t *testing.T) {
	db, err := database.ConnectSQLite(":memory:")
	require.NoError(t, err)

	store, err := NewGormStorage(db)
	require.NoError(t, err)
	exerciseStorage(t, store)
}

func TestGetOrNilStorage(t *testing.T) {
	require.Equal(t, "x", GetOr(context.Background(), nil, KeyToken, "x"))
}

func TestOpenSelectsDriver(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	s, closer, err := Open(ctx, config.Config{StorageDriver: config.StorageMemory}, logger)
	require.NoError(t, err)
	require.IsType(t, &MemoryStorage{}, s)
	require.NoError(t, closer.Close())

	s, closer, err = Open(ctx, config.Config{StorageDriver: config.StorageFile, StoragePath: filepath.Join(t.TempDir(), "s.json")}, logger)
	require.NoError(t, err)
	require.IsType(t, &FileStorage{}, s)
	require.NoError(t, closer.Close())

	s, closer, err = Open(ctx, config.Config{StorageDriver: config.StorageSQLite, SQLitePath: filepath.Join(t.TempDir(), "s.db")}, logger)
	require.NoError(t, err)
	require.IsType(t, &GormStorage{}, s)
	require.NoError(t, closer.Close())

	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()
	s, closer, err = Open(ctx, config.Config{StorageDriver: config.StorageRedis, RedisURL: "redis://" + mini.Addr()}, logger)
	require.NoError(t, err)
	require.IsType(t, &RedisStorage{}, s)
	require.NoError(t, closer.Close())

	_, _, err = Open(ctx, config.Config{StorageDriver: "floppy"}, logger)
	require.Error(t, err)
}

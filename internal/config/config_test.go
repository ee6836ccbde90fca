package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ELITE_STORAGE_PATH", t.TempDir()+"/state.json")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "EliteBuilders", cfg.AppName)
	require.Equal(t, ServicesMock, cfg.ServicesMode)
	require.Equal(t, StorageFile, cfg.StorageDriver)
	require.Equal(t, 15*time.Second, cfg.APITimeout)
	require.Equal(t, 1280, cfg.ViewportWidth)
	require.False(t, cfg.PushEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ELITE_SERVICES_MODE", "HTTP")
	t.Setenv("ELITE_API_BASE_URL", "https://api.example.com/")
	t.Setenv("ELITE_API_TIMEOUT", "3s")
	t.Setenv("ELITE_STORAGE_DRIVER", "redis")
	t.Setenv("ELITE_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("ELITE_PUSH_REDIS_CHANNEL", "elite:notifications")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ServicesHTTP, cfg.ServicesMode)
	require.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	require.Equal(t, 3*time.Second, cfg.APITimeout)
	require.Equal(t, StorageRedis, cfg.StorageDriver)
	require.True(t, cfg.PushEnabled())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("timeout", func(t *testing.T) {
		t.Setenv("ELITE_API_TIMEOUT", "soon")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("driver", func(t *testing.T) {
		t.Setenv("ELITE_STORAGE_DRIVER", "floppy")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("postgres without dsn", func(t *testing.T) {
		t.Setenv("ELITE_STORAGE_DRIVER", "postgres")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("services mode", func(t *testing.T) {
		t.Setenv("ELITE_SERVICES_MODE", "grpc")
		_, err := Load()
		require.Error(t, err)
	})
}

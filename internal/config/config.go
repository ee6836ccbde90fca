package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported collaborator modes.
const (
	ServicesMock = "mock"
	ServicesHTTP = "http"
)

// Supported storage drivers.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageRedis    = "redis"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config holds runtime configuration values for the client.
type Config struct {
	AppName          string
	AppEnv           string
	LogLevel         string
	ServicesMode     string
	APIBaseURL       string
	APITimeout       time.Duration
	StorageDriver    string
	StoragePath      string
	SQLitePath       string
	DatabaseURL      string
	RedisURL         string
	StorageKeyPrefix string
	PushRedisChannel string
	PushNATSURL      string
	PushNATSSubject  string
	PushWebSocketURL string
	ViewportWidth    int
}

// PushEnabled reports whether at least one push notification source is configured.
func (c Config) PushEnabled() bool {
	if c.PushRedisChannel != "" && c.RedisURL != "" {
		return true
	}
	if c.PushNATSURL != "" && c.PushNATSSubject != "" {
		return true
	}
	return c.PushWebSocketURL != ""
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ELITE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "EliteBuilders")
	v.SetDefault("app.env", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("services.mode", ServicesMock)
	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout", "15s")
	v.SetDefault("storage.driver", StorageFile)
	v.SetDefault("storage.path", defaultStatePath())
	v.SetDefault("storage.sqlite_path", "elitebuilders.db")
	v.SetDefault("storage.key_prefix", "elitebuilders:")
	v.SetDefault("viewport.width", 1280)

	timeoutString := v.GetString("api.timeout")
	if timeoutString == "" {
		timeoutString = "15s"
	}

	timeout, err := time.ParseDuration(timeoutString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid api timeout: %w", err)
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		LogLevel:         strings.ToLower(v.GetString("log.level")),
		ServicesMode:     strings.ToLower(v.GetString("services.mode")),
		APIBaseURL:       strings.TrimRight(v.GetString("api.base_url"), "/"),
		APITimeout:       timeout,
		StorageDriver:    strings.ToLower(v.GetString("storage.driver")),
		StoragePath:      v.GetString("storage.path"),
		SQLitePath:       v.GetString("storage.sqlite_path"),
		DatabaseURL:      v.GetString("database.url"),
		RedisURL:         v.GetString("redis.url"),
		StorageKeyPrefix: v.GetString("storage.key_prefix"),
		PushRedisChannel: v.GetString("push.redis_channel"),
		PushNATSURL:      v.GetString("push.nats_url"),
		PushNATSSubject:  v.GetString("push.nats_subject"),
		PushWebSocketURL: v.GetString("push.websocket_url"),
		ViewportWidth:    v.GetInt("viewport.width"),
	}

	switch cfg.ServicesMode {
	case ServicesMock, ServicesHTTP:
	default:
		return Config{}, fmt.Errorf("unknown services mode %q", cfg.ServicesMode)
	}

	switch cfg.StorageDriver {
	case StorageMemory, StorageFile, StorageSQLite:
	case StorageRedis:
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("redis storage requires ELITE_REDIS_URL")
		}
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("postgres storage requires ELITE_DATABASE_URL")
		}
	default:
		return Config{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if cfg.ViewportWidth <= 0 {
		cfg.ViewportWidth = 1280
	}

	return cfg, nil
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".elitebuilders.json"
	}
	return filepath.Join(home, ".elitebuilders", "state.json")
}

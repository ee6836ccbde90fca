package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/noah-isme/elitebuilders-client/internal/apiclient"
	"github.com/noah-isme/elitebuilders-client/internal/config"
	"github.com/noah-isme/elitebuilders-client/internal/database"
	"github.com/noah-isme/elitebuilders-client/internal/push"
	"github.com/noah-isme/elitebuilders-client/internal/service"
	"github.com/noah-isme/elitebuilders-client/internal/storage"
	"github.com/noah-isme/elitebuilders-client/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// app bundles everything a command needs.
type app struct {
	cfg     config.Config
	logger  zerolog.Logger
	storage storage.Storage
	store   *store.Store
	out     io.Writer
	closers []io.Closer
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
}

func newLogger(cfg config.Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("app", cfg.AppName).Logger()
}

func bootstrap(ctx context.Context, out, errOut io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger(cfg, errOut)

	backing, closer, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	a := &app{cfg: cfg, logger: logger, storage: backing, out: out, closers: []io.Closer{closer}}

	collaborators := service.NewMockCollaborators(logger)
	if cfg.ServicesMode == config.ServicesHTTP {
		client, err := apiclient.New(apiclient.Options{
			BaseURL: cfg.APIBaseURL,
			Timeout: cfg.APITimeout,
			Tokens: func(ctx context.Context) string {
				return storage.GetOr(ctx, backing, storage.KeyToken, "")
			},
			Logger: logger,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create api client: %w", err)
		}
		collaborators = apiclient.NewCollaborators(client)
	}

	a.store = store.New(ctx, store.Options{
		Services:      collaborators,
		Storage:       backing,
		Logger:        logger,
		ViewportWidth: cfg.ViewportWidth,
	})

	return a, nil
}

// pushSources builds the configured push sources. Connections are closed with the app.
func (a *app) pushSources(ctx context.Context) ([]push.Source, error) {
	var sources []push.Source

	if a.cfg.PushRedisChannel != "" && a.cfg.RedisURL != "" {
		client, err := database.ConnectRedis(ctx, a.cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client)
		sources = append(sources, push.NewRedisSource(client, a.cfg.PushRedisChannel))
	}

	if a.cfg.PushNATSURL != "" && a.cfg.PushNATSSubject != "" {
		conn, err := nats.Connect(a.cfg.PushNATSURL, nats.Name(a.cfg.AppName))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to nats: %w", err)
		}
		a.closers = append(a.closers, closerFunc(func() error { conn.Close(); return nil }))
		sources = append(sources, push.NewNATSSource(conn, a.cfg.PushNATSSubject))
	}

	if a.cfg.PushWebSocketURL != "" {
		sources = append(sources, push.NewWebSocketSource(a.cfg.PushWebSocketURL, func() string {
			return a.store.GetState().Auth.Token
		}))
	}

	return sources, nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Package push feeds notifications delivered out of band (Redis pub/sub, NATS,
// websocket) into the notification slice.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/elitebuilders-client/internal/models"
	"github.com/noah-isme/elitebuilders-client/internal/observability"
)

// Sink receives accepted notifications.
type Sink interface {
	AddNotification(notification models.Notification)
}

// Handler processes one raw payload from a source.
type Handler func(payload []byte)

// Source delivers raw payloads until ctx ends.
type Source interface {
	Name() string
	Run(ctx context.Context, handle Handler) error
}

// Envelope is the wrapped form a publisher may send.
type Envelope struct {
	Source       string              `json:"source"`
	Notification models.Notification `json:"notification"`
	SentAt       time.Time           `json:"sent_at"`
}

// Listener fans payloads from its sources into the sink.
type Listener struct {
	sink    Sink
	sources []Source
	policy  *bluemonday.Policy
	logger  zerolog.Logger
	now     func() time.Time
	wg      sync.WaitGroup
}

// NewListener builds a Listener over the given sources.
func NewListener(sink Sink, logger zerolog.Logger, sources ...Source) *Listener {
	return &Listener{
		sink:    sink,
		sources: sources,
		policy:  bluemonday.StrictPolicy(),
		logger:  logger.With().Str("component", "push_listener").Logger(),
		now:     time.Now,
	}
}

// Start runs every source on its own goroutine until ctx ends.
func (l *Listener) Start(ctx context.Context) {
	for _, source := range l.sources {
		source := source
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			name := source.Name()
			l.logger.Info().Str("source", name).Msg("push source started")
			err := source.Run(ctx, func(payload []byte) { l.Handle(name, payload) })
			if err != nil && !errors.Is(err, context.Canceled) {
				l.logger.Error().Err(err).Str("source", name).Msg("push source stopped")
				return
			}
			l.logger.Info().Str("source", name).Msg("push source stopped")
		}()
	}
}

// Wait blocks until every source has returned.
func (l *Listener) Wait() {
	l.wg.Wait()
}

// Handle decodes, sanitizes and forwards one payload. It reports whether the
// notification was accepted.
func (l *Listener) Handle(source string, payload []byte) (models.Notification, bool) {
	notification, err := decode(payload)
	if err != nil {
		observability.PushNotifications().WithLabelValues(source, "invalid").Inc()
		l.logger.Warn().Err(err).Str("source", source).Msg("invalid push payload")
		return models.Notification{}, false
	}

	notification.Title = strings.TrimSpace(l.policy.Sanitize(notification.Title))
	notification.Message = strings.TrimSpace(l.policy.Sanitize(notification.Message))
	if notification.Message == "" {
		observability.PushNotifications().WithLabelValues(source, "dropped").Inc()
		l.logger.Debug().Str("source", source).Msg("dropping push notification without message")
		return models.Notification{}, false
	}

	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = l.now().UTC()
	}
	notification.Type = notification.Type.Normalize()

	l.sink.AddNotification(notification)
	observability.PushNotifications().WithLabelValues(source, "accepted").Inc()
	return notification, true
}

type probe struct {
	Notification json.RawMessage `json:"notification"`
}

func decode(payload []byte) (models.Notification, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return models.Notification{}, errors.New("empty payload")
	}

	var p probe
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return models.Notification{}, err
	}

	var notification models.Notification
	if len(p.Notification) > 0 && !bytes.Equal(p.Notification, []byte("null")) {
		var envelope Envelope
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return models.Notification{}, err
		}
		notification = envelope.Notification
	} else if err := json.Unmarshal(trimmed, &notification); err != nil {
		return models.Notification{}, err
	}
	return notification, nil
}

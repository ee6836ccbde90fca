package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/elitebuilders-client/internal/models"
)

type mockNotificationService struct {
	mu            sync.Mutex
	notifications []models.Notification
	logger        zerolog.Logger
}

// NewMockNotificationService returns a NotificationService over the fixture inbox.
// Read flags persist for the lifetime of the service.
func NewMockNotificationService(logger zerolog.Logger) NotificationService {
	return &mockNotificationService{
		notifications: fixtureNotifications(time.Now().UTC()),
		logger:        logger.With().Str("component", "mock_notification_service").Logger(),
	}
}

func (s *mockNotificationService) GetNotifications(ctx context.Context, unreadOnly bool) ([]models.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]models.Notification, 0, len(s.notifications))
	for _, notification := range s.notifications {
		if unreadOnly && notification.Read {
			continue
		}
		results = append(results, notification)
	}
	return results, nil
}

func (s *mockNotificationService) GetUnreadCount(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CountUnread(s.notifications), nil
}

func (s *mockNotificationService) MarkAsRead(ctx context.Context, id string) (models.Notification, error) {
	if err := ctx.Err(); err != nil {
		return models.Notification{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			s.logger.Debug().Str("notification_id", id).Msg("mock notification marked read")
			return s.notifications[i], nil
		}
	}
	return models.Notification{}, ErrNotificationNotFound
}

func (s *mockNotificationService) MarkAllAsRead(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		s.notifications[i].Read = true
	}
	return nil
}

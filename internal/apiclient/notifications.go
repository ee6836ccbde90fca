package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/noah-isme/elitebuilders-client/internal/dto"
	"github.com/noah-isme/elitebuilders-client/internal/models"
	"github.com/noah-isme/elitebuilders-client/internal/service"
)

type notificationService struct {
	client *Client
}

// NewNotificationService returns the HTTP NotificationService.
func NewNotificationService(c *Client) service.NotificationService {
	return &notificationService{client: c}
}

func (s *notificationService) GetNotifications(ctx context.Context, unreadOnly bool) ([]models.Notification, error) {
	var query url.Values
	if unreadOnly {
		query = url.Values{"unread_only": []string{"true"}}
	}

	notifications := []models.Notification{}
	err := s.client.doJSON(ctx, "notifications.list", request{
		method: http.MethodGet,
		path:   "/api/notifications",
		query:  query,
	}, &notifications)
	if err != nil {
		return nil, err
	}
	for i := range notifications {
		notifications[i].Type = notifications[i].Type.Normalize()
	}
	return notifications, nil
}

// GetUnreadCount accepts either a bare integer or a {"count": n} object.
func (s *notificationService) GetUnreadCount(ctx context.Context) (int, error) {
	body, err := s.client.do(ctx, "notifications.unread_count", request{
		method: http.MethodGet,
		path:   "/api/notifications/unread-count",
	})
	if err != nil {
		return 0, err
	}

	var count int
	if err := json.Unmarshal(body, &count); err == nil {
		return count, nil
	}

	var wrapped dto.UnreadCountResponse
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return 0, fmt.Errorf("decode notifications.unread_count response: %w", err)
	}
	return wrapped.Count, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, id string) (models.Notification, error) {
	var notification models.Notification
	err := s.client.doJSON(ctx, "notifications.mark_read", request{
		method: http.MethodPut,
		path:   "/api/notifications/" + url.PathEscape(id) + "/read",
	}, &notification)
	if err != nil {
		return models.Notification{}, err
	}
	notification.Type = notification.Type.Normalize()
	return notification, nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context) error {
	return s.client.doJSON(ctx, "notifications.mark_all_read", request{
		method: http.MethodPut,
		path:   "/api/notifications/mark-all-read",
	}, nil)
}

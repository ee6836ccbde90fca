package store

import (
	"context"

	"github.com/noah-isme/elitebuilders-client/internal/models"
)

// NotificationState holds the notification inbox.
type NotificationState struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
	Loading       bool                  `json:"loading"`
	Error         string                `json:"error,omitempty"`

	inFlight int
}

var fetchNotificationsThunk = AsyncThunk[bool, []models.Notification]{
	TypePrefix:     PrefixFetchNotifications,
	DefaultMessage: "Failed to fetch notifications",
	Run: func(ctx context.Context, unreadOnly bool, api ThunkAPI) ([]models.Notification, error) {
		return api.Services.Notifications.GetNotifications(ctx, unreadOnly)
	},
}

var fetchUnreadCountThunk = AsyncThunk[struct{}, int]{
	TypePrefix:     PrefixFetchUnreadCount,
	DefaultMessage: "Failed to fetch unread count",
	Run: func(ctx context.Context, _ struct{}, api ThunkAPI) (int, error) {
		return api.Services.Notifications.GetUnreadCount(ctx)
	},
}

var markAsReadThunk = AsyncThunk[string, models.Notification]{
	TypePrefix:     PrefixMarkAsRead,
	DefaultMessage: "Failed to mark notification as read",
	Run: func(ctx context.Context, id string, api ThunkAPI) (models.Notification, error) {
		notification, err := api.Services.Notifications.MarkAsRead(ctx, id)
		if err != nil {
			return models.Notification{}, err
		}
		if notification.ID == "" {
			notification.ID = id
		}
		return notification, nil
	},
}

var markAllAsReadThunk = AsyncThunk[struct{}, struct{}]{
	TypePrefix:     PrefixMarkAllAsRead,
	DefaultMessage: "Failed to mark all notifications as read",
	Run: func(ctx context.Context, _ struct{}, api ThunkAPI) (struct{}, error) {
		return struct{}{}, api.Services.Notifications.MarkAllAsRead(ctx)
	},
}

// FetchNotifications replaces the inbox and recounts unread entries over the returned list.
func (s *Store) FetchNotifications(ctx context.Context, unreadOnly bool) *Task[[]models.Notification] {
	return fetchNotificationsThunk.Start(ctx, s, unreadOnly)
}

// FetchUnreadCount replaces the unread count from the server without touching the list.
func (s *Store) FetchUnreadCount(ctx context.Context) *Task[int] {
	return fetchUnreadCountThunk.Start(ctx, s, struct{}{})
}

// MarkNotificationAsRead marks one entry read and decrements the unread count if it was unread.
func (s *Store) MarkNotificationAsRead(ctx context.Context, id string) *Task[models.Notification] {
	return markAsReadThunk.Start(ctx, s, id)
}

// MarkAllNotificationsAsRead marks every held entry read and zeroes the unread count.
func (s *Store) MarkAllNotificationsAsRead(ctx context.Context) *Task[struct{}] {
	return markAllAsReadThunk.Start(ctx, s, struct{}{})
}

// AddNotification prepends a pushed notification.
func (s *Store) AddNotification(notification models.Notification) {
	s.Dispatch(Action{Type: ActionNotificationsAdd, Payload: notification})
}

// ClearNotifications empties the inbox and the unread count.
func (s *Store) ClearNotifications() {
	s.Dispatch(Action{Type: ActionNotificationsClear})
}

func notificationReducer(state NotificationState, action Action) NotificationState {
	switch action.Type {
	case ActionNotificationsAdd:
		notification, ok := action.Payload.(models.Notification)
		if !ok {
			return state
		}
		list := make([]models.Notification, 0, len(state.Notifications)+1)
		list = append(list, notification)
		state.Notifications = append(list, state.Notifications...)
		if !notification.Read {
			state.UnreadCount++
		}
		return state
	case ActionNotificationsClear:
		state.Notifications = nil
		state.UnreadCount = 0
		return state
	}

	for _, prefix := range []string{PrefixFetchNotifications, PrefixFetchUnreadCount, PrefixMarkAsRead, PrefixMarkAllAsRead} {
		phase, ok := hasPrefix(action, prefix)
		if !ok {
			continue
		}

		switch phase {
		case phasePending:
			state.inFlight = begin(state.inFlight)
			state.Error = ""
		case phaseFulfilled:
			state.inFlight = end(state.inFlight)
			state = applyNotificationResult(state, prefix, action.Payload)
		case phaseRejected:
			state.inFlight = end(state.inFlight)
			state.Error = action.Error
		}
		state.Loading = state.inFlight > 0
		return state
	}
	return state
}

func applyNotificationResult(state NotificationState, prefix string, payload any) NotificationState {
	switch prefix {
	case PrefixFetchNotifications:
		if list, ok := payload.([]models.Notification); ok {
			state.Notifications = list
			state.UnreadCount = models.CountUnread(list)
		}
	case PrefixFetchUnreadCount:
		if count, ok := payload.(int); ok {
			state.UnreadCount = count
		}
	case PrefixMarkAsRead:
		updated, ok := payload.(models.Notification)
		if !ok {
			return state
		}
		for i, existing := range state.Notifications {
			if existing.ID != updated.ID {
				continue
			}
			if !existing.Read && state.UnreadCount > 0 {
				state.UnreadCount--
			}
			list := make([]models.Notification, len(state.Notifications))
			copy(list, state.Notifications)
			list[i] = mergeReadNotification(existing, updated)
			state.Notifications = list
			break
		}
	case PrefixMarkAllAsRead:
		list := make([]models.Notification, len(state.Notifications))
		for i, existing := range state.Notifications {
			existing.Read = true
			list[i] = existing
		}
		state.Notifications = list
		state.UnreadCount = 0
	}
	return state
}

// mergeReadNotification lays the server's entry over the held one. The server
// may answer with no body, so empty fields keep their local values.
func mergeReadNotification(existing, updated models.Notification) models.Notification {
	merged := existing
	if updated.UserID != "" {
		merged.UserID = updated.UserID
	}
	if updated.Title != "" {
		merged.Title = updated.Title
	}
	if updated.Message != "" {
		merged.Message = updated.Message
	}
	if updated.Type != "" {
		merged.Type = updated.Type
	}
	if updated.ReferenceID != nil {
		merged.ReferenceID = updated.ReferenceID
	}
	if !updated.CreatedAt.IsZero() {
		merged.CreatedAt = updated.CreatedAt
	}
	merged.Read = true
	return merged
}

// SelectNotifications returns the held inbox.
func SelectNotifications(state RootState) []models.Notification {
	return state.Notifications.Notifications
}

// SelectUnreadCount returns the unread counter.
func SelectUnreadCount(state RootState) int { return state.Notifications.UnreadCount }

// SelectNotificationLoading reports whether a notification operation is in flight.
func SelectNotificationLoading(state RootState) bool { return state.Notifications.Loading }

// SelectNotificationError returns the last notification rejection message.
func SelectNotificationError(state RootState) string { return state.Notifications.Error }

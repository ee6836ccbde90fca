package models

import "time"

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationSystemAnnouncement  NotificationType = "SYSTEM_ANNOUNCEMENT"
	NotificationBadgeAwarded        NotificationType = "BADGE_AWARDED"
	NotificationSubmissionEvaluated NotificationType = "SUBMISSION_EVALUATED"
	NotificationSubmissionReviewed  NotificationType = "SUBMISSION_REVIEWED"
	NotificationOther               NotificationType = "OTHER"
)

// Normalize maps unknown notification types to OTHER.
func (t NotificationType) Normalize() NotificationType {
	switch t {
	case NotificationSystemAnnouncement, NotificationBadgeAwarded, NotificationSubmissionEvaluated, NotificationSubmissionReviewed, NotificationOther:
		return t
	default:
		return NotificationOther
	}
}

// Notification represents an in-app notification targeted to a specific user.
type Notification struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Type        NotificationType `json:"type"`
	ReferenceID *string          `json:"reference_id"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"created_at"`
}

// CountUnread returns the number of notifications with read=false.
func CountUnread(notifications []Notification) int {
	count := 0
	for _, notification := range notifications {
		if !notification.Read {
			count++
		}
	}
	return count
}

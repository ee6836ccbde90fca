package service

import (
	"context"

	"github.com/noah-isme/elitebuilders-client/internal/dto"
	"github.com/noah-isme/elitebuilders-client/internal/models"
)

// AuthService is the user-data collaborator.
type AuthService interface {
	Login(ctx context.Context, credentials dto.LoginRequest) (dto.TokenResponse, error)
	Register(ctx context.Context, payload dto.RegisterRequest) (dto.TokenResponse, error)
	GetUserProfile(ctx context.Context) (models.User, error)
	Logout(ctx context.Context) error
}

// ChallengeService is the challenge-data collaborator.
type ChallengeService interface {
	GetChallenges(ctx context.Context, query dto.ChallengeQuery) ([]models.Challenge, error)
	GetChallengeByID(ctx context.Context, id string) (models.Challenge, error)
	GetRecommendedChallenges(ctx context.Context) ([]models.Challenge, error)
}

// SubmissionService is the submission-data collaborator.
type SubmissionService interface {
	GetUserSubmissions(ctx context.Context, challengeID string) ([]models.Submission, error)
	GetSubmissionByID(ctx context.Context, id string) (models.SubmissionWithEvaluation, error)
	CreateSubmission(ctx context.Context, payload dto.SubmissionCreateRequest) (models.Submission, error)
	UpdateSubmission(ctx context.Context, id string, payload dto.SubmissionUpdateRequest) (models.Submission, error)
	EvaluateSubmission(ctx context.Context, id string) (models.SubmissionWithEvaluation, error)
}

// NotificationService is the notification-data collaborator.
type NotificationService interface {
	GetNotifications(ctx context.Context, unreadOnly bool) ([]models.Notification, error)
	GetUnreadCount(ctx context.Context) (int, error)
	MarkAsRead(ctx context.Context, id string) (models.Notification, error)
	MarkAllAsRead(ctx context.Context) error
}

// Collaborators bundles the four data collaborators consumed by the store.
type Collaborators struct {
	Auth          AuthService
	Challenges    ChallengeService
	Submissions   SubmissionService
	Notifications NotificationService
}

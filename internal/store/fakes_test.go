package store

import (
	"context"
	"errors"
	"sync"

	"github.com/noah-isme/elitebuilders-client/internal/dto"
	"github.com/noah-isme/elitebuilders-client/internal/models"
	"github.com/noah-isme/elitebuilders-client/internal/service"
)

var errBackendDown = errors.New("backend down")

// fakeBackend implements every collaborator. When gate is set each call blocks
// until the gate is closed or the context ends.
type fakeBackend struct {
	mu   sync.Mutex
	gate chan struct{}

	err error

	loginCalls       int
	profileCalls     int
	challengeQueries []dto.ChallengeQuery

	token         dto.TokenResponse
	user          models.User
	challenges    []models.Challenge
	submissions   []models.Submission
	notifications []models.Notification
	unreadCount   int

	createResult   models.Submission
	updateResult   models.Submission
	evaluate       func(ctx context.Context, id string) (models.SubmissionWithEvaluation, error)
	markReadResult func(id string) models.Notification
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		token: dto.TokenResponse{AccessToken: "tok-abc", TokenType: "bearer"},
		user:  models.User{ID: "u-1", Email: "a@b.com", Name: "Ada"},
	}
}

func (f *fakeBackend) collaborators() service.Collaborators {
	return service.Collaborators{Auth: f, Challenges: f, Submissions: f, Notifications: f}
}

func (f *fakeBackend) wait(ctx context.Context) error {
	f.mu.Lock()
	gate := f.gate
	err := f.err
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (f *fakeBackend) hold() chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = make(chan struct{})
	return f.gate
}

func (f *fakeBackend) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeBackend) Login(ctx context.Context, _ dto.LoginRequest) (dto.TokenResponse, error) {
	f.mu.Lock()
	f.loginCalls++
	f.mu.Unlock()
	if err := f.wait(ctx); err != nil {
		return dto.TokenResponse{}, err
	}
	return f.token, nil
}

func (f *fakeBackend) Register(ctx context.Context, payload dto.RegisterRequest) (dto.TokenResponse, error) {
	if err := f.wait(ctx); err != nil {
		return dto.TokenResponse{}, err
	}
	return dto.TokenResponse{User: &models.User{ID: "u-2", Email: payload.Email, Name: payload.Name}}, nil
}

func (f *fakeBackend) GetUserProfile(ctx context.Context) (models.User, error) {
	f.mu.Lock()
	f.profileCalls++
	f.mu.Unlock()
	if err := f.wait(ctx); err != nil {
		return models.User{}, err
	}
	return f.user, nil
}

func (f *fakeBackend) Logout(ctx context.Context) error {
	return f.wait(ctx)
}

func (f *fakeBackend) GetChallenges(ctx context.Context, query dto.ChallengeQuery) ([]models.Challenge, error) {
	f.mu.Lock()
	f.challengeQueries = append(f.challengeQueries, query)
	f.mu.Unlock()
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.challenges, nil
}

func (f *fakeBackend) GetChallengeByID(ctx context.Context, id string) (models.Challenge, error) {
	if err := f.wait(ctx); err != nil {
		return models.Challenge{}, err
	}
	return models.Challenge{ID: id, Title: "Challenge " + id}, nil
}

func (f *fakeBackend) GetRecommendedChallenges(ctx context.Context) ([]models.Challenge, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.challenges, nil
}

func (f *fakeBackend) GetUserSubmissions(ctx context.Context, _ string) ([]models.Submission, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.submissions, nil
}

func (f *fakeBackend) GetSubmissionByID(ctx context.Context, id string) (models.SubmissionWithEvaluation, error) {
	if err := f.wait(ctx); err != nil {
		return models.SubmissionWithEvaluation{}, err
	}
	return models.SubmissionWithEvaluation{
		Submission:     models.Submission{ID: id, Status: models.SubmissionStatusEvaluated, Description: "original"},
		EvaluationData: models.Evaluation{Feedback: "solid work"},
	}, nil
}

func (f *fakeBackend) CreateSubmission(ctx context.Context, _ dto.SubmissionCreateRequest) (models.Submission, error) {
	if err := f.wait(ctx); err != nil {
		return models.Submission{}, err
	}
	return f.createResult, nil
}

func (f *fakeBackend) UpdateSubmission(ctx context.Context, _ string, _ dto.SubmissionUpdateRequest) (models.Submission, error) {
	if err := f.wait(ctx); err != nil {
		return models.Submission{}, err
	}
	return f.updateResult, nil
}

func (f *fakeBackend) EvaluateSubmission(ctx context.Context, id string) (models.SubmissionWithEvaluation, error) {
	if f.evaluate != nil {
		return f.evaluate(ctx, id)
	}
	if err := f.wait(ctx); err != nil {
		return models.SubmissionWithEvaluation{}, err
	}
	return models.SubmissionWithEvaluation{Submission: models.Submission{ID: id, Status: models.SubmissionStatusProcessing}}, nil
}

func (f *fakeBackend) GetNotifications(ctx context.Context, _ bool) ([]models.Notification, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.notifications, nil
}

func (f *fakeBackend) GetUnreadCount(ctx context.Context) (int, error) {
	if err := f.wait(ctx); err != nil {
		return 0, err
	}
	return f.unreadCount, nil
}

func (f *fakeBackend) MarkAsRead(ctx context.Context, id string) (models.Notification, error) {
	if err := f.wait(ctx); err != nil {
		return models.Notification{}, err
	}
	if f.markReadResult != nil {
		return f.markReadResult(id), nil
	}
	return models.Notification{ID: id, Title: "read", Read: true}, nil
}

func (f *fakeBackend) MarkAllAsRead(ctx context.Context) error {
	return f.wait(ctx)
}

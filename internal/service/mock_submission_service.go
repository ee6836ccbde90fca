package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/noah-isme/elitebuilders-client/internal/dto"
	"github.com/noah-isme/elitebuilders-client/internal/models"
)

type mockSubmissionService struct {
	logger zerolog.Logger
	now    func() time.Time
}

// NewMockSubmissionService returns a SubmissionService answering with fixture data.
func NewMockSubmissionService(logger zerolog.Logger) SubmissionService {
	return &mockSubmissionService{
		logger: logger.With().Str("component", "mock_submission_service").Logger(),
		now:    time.Now,
	}
}

func (s *mockSubmissionService) GetUserSubmissions(ctx context.Context, challengeID string) ([]models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all := fixtureSubmissions()
	results := make([]models.Submission, 0, len(all))
	for _, submission := range all {
		if challengeID == "" || submission.ChallengeID == challengeID {
			results = append(results, submission)
		}
	}
	return results, nil
}

func (s *mockSubmissionService) GetSubmissionByID(ctx context.Context, id string) (models.SubmissionWithEvaluation, error) {
	if err := ctx.Err(); err != nil {
		return models.SubmissionWithEvaluation{}, err
	}
	return fixtureEvaluatedSubmission(id, true, mustTime("2025-05-19T10:15:00Z")), nil
}

func (s *mockSubmissionService) CreateSubmission(ctx context.Context, payload dto.SubmissionCreateRequest) (models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return models.Submission{}, err
	}

	now := s.now().UTC()
	submission := models.Submission{
		ID:             uuid.NewString(),
		UserID:         mockUserID,
		ChallengeID:    payload.ChallengeID,
		RepoURL:        payload.RepoURL,
		DeckURL:        payload.DeckURL,
		VideoURL:       payload.VideoURL,
		Description:    payload.Description,
		Status:         models.SubmissionStatusPending,
		EvaluationData: datatypes.JSONMap{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	s.logger.Info().Str("submission_id", submission.ID).Msg("mock submission created")
	return submission, nil
}

func (s *mockSubmissionService) UpdateSubmission(ctx context.Context, id string, payload dto.SubmissionUpdateRequest) (models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return models.Submission{}, err
	}

	submission := models.Submission{
		ID:             id,
		UserID:         mockUserID,
		ChallengeID:    valueOr(payload.ChallengeID, "1"),
		RepoURL:        valueOr(payload.RepoURL, "https://github.com/user/ai-customer-service"),
		DeckURL:        strPtr(valueOr(payload.DeckURL, "https://slides.com/user/ai-customer-service")),
		VideoURL:       strPtr(valueOr(payload.VideoURL, "https://youtube.com/watch?v=abcdef123456")),
		Description:    valueOr(payload.Description, "An AI assistant that handles customer service inquiries."),
		Status:         models.SubmissionStatusPending,
		EvaluationData: datatypes.JSONMap{},
		CreatedAt:      mustTime("2025-05-18T14:30:00Z"),
		UpdatedAt:      s.now().UTC(),
	}

	s.logger.Info().Str("submission_id", id).Msg("mock submission updated")
	return submission, nil
}

func (s *mockSubmissionService) EvaluateSubmission(ctx context.Context, id string) (models.SubmissionWithEvaluation, error) {
	if err := ctx.Err(); err != nil {
		return models.SubmissionWithEvaluation{}, err
	}
	return fixtureEvaluatedSubmission(id, false, s.now().UTC()), nil
}

func valueOr(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}

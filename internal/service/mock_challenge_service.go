package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/elitebuilders-client/internal/dto"
	"github.com/noah-isme/elitebuilders-client/internal/models"
)

type mockChallengeService struct {
	challenges []models.Challenge
	logger     zerolog.Logger
}

// NewMockChallengeService returns a ChallengeService backed by the fixture catalogue.
func NewMockChallengeService(logger zerolog.Logger) ChallengeService {
	return &mockChallengeService{
		challenges: fixtureChallenges(),
		logger:     logger.With().Str("component", "mock_challenge_service").Logger(),
	}
}

func (s *mockChallengeService) GetChallenges(ctx context.Context, query dto.ChallengeQuery) ([]models.Challenge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(query.SearchQuery))
	results := make([]models.Challenge, 0, len(s.challenges))
	for _, challenge := range s.challenges {
		if query.ActiveOnly && !challenge.IsActive {
			continue
		}
		if query.SponsorID != nil && (challenge.SponsorID == nil || *challenge.SponsorID != *query.SponsorID) {
			continue
		}
		if query.SeasonID != nil && (challenge.SeasonID == nil || *challenge.SeasonID != *query.SeasonID) {
			continue
		}
		if search != "" {
			title := strings.ToLower(challenge.Title)
			desc := strings.ToLower(challenge.Description)
			if !strings.Contains(title, search) && !strings.Contains(desc, search) {
				continue
			}
		}
		results = append(results, challenge)
	}

	s.logger.Debug().Int("count", len(results)).Str("search", search).Msg("mock challenges listed")
	return results, nil
}

func (s *mockChallengeService) GetChallengeByID(ctx context.Context, id string) (models.Challenge, error) {
	if err := ctx.Err(); err != nil {
		return models.Challenge{}, err
	}

	for _, challenge := range s.challenges {
		if challenge.ID == id {
			return challenge, nil
		}
	}
	return models.Challenge{}, ErrChallengeNotFound
}

func (s *mockChallengeService) GetRecommendedChallenges(ctx context.Context) ([]models.Challenge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]models.Challenge, 0, 2)
	for _, challenge := range s.challenges {
		if challenge.ID == "1" || challenge.ID == "3" {
			results = append(results, challenge)
		}
	}
	return results, nil
}

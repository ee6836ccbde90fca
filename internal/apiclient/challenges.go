package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/noah-isme/elitebuilders-client/internal/dto"
	"github.com/noah-isme/elitebuilders-client/internal/models"
	"github.com/noah-isme/elitebuilders-client/internal/service"
)

type challengeService struct {
	client *Client
}

// NewChallengeService returns the HTTP ChallengeService.
func NewChallengeService(c *Client) service.ChallengeService {
	return &challengeService{client: c}
}

func challengeQueryValues(query dto.ChallengeQuery) url.Values {
	values := url.Values{}
	values.Set("active_only", strconv.FormatBool(query.ActiveOnly))
	if query.SponsorID != nil && *query.SponsorID != "" {
		values.Set("sponsor_id", *query.SponsorID)
	}
	if query.SeasonID != nil && *query.SeasonID != "" {
		values.Set("season_id", *query.SeasonID)
	}
	if query.SearchQuery != "" {
		values.Set("search", query.SearchQuery)
	}
	return values
}

func (s *challengeService) GetChallenges(ctx context.Context, query dto.ChallengeQuery) ([]models.Challenge, error) {
	challenges := []models.Challenge{}
	err := s.client.doJSON(ctx, "challenges.list", request{
		method: http.MethodGet,
		path:   "/api/challenges",
		query:  challengeQueryValues(query),
	}, &challenges)
	if err != nil {
		return nil, err
	}
	return challenges, nil
}

func (s *challengeService) GetChallengeByID(ctx context.Context, id string) (models.Challenge, error) {
	var challenge models.Challenge
	err := s.client.doJSON(ctx, "challenges.get", request{
		method: http.MethodGet,
		path:   "/api/challenges/" + url.PathEscape(id),
	}, &challenge)
	if err != nil {
		return models.Challenge{}, err
	}
	return challenge, nil
}

func (s *challengeService) GetRecommendedChallenges(ctx context.Context) ([]models.Challenge, error) {
	challenges := []models.Challenge{}
	err := s.client.doJSON(ctx, "challenges.recommended", request{
		method: http.MethodGet,
		path:   "/api/challenges/recommended",
	}, &challenges)
	if err != nil {
		return nil, err
	}
	return challenges, nil
}

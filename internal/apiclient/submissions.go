package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/noah-isme/elitebuilders-client/internal/dto"
	"github.com/noah-isme/elitebuilders-client/internal/evaluation"
	"github.com/noah-isme/elitebuilders-client/internal/models"
	"github.com/noah-isme/elitebuilders-client/internal/service"
)

type submissionService struct {
	client *Client
}

// NewSubmissionService returns the HTTP SubmissionService.
func NewSubmissionService(c *Client) service.SubmissionService {
	return &submissionService{client: c}
}

func (s *submissionService) GetUserSubmissions(ctx context.Context, challengeID string) ([]models.Submission, error) {
	var query url.Values
	if challengeID != "" {
		query = url.Values{"challenge_id": []string{challengeID}}
	}

	submissions := []models.Submission{}
	err := s.client.doJSON(ctx, "submissions.mine", request{
		method: http.MethodGet,
		path:   "/api/submissions/my",
		query:  query,
	}, &submissions)
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (s *submissionService) GetSubmissionByID(ctx context.Context, id string) (models.SubmissionWithEvaluation, error) {
	return s.fetchEvaluated(ctx, "submissions.get", request{
		method: http.MethodGet,
		path:   "/api/submissions/" + url.PathEscape(id),
	})
}

func (s *submissionService) CreateSubmission(ctx context.Context, payload dto.SubmissionCreateRequest) (models.Submission, error) {
	r, err := jsonRequest(http.MethodPost, "/api/submissions", payload)
	if err != nil {
		return models.Submission{}, err
	}

	var submission models.Submission
	if err := s.client.doJSON(ctx, "submissions.create", r, &submission); err != nil {
		return models.Submission{}, err
	}
	return submission, nil
}

func (s *submissionService) UpdateSubmission(ctx context.Context, id string, payload dto.SubmissionUpdateRequest) (models.Submission, error) {
	r, err := jsonRequest(http.MethodPut, "/api/submissions/"+url.PathEscape(id), payload)
	if err != nil {
		return models.Submission{}, err
	}

	var submission models.Submission
	if err := s.client.doJSON(ctx, "submissions.update", r, &submission); err != nil {
		return models.Submission{}, err
	}
	return submission, nil
}

func (s *submissionService) EvaluateSubmission(ctx context.Context, id string) (models.SubmissionWithEvaluation, error) {
	return s.fetchEvaluated(ctx, "submissions.evaluate", request{
		method: http.MethodPost,
		path:   "/api/submissions/" + url.PathEscape(id) + "/evaluate",
	})
}

type evaluatedEnvelope struct {
	EvaluationData json.RawMessage `json:"evaluation_data"`
}

// fetchEvaluated decodes an evaluation-bearing submission, checking the
// evaluation record against its schema when the server sent one.
func (s *submissionService) fetchEvaluated(ctx context.Context, operation string, r request) (models.SubmissionWithEvaluation, error) {
	body, err := s.client.do(ctx, operation, r)
	if err != nil {
		return models.SubmissionWithEvaluation{}, err
	}

	var envelope evaluatedEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return models.SubmissionWithEvaluation{}, fmt.Errorf("decode %s response: %w", operation, err)
	}
	if err := evaluation.Validate(envelope.EvaluationData, false); err != nil {
		return models.SubmissionWithEvaluation{}, err
	}

	var record models.SubmissionWithEvaluation
	if err := json.Unmarshal(body, &record); err != nil {
		return models.SubmissionWithEvaluation{}, fmt.Errorf("decode %s response: %w", operation, err)
	}
	return record, nil
}

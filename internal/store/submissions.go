package store

import (
	"context"

	"github.com/noah-isme/elitebuilders-client/internal/dto"
	"github.com/noah-isme/elitebuilders-client/internal/models"
)

// SubmissionState holds the participant's submissions.
type SubmissionState struct {
	UserSubmissions   []models.Submission               `json:"user_submissions"`
	CurrentSubmission *models.SubmissionWithEvaluation `json:"current_submission"`
	Loading           bool                              `json:"loading"`
	Submitting        bool                              `json:"submitting"`
	Error             string                            `json:"error,omitempty"`

	loading    int
	submitting int
}

// SubmissionUpdate identifies the submission to replace and its new artefacts.
type SubmissionUpdate struct {
	ID   string
	Data dto.SubmissionUpdateRequest
}

var fetchUserSubmissionsThunk = AsyncThunk[string, []models.Submission]{
	TypePrefix:     PrefixFetchUserSubmissions,
	DefaultMessage: "Failed to fetch your submissions",
	Run: func(ctx context.Context, challengeID string, api ThunkAPI) ([]models.Submission, error) {
		return api.Services.Submissions.GetUserSubmissions(ctx, challengeID)
	},
}

var fetchSubmissionByIDThunk = AsyncThunk[string, models.SubmissionWithEvaluation]{
	TypePrefix:     PrefixFetchSubmissionByID,
	DefaultMessage: "Failed to fetch submission",
	Run: func(ctx context.Context, id string, api ThunkAPI) (models.SubmissionWithEvaluation, error) {
		return api.Services.Submissions.GetSubmissionByID(ctx, id)
	},
}

var createSubmissionThunk = AsyncThunk[dto.SubmissionCreateRequest, models.Submission]{
	TypePrefix:     PrefixCreateSubmission,
	DefaultMessage: "Failed to create submission",
	Run: func(ctx context.Context, payload dto.SubmissionCreateRequest, api ThunkAPI) (models.Submission, error) {
		if err := validateRequest(api, payload); err != nil {
			return models.Submission{}, err
		}
		return api.Services.Submissions.CreateSubmission(ctx, payload)
	},
}

var updateSubmissionThunk = AsyncThunk[SubmissionUpdate, models.Submission]{
	TypePrefix:     PrefixUpdateSubmission,
	DefaultMessage: "Failed to update submission",
	Run: func(ctx context.Context, update SubmissionUpdate, api ThunkAPI) (models.Submission, error) {
		if err := validateRequest(api, update.Data); err != nil {
			return models.Submission{}, err
		}
		return api.Services.Submissions.UpdateSubmission(ctx, update.ID, update.Data)
	},
}

var evaluateSubmissionThunk = AsyncThunk[string, models.SubmissionWithEvaluation]{
	TypePrefix:     PrefixEvaluateSubmission,
	DefaultMessage: "Failed to evaluate submission",
	Run: func(ctx context.Context, id string, api ThunkAPI) (models.SubmissionWithEvaluation, error) {
		return api.Services.Submissions.EvaluateSubmission(ctx, id)
	},
}

// FetchUserSubmissions lists the user's submissions, narrowed to one challenge when challengeID is set.
func (s *Store) FetchUserSubmissions(ctx context.Context, challengeID string) *Task[[]models.Submission] {
	return fetchUserSubmissionsThunk.Start(ctx, s, challengeID)
}

// FetchSubmissionByID loads one submission with its evaluation into currentSubmission.
func (s *Store) FetchSubmissionByID(ctx context.Context, id string) *Task[models.SubmissionWithEvaluation] {
	return fetchSubmissionByIDThunk.Start(ctx, s, id)
}

// CreateSubmission puts the new submission first in the list.
func (s *Store) CreateSubmission(ctx context.Context, payload dto.SubmissionCreateRequest) *Task[models.Submission] {
	return createSubmissionThunk.Start(ctx, s, payload)
}

// UpdateSubmission resubmits. The server resets the status to PENDING and drops earlier scores.
func (s *Store) UpdateSubmission(ctx context.Context, id string, payload dto.SubmissionUpdateRequest) *Task[models.Submission] {
	return updateSubmissionThunk.Start(ctx, s, SubmissionUpdate{ID: id, Data: payload})
}

// EvaluateSubmission requests evaluation. Concurrent calls are not merged; the last to settle wins.
func (s *Store) EvaluateSubmission(ctx context.Context, id string) *Task[models.SubmissionWithEvaluation] {
	return evaluateSubmissionThunk.Start(ctx, s, id)
}

// ClearCurrentSubmission drops the submission being viewed.
func (s *Store) ClearCurrentSubmission() {
	s.Dispatch(Action{Type: ActionSubmissionsClearCurrent})
}

// ClearSubmissionError clears the submission slice error.
func (s *Store) ClearSubmissionError() {
	s.Dispatch(Action{Type: ActionSubmissionsClearError})
}

func replaceSubmission(list []models.Submission, replacement models.Submission) []models.Submission {
	out := make([]models.Submission, len(list))
	for i, submission := range list {
		if submission.ID == replacement.ID {
			out[i] = replacement
			continue
		}
		out[i] = submission
	}
	return out
}

func submissionReducer(state SubmissionState, action Action) SubmissionState {
	switch action.Type {
	case ActionSubmissionsClearCurrent:
		state.CurrentSubmission = nil
		return state
	case ActionSubmissionsClearError:
		state.Error = ""
		return state
	}

	for _, prefix := range []string{PrefixFetchUserSubmissions, PrefixFetchSubmissionByID, PrefixEvaluateSubmission, PrefixCreateSubmission, PrefixUpdateSubmission} {
		phase, ok := hasPrefix(action, prefix)
		if !ok {
			continue
		}

		submitting := prefix == PrefixCreateSubmission || prefix == PrefixUpdateSubmission
		switch phase {
		case phasePending:
			if submitting {
				state.submitting = begin(state.submitting)
			} else {
				state.loading = begin(state.loading)
			}
			state.Error = ""
		case phaseFulfilled, phaseRejected:
			if submitting {
				state.submitting = end(state.submitting)
			} else {
				state.loading = end(state.loading)
			}
			if phase == phaseRejected {
				state.Error = action.Error
			} else {
				state = applySubmissionResult(state, prefix, action.Payload)
			}
		}
		state.Loading = state.loading > 0
		state.Submitting = state.submitting > 0
		return state
	}
	return state
}

func applySubmissionResult(state SubmissionState, prefix string, payload any) SubmissionState {
	switch prefix {
	case PrefixFetchUserSubmissions:
		if list, ok := payload.([]models.Submission); ok {
			state.UserSubmissions = list
		}
	case PrefixFetchSubmissionByID:
		if record, ok := payload.(models.SubmissionWithEvaluation); ok {
			state.CurrentSubmission = &record
		}
	case PrefixCreateSubmission:
		if created, ok := payload.(models.Submission); ok {
			list := make([]models.Submission, 0, len(state.UserSubmissions)+1)
			list = append(list, created)
			state.UserSubmissions = append(list, state.UserSubmissions...)
		}
	case PrefixUpdateSubmission:
		if updated, ok := payload.(models.Submission); ok {
			if state.CurrentSubmission != nil && state.CurrentSubmission.ID == updated.ID {
				merged := state.CurrentSubmission.MergeSubmission(updated)
				state.CurrentSubmission = &merged
			}
			state.UserSubmissions = replaceSubmission(state.UserSubmissions, updated)
		}
	case PrefixEvaluateSubmission:
		if record, ok := payload.(models.SubmissionWithEvaluation); ok {
			state.CurrentSubmission = &record
			state.UserSubmissions = replaceSubmission(state.UserSubmissions, record.AsSubmission())
		}
	}
	return state
}

// SelectUserSubmissions returns the user's submissions.
func SelectUserSubmissions(state RootState) []models.Submission {
	return state.Submissions.UserSubmissions
}

// SelectCurrentSubmission returns the submission being viewed.
func SelectCurrentSubmission(state RootState) *models.SubmissionWithEvaluation {
	return state.Submissions.CurrentSubmission
}

// SelectSubmissionLoading reports whether a fetch or evaluation is in flight.
func SelectSubmissionLoading(state RootState) bool { return state.Submissions.Loading }

// SelectSubmissionSubmitting reports whether a create or update is in flight.
func SelectSubmissionSubmitting(state RootState) bool { return state.Submissions.Submitting }

// SelectSubmissionError returns the last submission rejection message.
func SelectSubmissionError(state RootState) string { return state.Submissions.Error }

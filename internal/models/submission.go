package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// SubmissionStatus tracks the evaluation progress of a submission.
type SubmissionStatus string

const (
	SubmissionStatusPending    SubmissionStatus = "PENDING"
	SubmissionStatusProcessing SubmissionStatus = "PROCESSING"
	SubmissionStatusEvaluated  SubmissionStatus = "EVALUATED"
	SubmissionStatusReviewed   SubmissionStatus = "REVIEWED"
)

var statusRank = map[SubmissionStatus]int{
	SubmissionStatusPending:    0,
	SubmissionStatusProcessing: 1,
	SubmissionStatusEvaluated:  2,
	SubmissionStatusReviewed:   3,
}

// Valid reports whether the status is one of the known values.
func (s SubmissionStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// Precedes reports whether s comes strictly before other in the normal progression.
func (s SubmissionStatus) Precedes(other SubmissionStatus) bool {
	a, okA := statusRank[s]
	b, okB := statusRank[other]
	return okA && okB && a < b
}

// Submission is a participant's entry for a challenge.
type Submission struct {
	ID             string            `json:"id"`
	UserID         string            `json:"user_id"`
	ChallengeID    string            `json:"challenge_id"`
	RepoURL        string            `json:"repo_url"`
	DeckURL        *string           `json:"deck_url"`
	VideoURL       *string           `json:"video_url"`
	Description    string            `json:"description"`
	Status         SubmissionStatus  `json:"status"`
	LLMScore       *float64          `json:"llm_score"`
	HumanScore     *float64          `json:"human_score"`
	FinalScore     *float64          `json:"final_score"`
	Feedback       *string           `json:"feedback"`
	EvaluationData datatypes.JSONMap `json:"evaluation_data,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// IsScored reports whether a final score has been computed.
func (s Submission) IsScored() bool {
	return s.FinalScore != nil
}

// Evaluation is the structured evaluation record attached to an evaluated submission.
type Evaluation struct {
	LLMEvaluation   map[string]any `json:"llm_evaluation"`
	RepoTestResults map[string]any `json:"repo_test_results"`
	Scores          map[string]any `json:"scores"`
	Feedback        string         `json:"feedback"`
}

// JSONMap converts the evaluation into the opaque bag carried by plain submissions.
func (e Evaluation) JSONMap() datatypes.JSONMap {
	raw, err := json.Marshal(e)
	if err != nil {
		return datatypes.JSONMap{}
	}
	out := datatypes.JSONMap{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return datatypes.JSONMap{}
	}
	return out
}

// EvaluationFromMap narrows an opaque evaluation bag into an Evaluation.
func EvaluationFromMap(data datatypes.JSONMap) Evaluation {
	if len(data) == 0 {
		return Evaluation{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return Evaluation{}
	}
	var evaluation Evaluation
	_ = json.Unmarshal(raw, &evaluation)
	return evaluation
}

// SubmissionWithEvaluation is a submission fetched together with its evaluation record.
type SubmissionWithEvaluation struct {
	Submission
	EvaluationData Evaluation `json:"evaluation_data"`
}

// AsSubmission projects the record back onto a plain submission.
func (s SubmissionWithEvaluation) AsSubmission() Submission {
	plain := s.Submission
	plain.EvaluationData = s.EvaluationData.JSONMap()
	return plain
}

// MergeSubmission overlays the fields of an updated submission. The evaluation
// record is only replaced when the update carries one.
func (s SubmissionWithEvaluation) MergeSubmission(update Submission) SubmissionWithEvaluation {
	merged := SubmissionWithEvaluation{Submission: update, EvaluationData: s.EvaluationData}
	if update.EvaluationData != nil {
		merged.EvaluationData = EvaluationFromMap(update.EvaluationData)
	}
	merged.Submission.EvaluationData = nil
	return merged
}

package dto

// SubmissionCreateRequest describes a new challenge entry.
type SubmissionCreateRequest struct {
	ChallengeID string  `json:"challenge_id" validate:"required"`
	RepoURL     string  `json:"repo_url" validate:"required,url"`
	DeckURL     *string `json:"deck_url,omitempty" validate:"omitempty,url"`
	VideoURL    *string `json:"video_url,omitempty" validate:"omitempty,url"`
	Description string  `json:"description,omitempty" validate:"max=5000"`
}

// SubmissionUpdateRequest replaces the artefacts of an existing submission.
type SubmissionUpdateRequest struct {
	ChallengeID *string `json:"challenge_id,omitempty"`
	RepoURL     *string `json:"repo_url,omitempty" validate:"omitempty,url"`
	DeckURL     *string `json:"deck_url,omitempty" validate:"omitempty,url"`
	VideoURL    *string `json:"video_url,omitempty" validate:"omitempty,url"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

// Challenge is a read-only projection of a competition challenge.
type Challenge struct {
	ID                   string         `json:"id"`
	Title                string         `json:"title"`
	Description          string         `json:"description"`
	Rules                string         `json:"rules"`
	EvaluationCriteria   datatypes.JSON `json:"evaluation_criteria"`
	DataPackURL          *string        `json:"data_pack_url,omitempty"`
	SubmissionGuidelines string         `json:"submission_guidelines,omitempty"`
	Prizes               string         `json:"prizes,omitempty"`
	PrizeAmount          *float64       `json:"prize_amount,omitempty"`
	SubmissionDeadline   time.Time      `json:"submission_deadline"`
	StartDate            *time.Time     `json:"start_date,omitempty"`
	IsSponsored          bool           `json:"is_sponsored"`
	IsActive             bool           `json:"is_active"`
	SponsorID            *string        `json:"sponsor_id"`
	SponsorName          *string        `json:"sponsor_name,omitempty"`
	SeasonID             *string        `json:"season_id"`
	DifficultyLevel      string         `json:"difficulty_level,omitempty"`
	CreatedAt            *time.Time     `json:"created_at,omitempty"`
	UpdatedAt            *time.Time     `json:"updated_at,omitempty"`
}

// IsPastDeadline reports whether submissions are closed at the given instant.
func (c Challenge) IsPastDeadline(now time.Time) bool {
	return !c.SubmissionDeadline.IsZero() && now.After(c.SubmissionDeadline)
}

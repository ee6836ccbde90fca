package models

import "time"

// User is the profile of the signed-in participant.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	IsAdmin      bool       `json:"is_admin"`
	Bio          string     `json:"bio,omitempty"`
	GithubURL    string     `json:"github_url,omitempty"`
	PortfolioURL string     `json:"portfolio_url,omitempty"`
	ResumeURL    string     `json:"resume_url,omitempty"`
	ProfileImage string     `json:"profile_image,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

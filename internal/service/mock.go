package service

import "github.com/rs/zerolog"

// NewMockCollaborators wires every fixture collaborator.
func NewMockCollaborators(logger zerolog.Logger) Collaborators {
	return Collaborators{
		Auth:          NewMockAuthService(logger),
		Challenges:    NewMockChallengeService(logger),
		Submissions:   NewMockSubmissionService(logger),
		Notifications: NewMockNotificationService(logger),
	}
}

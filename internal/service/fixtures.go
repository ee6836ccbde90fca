package service

import (
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/elitebuilders-client/internal/models"
)

const (
	// MockAccessToken is the token issued by the fixture auth collaborator.
	MockAccessToken = "mock-token"
	mockUserID      = "1"
)

func strPtr(v string) *string { return &v }

func floatPtr(v float64) *float64 { return &v }

func mustTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func timePtr(value string) *time.Time {
	t := mustTime(value)
	return &t
}

func fixtureChallenges() []models.Challenge {
	return []models.Challenge{
		{
			ID:                   "1",
			Title:                "AI Customer Service Assistant",
			Description:          "Build an AI assistant that can handle customer service inquiries across multiple channels with natural language understanding and contextual responses.",
			Rules:                "Build a solution that can understand and respond to customer inquiries. The assistant should maintain context across multiple messages.",
			EvaluationCriteria:   datatypes.JSON(`"Natural language understanding, contextual awareness, response quality, ease of integration"`),
			SubmissionGuidelines: "Submit a GitHub repository, a 5-minute demo video, and a brief technical document.",
			Prizes:               "$2,000 for first place, $1,000 for second place",
			SubmissionDeadline:   mustTime("2025-06-30T23:59:59Z"),
			StartDate:            timePtr("2025-05-15T00:00:00Z"),
			IsActive:             true,
			IsSponsored:          true,
			SponsorID:            strPtr("1"),
			SponsorName:          strPtr("TechCorp"),
			SeasonID:             strPtr("1"),
			DifficultyLevel:      "Intermediate",
		},
		{
			ID:                   "2",
			Title:                "Smart Document Processing",
			Description:          "Create a system that can automatically extract and process information from various document types, including invoices, receipts, and contracts.",
			Rules:                "Your solution should be able to extract key information from different document types with high accuracy.",
			EvaluationCriteria:   datatypes.JSON(`"Accuracy of extraction, support for multiple document types, error handling, output format"`),
			SubmissionGuidelines: "Submit a GitHub repository, a demo video showcasing the extraction process, and a document explaining your approach.",
			Prizes:               "$1,500 for first place, $750 for second place",
			SubmissionDeadline:   mustTime("2025-07-15T23:59:59Z"),
			StartDate:            timePtr("2025-05-20T00:00:00Z"),
			IsActive:             true,
			IsSponsored:          false,
			SeasonID:             strPtr("1"),
			DifficultyLevel:      "Advanced",
		},
		{
			ID:                   "3",
			Title:                "Conversational Shopping Bot",
			Description:          "Develop a conversational AI that can help customers find products, compare options, and complete purchases through natural dialogue.",
			Rules:                "The bot should be able to understand product queries, make recommendations, and guide users through the purchase process.",
			EvaluationCriteria:   datatypes.JSON(`"Conversation flow, product understanding, recommendation quality, purchase completion rate"`),
			SubmissionGuidelines: "Submit a GitHub repository, a live demo, and a presentation explaining your approach.",
			Prizes:               "$2,500 for first place, $1,200 for second place, $500 for third place",
			SubmissionDeadline:   mustTime("2025-08-01T23:59:59Z"),
			StartDate:            timePtr("2025-06-01T00:00:00Z"),
			IsActive:             true,
			IsSponsored:          true,
			SponsorID:            strPtr("2"),
			SponsorName:          strPtr("ShopSmart"),
			SeasonID:             strPtr("1"),
			DifficultyLevel:      "Intermediate",
		},
	}
}

func fixtureCriteriaScores() map[string]any {
	return map[string]any{
		"Natural language understanding": 88.0,
		"Contextual awareness":           85.0,
		"Response quality":               83.0,
		"Ease of integration":            84.0,
	}
}

func fixtureSubmissions() []models.Submission {
	return []models.Submission{
		{
			ID:          "1",
			UserID:      mockUserID,
			ChallengeID: "1",
			RepoURL:     "https://github.com/user/ai-customer-service",
			DeckURL:     strPtr("https://slides.com/user/ai-customer-service"),
			VideoURL:    strPtr("https://youtube.com/watch?v=abcdef123456"),
			Description: "An AI assistant that handles customer service inquiries with natural language understanding.",
			Status:      models.SubmissionStatusEvaluated,
			LLMScore:    floatPtr(85),
			FinalScore:  floatPtr(85),
			Feedback:    strPtr("Great implementation of context tracking between messages."),
			EvaluationData: datatypes.JSONMap{
				"llm_evaluation": map[string]any{
					"criteria_scores": fixtureCriteriaScores(),
				},
				"repo_test_results": map[string]any{
					"passed":       true,
					"tests_passed": 15,
					"tests_failed": 2,
				},
			},
			CreatedAt: mustTime("2025-05-18T14:30:00Z"),
			UpdatedAt: mustTime("2025-05-19T10:15:00Z"),
		},
		{
			ID:             "2",
			UserID:         mockUserID,
			ChallengeID:    "2",
			RepoURL:        "https://github.com/user/document-processor",
			DeckURL:        strPtr("https://slides.com/user/document-processor"),
			VideoURL:       strPtr("https://youtube.com/watch?v=ghijk789012"),
			Description:    "A system that automatically extracts information from various document types.",
			Status:         models.SubmissionStatusProcessing,
			EvaluationData: datatypes.JSONMap{},
			CreatedAt:      mustTime("2025-05-20T09:45:00Z"),
			UpdatedAt:      mustTime("2025-05-20T09:45:00Z"),
		},
	}
}

func fixtureEvaluatedSubmission(id string, detailed bool, updatedAt time.Time) models.SubmissionWithEvaluation {
	llm := map[string]any{
		"criteria_scores": fixtureCriteriaScores(),
		"overall_score":   85.0,
	}
	tests := map[string]any{
		"passed":       true,
		"tests_passed": 15.0,
		"tests_failed": 2.0,
	}
	feedback := "Great implementation of context tracking between messages."
	if detailed {
		llm["strengths"] = []any{
			"Strong natural language processing capabilities",
			"Excellent context maintenance across conversation turns",
			"Good error handling for edge cases",
		}
		llm["areas_for_improvement"] = []any{
			"Response generation could be more concise",
			"Integration process requires some technical knowledge",
		}
		tests["test_details"] = []any{
			map[string]any{"name": "Basic response test", "passed": true},
			map[string]any{"name": "Context memory test", "passed": true},
			map[string]any{"name": "Edge case handling", "passed": false},
		}
		feedback += " The solution demonstrates good understanding of natural language processing techniques."
	}

	return models.SubmissionWithEvaluation{
		Submission: models.Submission{
			ID:          id,
			UserID:      mockUserID,
			ChallengeID: "1",
			RepoURL:     "https://github.com/user/ai-customer-service",
			DeckURL:     strPtr("https://slides.com/user/ai-customer-service"),
			VideoURL:    strPtr("https://youtube.com/watch?v=abcdef123456"),
			Description: "An AI assistant that handles customer service inquiries with natural language understanding.",
			Status:      models.SubmissionStatusEvaluated,
			LLMScore:    floatPtr(85),
			FinalScore:  floatPtr(85),
			Feedback:    strPtr("Great implementation of context tracking between messages."),
			CreatedAt:   mustTime("2025-05-18T14:30:00Z"),
			UpdatedAt:   updatedAt,
		},
		EvaluationData: models.Evaluation{
			LLMEvaluation:   llm,
			RepoTestResults: tests,
			Scores: map[string]any{
				"overall":        85.0,
				"implementation": 87.0,
				"innovation":     82.0,
				"presentation":   86.0,
			},
			Feedback: feedback,
		},
	}
}

func fixtureNotifications(now time.Time) []models.Notification {
	return []models.Notification{
		{
			ID:        "1",
			UserID:    mockUserID,
			Title:     "Welcome to EliteBuilders!",
			Message:   "Thank you for joining the EliteBuilders platform. Start exploring challenges now!",
			Type:      models.NotificationSystemAnnouncement,
			Read:      false,
			CreatedAt: now,
		},
		{
			ID:          "2",
			UserID:      mockUserID,
			Title:       "New Challenge Available",
			Message:     `A new AI challenge "Conversational Shopping Bot" has been added to the platform.`,
			Type:        models.NotificationSystemAnnouncement,
			ReferenceID: strPtr("3"),
			Read:        false,
			CreatedAt:   now.Add(-24 * time.Hour),
		},
		{
			ID:          "3",
			UserID:      mockUserID,
			Title:       "Badge Awarded",
			Message:     `Congratulations! You have earned the "First Login" badge.`,
			Type:        models.NotificationBadgeAwarded,
			ReferenceID: strPtr("1"),
			Read:        true,
			CreatedAt:   now.Add(-48 * time.Hour),
		},
	}
}

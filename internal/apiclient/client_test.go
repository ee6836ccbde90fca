package apiclient

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/elitebuilders-client/internal/dto"
	"github.com/noah-isme/elitebuilders-client/internal/middleware"
	"github.com/noah-isme/elitebuilders-client/internal/models"
	"github.com/noah-isme/elitebuilders-client/internal/service"
)

type seenRequest struct {
	authorization string
	correlationID string
	query         map[string]string
	form          map[string]string
}

func fiberTransport(app *fiber.App) http.RoundTripper {
	return middleware.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		resp, err := app.Test(req, -1)
		if err != nil {
			return nil, err
		}
		resp.Request = req
		return resp, nil
	})
}

func newFakeBackend(seen *seenRequest) *fiber.App {
	app := fiber.New()

	record := func(c *fiber.Ctx) {
		seen.authorization = c.Get("Authorization")
		seen.correlationID = c.Get(middleware.HeaderCorrelationID)
		seen.query = c.Queries()
	}

	app.Post("/api/auth/login", func(c *fiber.Ctx) error {
		record(c)
		seen.form = map[string]string{"username": c.FormValue("username"), "password": c.FormValue("password")}
		if c.FormValue("password") != "secret" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Incorrect email or password"})
		}
		return c.JSON(fiber.Map{"access_token": "tok-123", "token_type": "bearer"})
	})
	app.Post("/api/auth/register", func(c *fiber.Ctx) error {
		record(c)
		var payload dto.RegisterRequest
		if err := c.BodyParser(&payload); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": []fiber.Map{{"msg": "invalid body"}}})
		}
		return c.JSON(fiber.Map{"id": "u-9", "email": payload.Email, "name": payload.Name, "is_admin": false})
	})
	app.Get("/api/auth/me", func(c *fiber.Ctx) error {
		record(c)
		if c.Get("Authorization") == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Not authenticated"})
		}
		return c.JSON(fiber.Map{"id": "u-1", "email": "a@b.com", "name": "Ada"})
	})

	app.Get("/api/challenges", func(c *fiber.Ctx) error {
		record(c)
		return c.JSON([]fiber.Map{{"id": "c-1", "title": "AI Productivity Assistant", "is_active": true, "submission_deadline": "2025-06-30T23:59:59Z"}})
	})
	app.Get("/api/challenges/recommended", func(c *fiber.Ctx) error {
		record(c)
		return c.JSON([]fiber.Map{{"id": "c-2", "title": "Recommended"}})
	})
	app.Get("/api/challenges/:id", func(c *fiber.Ctx) error {
		record(c)
		if c.Params("id") != "c-1" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Challenge not found"})
		}
		return c.JSON(fiber.Map{"id": "c-1", "title": "AI Productivity Assistant"})
	})

	app.Get("/api/submissions/my", func(c *fiber.Ctx) error {
		record(c)
		return c.JSON([]fiber.Map{{"id": "s-1", "challenge_id": c.Query("challenge_id"), "status": "PENDING"}})
	})
	app.Get("/api/submissions/:id", func(c *fiber.Ctx) error {
		record(c)
		if c.Params("id") == "broken" {
			return c.JSON(fiber.Map{"id": "broken", "status": "EVALUATED", "evaluation_data": fiber.Map{"scores": fiber.Map{"ux": "high"}}})
		}
		if c.Params("id") == "rubric" {
			return c.JSON(fiber.Map{
				"id":     "rubric",
				"status": "EVALUATED",
				"evaluation_data": fiber.Map{
					"llm_evaluation":    fiber.Map{"overall_assessment": "Strong"},
					"repo_test_results": fiber.Map{"test_status": "passed", "results": fiber.Map{}},
					"scores": fiber.Map{
						"Innovation": fiber.Map{"score": 85, "weight": 1, "justification": "Novel"},
					},
					"feedback": "good",
				},
			})
		}
		return c.JSON(fiber.Map{
			"id":     c.Params("id"),
			"status": "EVALUATED",
			"evaluation_data": fiber.Map{
				"llm_evaluation":    fiber.Map{"summary": "solid"},
				"repo_test_results": fiber.Map{"passed": true, "tests_passed": 15, "tests_failed": 0},
				"scores":            fiber.Map{"innovation": 8.5},
				"feedback":          "Great work",
			},
		})
	})
	app.Post("/api/submissions", func(c *fiber.Ctx) error {
		record(c)
		var payload dto.SubmissionCreateRequest
		if err := c.BodyParser(&payload); err != nil {
			return fiber.ErrBadRequest
		}
		return c.JSON(fiber.Map{"id": "s-new", "challenge_id": payload.ChallengeID, "repo_url": payload.RepoURL, "status": "PENDING"})
	})
	app.Put("/api/submissions/:id", func(c *fiber.Ctx) error {
		record(c)
		return c.JSON(fiber.Map{"id": c.Params("id"), "status": "PENDING", "llm_score": nil})
	})
	app.Post("/api/submissions/:id/evaluate", func(c *fiber.Ctx) error {
		record(c)
		return c.JSON(fiber.Map{"id": c.Params("id"), "status": "PROCESSING", "evaluation_data": nil})
	})

	app.Get("/api/notifications", func(c *fiber.Ctx) error {
		record(c)
		return c.JSON([]fiber.Map{
			{"id": "n-1", "title": "Hi", "message": "m", "type": "BADGE_AWARDED", "read": false},
			{"id": "n-2", "title": "Old", "message": "m", "type": "SOMETHING_NEW", "read": true},
		})
	})
	app.Get("/api/notifications/unread-count", func(c *fiber.Ctx) error {
		record(c)
		if c.Query("wrapped") != "" {
			return c.JSON(fiber.Map{"count": 4})
		}
		return c.JSON(3)
	})
	app.Put("/api/notifications/mark-all-read", func(c *fiber.Ctx) error {
		record(c)
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Put("/api/notifications/:id/read", func(c *fiber.Ctx) error {
		record(c)
		return c.JSON(fiber.Map{"id": c.Params("id"), "title": "Hi", "message": "m", "type": "BADGE_AWARDED", "read": true})
	})

	return app
}

func newTestCollaborators(t *testing.T, token string) (service.Collaborators, *seenRequest) {
	t.Helper()
	seen := &seenRequest{}
	client, err := New(Options{
		BaseURL:   "http://backend.test",
		Timeout:   5 * time.Second,
		Tokens:    func(context.Context) string { return token },
		Transport: fiberTransport(newFakeBackend(seen)),
		Logger:    zerolog.Nop(),
	})
	require.NoError(t, err)
	return NewCollaborators(client), seen
}

func TestNewRejectsInvalidBaseURL(t *testing.T) {
	_, err := New(Options{BaseURL: "not a url", Logger: zerolog.Nop()})
	require.Error(t, err)
}

func TestLoginPostsPasswordForm(t *testing.T) {
	collaborators, seen := newTestCollaborators(t, "")

	token, err := collaborators.Auth.Login(context.Background(), dto.LoginRequest{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, "tok-123", token.AccessToken)
	require.Equal(t, "a@b.com", seen.form["username"])
	require.NotEmpty(t, seen.correlationID)
	require.Empty(t, seen.authorization)
}

func TestLoginFailureCarriesDetail(t *testing.T) {
	collaborators, _ := newTestCollaborators(t, "")

	_, err := collaborators.Auth.Login(context.Background(), dto.LoginRequest{Email: "a@b.com", Password: "wrong"})
	require.Error(t, err)
	require.Equal(t, "Incorrect email or password", service.DetailFromError(err))
}

func TestRegisterAcceptsBareUser(t *testing.T) {
	collaborators, _ := newTestCollaborators(t, "")

	result, err := collaborators.Auth.Register(context.Background(), dto.RegisterRequest{Email: "n@b.com", Password: "password1", Name: "New"})
	require.NoError(t, err)
	require.Empty(t, result.AccessToken)
	require.NotNil(t, result.User)
	require.Equal(t, "u-9", result.User.ID)
}

func TestProfileSendsBearerToken(t *testing.T) {
	collaborators, seen := newTestCollaborators(t, "tok-123")

	user, err := collaborators.Auth.GetUserProfile(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Ada", user.Name)
	require.Equal(t, "Bearer tok-123", seen.authorization)
}

func TestLogoutToleratesMissingRoute(t *testing.T) {
	collaborators, _ := newTestCollaborators(t, "tok-123")
	require.NoError(t, collaborators.Auth.Logout(context.Background()))
}

func TestChallengeQueryParameters(t *testing.T) {
	collaborators, seen := newTestCollaborators(t, "")
	sponsor := "sponsor-1"

	challenges, err := collaborators.Challenges.GetChallenges(context.Background(), dto.ChallengeQuery{
		ActiveOnly:  true,
		SponsorID:   &sponsor,
		SearchQuery: "AI",
	})
	require.NoError(t, err)
	require.Len(t, challenges, 1)
	require.Equal(t, "true", seen.query["active_only"])
	require.Equal(t, "sponsor-1", seen.query["sponsor_id"])
	require.Equal(t, "AI", seen.query["search"])
	_, hasSeason := seen.query["season_id"]
	require.False(t, hasSeason)

	recommended, err := collaborators.Challenges.GetRecommendedChallenges(context.Background())
	require.NoError(t, err)
	require.Equal(t, "c-2", recommended[0].ID)
}

func TestChallengeNotFoundMatchesSentinel(t *testing.T) {
	collaborators, _ := newTestCollaborators(t, "")

	_, err := collaborators.Challenges.GetChallengeByID(context.Background(), "missing")
	require.ErrorIs(t, err, service.ErrChallengeNotFound)
}

func TestSubmissionEndpoints(t *testing.T) {
	collaborators, seen := newTestCollaborators(t, "tok-123")
	ctx := context.Background()

	mine, err := collaborators.Submissions.GetUserSubmissions(ctx, "c-1")
	require.NoError(t, err)
	require.Equal(t, "c-1", seen.query["challenge_id"])
	require.Equal(t, "c-1", mine[0].ChallengeID)

	record, err := collaborators.Submissions.GetSubmissionByID(ctx, "s-1")
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusEvaluated, record.Status)
	require.Equal(t, "Great work", record.EvaluationData.Feedback)
	require.Equal(t, 8.5, record.EvaluationData.Scores["innovation"])

	_, err = collaborators.Submissions.GetSubmissionByID(ctx, "broken")
	require.Error(t, err)

	rubric, err := collaborators.Submissions.GetSubmissionByID(ctx, "rubric")
	require.NoError(t, err)
	innovation, ok := rubric.EvaluationData.Scores["Innovation"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(85), innovation["score"])

	created, err := collaborators.Submissions.CreateSubmission(ctx, dto.SubmissionCreateRequest{ChallengeID: "c-1", RepoURL: "https://github.com/a/b"})
	require.NoError(t, err)
	require.Equal(t, "s-new", created.ID)
	require.Equal(t, models.SubmissionStatusPending, created.Status)

	repo := "https://github.com/a/c"
	updated, err := collaborators.Submissions.UpdateSubmission(ctx, "s-1", dto.SubmissionUpdateRequest{RepoURL: &repo})
	require.NoError(t, err)
	require.Nil(t, updated.LLMScore)

	evaluating, err := collaborators.Submissions.EvaluateSubmission(ctx, "s-1")
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusProcessing, evaluating.Status)
}

func TestNotificationEndpoints(t *testing.T) {
	collaborators, seen := newTestCollaborators(t, "tok-123")
	ctx := context.Background()

	notifications, err := collaborators.Notifications.GetNotifications(ctx, true)
	require.NoError(t, err)
	require.Equal(t, "true", seen.query["unread_only"])
	require.Len(t, notifications, 2)
	require.Equal(t, models.NotificationOther, notifications[1].Type)

	count, err := collaborators.Notifications.GetUnreadCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	read, err := collaborators.Notifications.MarkAsRead(ctx, "n-1")
	require.NoError(t, err)
	require.True(t, read.Read)

	require.NoError(t, collaborators.Notifications.MarkAllAsRead(ctx))
}

func TestDetailText(t *testing.T) {
	require.Equal(t, "Submission not found", detailText([]byte(`"Submission not found"`)))
	require.Equal(t, "field required; value is not a valid url", detailText([]byte(`[{"msg":"field required"},{"msg":"value is not a valid url"}]`)))
	require.Equal(t, "", detailText([]byte(`{"weird":true}`)))
}

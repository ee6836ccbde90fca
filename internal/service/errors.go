package service

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrChallengeNotFound indicates a challenge could not be found.
	ErrChallengeNotFound = &APIError{StatusCode: http.StatusNotFound, Detail: "Challenge not found"}
	// ErrSubmissionNotFound indicates a submission could not be found.
	ErrSubmissionNotFound = &APIError{StatusCode: http.StatusNotFound, Detail: "Submission not found"}
	// ErrNotificationNotFound indicates a notification could not be found.
	ErrNotificationNotFound = &APIError{StatusCode: http.StatusNotFound, Detail: "Notification not found"}
)

// APIError is a collaborator failure, optionally carrying a human-readable detail.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Detail)
}

// Is matches API errors by status code and detail so that sentinel values work with errors.Is.
func (e *APIError) Is(target error) bool {
	var other *APIError
	if !errors.As(target, &other) {
		return false
	}
	return e.StatusCode == other.StatusCode && e.Detail == other.Detail
}

// DetailFromError returns the server-supplied detail carried by err, if any.
func DetailFromError(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

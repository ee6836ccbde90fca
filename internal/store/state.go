package store

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/elitebuilders-client/internal/middleware"
	"github.com/noah-isme/elitebuilders-client/internal/storage"
)

// MobileBreakpoint is the viewport width below which the layout is mobile.
const MobileBreakpoint = 768

// RootState is the whole client state.
type RootState struct {
	Auth          AuthState         `json:"auth"`
	Challenges    ChallengeState    `json:"challenges"`
	Submissions   SubmissionState   `json:"submissions"`
	Notifications NotificationState `json:"notifications"`
	UI            UIState           `json:"ui"`
}

// rootReducer delegates to every slice reducer. It never mutates slices
// reachable from state, so earlier snapshots stay valid.
func rootReducer(state RootState, action Action) RootState {
	return RootState{
		Auth:          authReducer(state.Auth, action),
		Challenges:    challengeReducer(state.Challenges, action),
		Submissions:   submissionReducer(state.Submissions, action),
		Notifications: notificationReducer(state.Notifications, action),
		UI:            uiReducer(state.UI, action),
	}
}

// InitialState builds the startup state from durable storage. A stored token
// whose exp claim has passed is discarded and removed.
func InitialState(ctx context.Context, backing storage.Storage, viewportWidth int, logger zerolog.Logger) RootState {
	token := storage.GetOr(ctx, backing, storage.KeyToken, "")
	if token != "" && middleware.TokenExpired(token, time.Now()) {
		logger.Info().Msg("discarding expired session token")
		if err := backing.Delete(ctx, storage.KeyToken); err != nil {
			logger.Error().Err(err).Msg("failed to remove expired token")
		}
		token = ""
	}

	return RootState{
		Auth:          AuthState{Token: token},
		Challenges:    ChallengeState{Filters: DefaultChallengeFilters()},
		Submissions:   SubmissionState{},
		Notifications: NotificationState{},
		UI: UIState{
			DarkMode: storage.GetOr(ctx, backing, storage.KeyDarkMode, "") == "true",
			Snackbar: Snackbar{Severity: SeverityInfo, Duration: DefaultSnackbarDuration},
			IsMobile: viewportWidth > 0 && viewportWidth < MobileBreakpoint,
		},
	}
}

func begin(count int) int { return count + 1 }

func end(count int) int {
	if count <= 1 {
		return 0
	}
	return count - 1
}

func hasPrefix(action Action, prefix string) (phase string, ok bool) {
	if len(action.Type) <= len(prefix) || action.Type[:len(prefix)] != prefix {
		return "", false
	}
	phase = action.Type[len(prefix):]
	switch phase {
	case phasePending, phaseFulfilled, phaseRejected:
		return phase, true
	}
	return "", false
}

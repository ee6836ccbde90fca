package store

import (
	"context"

	"github.com/noah-isme/elitebuilders-client/internal/dto"
	"github.com/noah-isme/elitebuilders-client/internal/models"
	"github.com/noah-isme/elitebuilders-client/internal/storage"
)

// AuthState holds the session.
type AuthState struct {
	User            *models.User `json:"user"`
	Token           string       `json:"token,omitempty"`
	IsAuthenticated bool         `json:"is_authenticated"`
	Loading         bool         `json:"loading"`
	Error           string       `json:"error,omitempty"`

	inFlight int
}

var loginThunk = AsyncThunk[dto.LoginRequest, dto.TokenResponse]{
	TypePrefix:     PrefixLogin,
	DefaultMessage: "Login failed",
	Run: func(ctx context.Context, credentials dto.LoginRequest, api ThunkAPI) (dto.TokenResponse, error) {
		if err := validateRequest(api, credentials); err != nil {
			return dto.TokenResponse{}, err
		}

		token, err := api.Services.Auth.Login(ctx, credentials)
		if err != nil {
			return dto.TokenResponse{}, err
		}
		if err := api.Storage.Set(ctx, storage.KeyToken, token.AccessToken); err != nil {
			api.Logger.Error().Err(err).Msg("failed to persist session token")
		}
		return token, nil
	},
}

var registerThunk = AsyncThunk[dto.RegisterRequest, dto.TokenResponse]{
	TypePrefix:     PrefixRegister,
	DefaultMessage: "Registration failed",
	Run: func(ctx context.Context, payload dto.RegisterRequest, api ThunkAPI) (dto.TokenResponse, error) {
		if err := validateRequest(api, payload); err != nil {
			return dto.TokenResponse{}, err
		}
		return api.Services.Auth.Register(ctx, payload)
	},
}

var getUserProfileThunk = AsyncThunk[struct{}, models.User]{
	TypePrefix:     PrefixGetUserProfile,
	DefaultMessage: "Failed to fetch user profile",
	Run: func(ctx context.Context, _ struct{}, api ThunkAPI) (models.User, error) {
		if api.GetState().Auth.Token == "" {
			return models.User{}, ErrNoToken
		}
		return api.Services.Auth.GetUserProfile(ctx)
	},
}

// Login authenticates with email and password. The token is stored before the
// session is marked authenticated. The profile is not loaded.
func (s *Store) Login(ctx context.Context, email, password string) *Task[dto.TokenResponse] {
	return loginThunk.Start(ctx, s, dto.LoginRequest{Email: email, Password: password})
}

// Register creates an account without signing in.
func (s *Store) Register(ctx context.Context, payload dto.RegisterRequest) *Task[dto.TokenResponse] {
	return registerThunk.Start(ctx, s, payload)
}

// GetUserProfile loads the signed-in user. It rejects without calling the
// collaborator when no token is held.
func (s *Store) GetUserProfile(ctx context.Context) *Task[models.User] {
	return getUserProfileThunk.Start(ctx, s, struct{}{})
}

// Logout clears the session and the stored token.
func (s *Store) Logout() {
	s.Dispatch(Action{Type: ActionAuthLogout})
}

// ClearAuthError resets the auth error.
func (s *Store) ClearAuthError() {
	s.Dispatch(Action{Type: ActionAuthClearErr})
}

func authReducer(state AuthState, action Action) AuthState {
	switch action.Type {
	case ActionAuthLogout:
		state.User = nil
		state.Token = ""
		state.IsAuthenticated = false
		state.Error = ""
		return state
	case ActionAuthClearErr:
		state.Error = ""
		return state
	}

	for _, prefix := range []string{PrefixLogin, PrefixRegister, PrefixGetUserProfile} {
		phase, ok := hasPrefix(action, prefix)
		if !ok {
			continue
		}

		switch phase {
		case phasePending:
			state.inFlight = begin(state.inFlight)
			state.Error = ""
		case phaseFulfilled:
			state.inFlight = end(state.inFlight)
			switch prefix {
			case PrefixLogin:
				if token, ok := action.Payload.(dto.TokenResponse); ok {
					state.Token = token.AccessToken
					state.IsAuthenticated = true
				}
			case PrefixGetUserProfile:
				if user, ok := action.Payload.(models.User); ok {
					state.User = &user
					state.IsAuthenticated = true
				}
			}
		case phaseRejected:
			state.inFlight = end(state.inFlight)
			state.Error = action.Error
			if prefix == PrefixGetUserProfile {
				state.IsAuthenticated = false
			}
		}
		state.Loading = state.inFlight > 0
		return state
	}
	return state
}

// SelectIsAuthenticated reports whether a session has been confirmed.
func SelectIsAuthenticated(state RootState) bool { return state.Auth.IsAuthenticated }

// SelectCurrentUser returns the signed-in user, nil before a profile fetch.
func SelectCurrentUser(state RootState) *models.User { return state.Auth.User }

// SelectAuthLoading reports whether an auth operation is in flight.
func SelectAuthLoading(state RootState) bool { return state.Auth.Loading }

// SelectAuthError returns the last auth rejection message.
func SelectAuthError(state RootState) string { return state.Auth.Error }

package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/elitebuilders-client/internal/dto"
	"github.com/noah-isme/elitebuilders-client/internal/models"
)

type mockAuthService struct {
	logger zerolog.Logger
}

// NewMockAuthService returns an AuthService answering with fixture data.
func NewMockAuthService(logger zerolog.Logger) AuthService {
	return &mockAuthService{logger: logger.With().Str("component", "mock_auth_service").Logger()}
}

func (s *mockAuthService) Login(ctx context.Context, credentials dto.LoginRequest) (dto.TokenResponse, error) {
	if err := ctx.Err(); err != nil {
		return dto.TokenResponse{}, err
	}
	s.logger.Debug().Str("email", credentials.Email).Msg("mock login")

	return dto.TokenResponse{
		AccessToken: MockAccessToken,
		TokenType:   "bearer",
		User: &models.User{
			ID:    mockUserID,
			Email: credentials.Email,
			Name:  "Mock User",
		},
	}, nil
}

func (s *mockAuthService) Register(ctx context.Context, payload dto.RegisterRequest) (dto.TokenResponse, error) {
	if err := ctx.Err(); err != nil {
		return dto.TokenResponse{}, err
	}
	s.logger.Debug().Str("email", payload.Email).Msg("mock register")

	return dto.TokenResponse{
		AccessToken: MockAccessToken,
		TokenType:   "bearer",
		User: &models.User{
			ID:    mockUserID,
			Email: payload.Email,
			Name:  payload.Name,
		},
	}, nil
}

func (s *mockAuthService) GetUserProfile(ctx context.Context) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	return models.User{
		ID:           mockUserID,
		Email:        "user@example.com",
		Name:         "Mock User",
		ProfileImage: "https://via.placeholder.com/150",
	}, nil
}

func (s *mockAuthService) Logout(ctx context.Context) error {
	s.logger.Debug().Msg("mock logout")
	return ctx.Err()
}

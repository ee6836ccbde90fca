package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/noah-isme/elitebuilders-client/internal/dto"
	"github.com/noah-isme/elitebuilders-client/internal/models"
	"github.com/noah-isme/elitebuilders-client/internal/service"
)

type authService struct {
	client *Client
}

// NewAuthService returns the HTTP AuthService.
func NewAuthService(c *Client) service.AuthService {
	return &authService{client: c}
}

// Login posts the credentials as an OAuth2 password form.
func (s *authService) Login(ctx context.Context, credentials dto.LoginRequest) (dto.TokenResponse, error) {
	form := url.Values{}
	form.Set("username", credentials.Email)
	form.Set("password", credentials.Password)

	var token dto.TokenResponse
	err := s.client.doJSON(ctx, "auth.login", request{
		method:      http.MethodPost,
		path:        "/api/auth/login",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}, &token)
	if err != nil {
		return dto.TokenResponse{}, err
	}
	if token.AccessToken == "" {
		return dto.TokenResponse{}, fmt.Errorf("login response carried no access token")
	}
	return token, nil
}

// Register accepts either a token response or the bare created user.
func (s *authService) Register(ctx context.Context, payload dto.RegisterRequest) (dto.TokenResponse, error) {
	r, err := jsonRequest(http.MethodPost, "/api/auth/register", payload)
	if err != nil {
		return dto.TokenResponse{}, err
	}

	body, err := s.client.do(ctx, "auth.register", r)
	if err != nil {
		return dto.TokenResponse{}, err
	}

	var token dto.TokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return dto.TokenResponse{}, fmt.Errorf("decode auth.register response: %w", err)
	}
	if token.AccessToken != "" {
		return token, nil
	}

	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		return dto.TokenResponse{}, fmt.Errorf("decode auth.register response: %w", err)
	}
	return dto.TokenResponse{User: &user}, nil
}

func (s *authService) GetUserProfile(ctx context.Context) (models.User, error) {
	var user models.User
	if err := s.client.doJSON(ctx, "auth.me", request{method: http.MethodGet, path: "/api/auth/me"}, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Logout tells the server the session ended. Servers without a logout route are tolerated.
func (s *authService) Logout(ctx context.Context) error {
	err := s.client.doJSON(ctx, "auth.logout", request{method: http.MethodPost, path: "/api/auth/logout"}, nil)
	if isStatus(err, http.StatusNotFound) || isStatus(err, http.StatusMethodNotAllowed) {
		return nil
	}
	return err
}
